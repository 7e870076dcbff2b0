// Package types contains shared types used across multiple packages to avoid import cycles.
package types

// Project type labels produced by detectors.
const (
	ProjectTypeCLITool    = "CLI Tool"
	ProjectTypeScript     = "Script"
	ProjectTypeWebApp     = "Web App"
	ProjectTypeLibrary    = "Library"
	ProjectTypeRepository = "Repository"
)

// Detection is the classification a detector produced for one folder.
// It is built per call and never cached.
type Detection struct {
	ProjectType     string   // e.g. "CLI Tool", "Web App"
	PrimaryLanguage string   // e.g. "Python", "TypeScript"
	Keywords        []string // lowercase tags, not yet normalized
	Source          string   // rule that matched, e.g. "generic-marker:Cargo.toml"
}

// RepositoryFallback is the classification used for a repository root that
// no detector recognizes.
func RepositoryFallback() Detection {
	return Detection{
		ProjectType:     ProjectTypeRepository,
		PrimaryLanguage: "Unknown",
		Keywords:        []string{"git", "repository"},
		Source:          "repo-root",
	}
}
