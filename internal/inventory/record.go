// Package inventory defines the inventory record and how it is built from a
// detection result.
package inventory

import (
	"crypto/sha1"
	"encoding/hex"
	"slices"
	"strings"
)

const (
	// Status is the lifecycle status given to every record.
	Status = "Active"
	// KeywordSeparator joins keywords in the CSV keywords column.
	KeywordSeparator = ";"
	// ProjectIDPrefix starts every project ID.
	ProjectIDPrefix = "proj-"
	// ProjectIDHexLength is the number of SHA-1 hex characters kept in an ID.
	ProjectIDHexLength = 10
)

// Columns is the CSV header in output order.
var Columns = []string{
	"project_id",
	"project_name",
	"project_type",
	"primary_language",
	"location",
	"github_url",
	"status",
	"keywords",
	"purpose",
	"repo_root",
	"is_repo_root",
	"parent_repo",
	"detection_source",
}

// Record is one inventory row. It is normalized on construction and not
// modified afterwards.
type Record struct {
	projectID       string
	projectName     string
	projectType     string
	primaryLanguage string
	location        string
	githubURL       string
	status          string
	keywords        []string
	purpose         string
	repoRoot        string
	isRepoRoot      bool
	parentRepo      string
	detectionSource string
}

// Fields holds the raw values used to construct a Record.
type Fields struct {
	ProjectID       string
	ProjectName     string
	ProjectType     string
	PrimaryLanguage string
	Location        string
	GitHubURL       string
	Status          string
	Keywords        []string
	Purpose         string
	RepoRoot        string
	IsRepoRoot      bool
	ParentRepo      string
	DetectionSource string
}

// NewRecord trims every string field and normalizes keywords.
func NewRecord(f Fields) Record {
	return Record{
		projectID:       strings.TrimSpace(f.ProjectID),
		projectName:     strings.TrimSpace(f.ProjectName),
		projectType:     strings.TrimSpace(f.ProjectType),
		primaryLanguage: strings.TrimSpace(f.PrimaryLanguage),
		location:        strings.TrimSpace(f.Location),
		githubURL:       strings.TrimSpace(f.GitHubURL),
		status:          strings.TrimSpace(f.Status),
		keywords:        NormalizeKeywords(f.Keywords),
		purpose:         strings.TrimSpace(f.Purpose),
		repoRoot:        strings.TrimSpace(f.RepoRoot),
		isRepoRoot:      f.IsRepoRoot,
		parentRepo:      strings.TrimSpace(f.ParentRepo),
		detectionSource: strings.TrimSpace(f.DetectionSource),
	}
}

func (r Record) ProjectID() string       { return r.projectID }
func (r Record) ProjectName() string     { return r.projectName }
func (r Record) ProjectType() string     { return r.projectType }
func (r Record) PrimaryLanguage() string { return r.primaryLanguage }
func (r Record) Location() string        { return r.location }
func (r Record) GitHubURL() string       { return r.githubURL }
func (r Record) Status() string          { return r.status }
func (r Record) Purpose() string         { return r.purpose }
func (r Record) RepoRoot() string        { return r.repoRoot }
func (r Record) IsRepoRoot() bool        { return r.isRepoRoot }
func (r Record) ParentRepo() string      { return r.parentRepo }
func (r Record) DetectionSource() string { return r.detectionSource }

// Keywords returns a copy of the normalized keywords.
func (r Record) Keywords() []string {
	return slices.Clone(r.keywords)
}

// CSVRow returns the record keyed by column name.
func (r Record) CSVRow() map[string]string {
	isRepoRoot := "False"
	if r.isRepoRoot {
		isRepoRoot = "True"
	}

	return map[string]string{
		"project_id":       r.projectID,
		"project_name":     r.projectName,
		"project_type":     r.projectType,
		"primary_language": r.primaryLanguage,
		"location":         r.location,
		"github_url":       r.githubURL,
		"status":           r.status,
		"keywords":         strings.Join(r.keywords, KeywordSeparator),
		"purpose":          r.purpose,
		"repo_root":        r.repoRoot,
		"is_repo_root":     isRepoRoot,
		"parent_repo":      r.parentRepo,
		"detection_source": r.detectionSource,
	}
}

// NormalizeKeywords trims keywords, drops empty ones, removes duplicates and
// sorts the result. It is idempotent.
func NormalizeKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// MakeProjectID derives the stable project ID from a resolved forward-slash
// path.
func MakeProjectID(resolvedPath string) string {
	sum := sha1.Sum([]byte(resolvedPath))
	return ProjectIDPrefix + hex.EncodeToString(sum[:])[:ProjectIDHexLength]
}
