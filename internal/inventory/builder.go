package inventory

import (
	"fmt"
	"path"

	"github.com/dbsmedya/codeinventory/internal/logger"
	"github.com/dbsmedya/codeinventory/internal/pathutil"
	"github.com/dbsmedya/codeinventory/internal/types"
)

const (
	keywordRepoRoot      = "repo-root"
	keywordNestedProject = "nested-project"
)

// BuildInput describes one detected project.
type BuildInput struct {
	ProjectPath string
	RepoRoot    string
	// ParentRepo is empty for repository roots.
	ParentRepo string
	IsRepoRoot bool
	GitHubURL  string
	Detection  types.Detection
}

// Builder turns detection results into records.
type Builder struct {
	resolver *pathutil.Resolver
	log      *logger.Logger
}

// NewBuilder creates a Builder. A nil resolver resolves paths without caching.
func NewBuilder(resolver *pathutil.Resolver, log *logger.Logger) *Builder {
	if log == nil {
		log = logger.NewNop()
	}
	return &Builder{resolver: resolver, log: log}
}

// Build resolves the input paths and assembles a normalized record.
func (b *Builder) Build(in BuildInput) (Record, error) {
	location, err := b.resolve(in.ProjectPath)
	if err != nil {
		return Record{}, fmt.Errorf("resolve project path: %w", err)
	}

	repoRoot, err := b.resolve(in.RepoRoot)
	if err != nil {
		return Record{}, fmt.Errorf("resolve repo root: %w", err)
	}

	var parentRepo string
	if in.ParentRepo != "" {
		parentRepo, err = b.resolve(in.ParentRepo)
		if err != nil {
			return Record{}, fmt.Errorf("resolve parent repo: %w", err)
		}
	}

	keywords := make([]string, 0, len(in.Detection.Keywords)+1)
	keywords = append(keywords, in.Detection.Keywords...)
	if in.IsRepoRoot {
		keywords = append(keywords, keywordRepoRoot)
	} else {
		keywords = append(keywords, keywordNestedProject)
	}

	name := path.Base(location)
	if name == "/" {
		name = ""
	}

	record := NewRecord(Fields{
		ProjectID:       MakeProjectID(location),
		ProjectName:     name,
		ProjectType:     in.Detection.ProjectType,
		PrimaryLanguage: in.Detection.PrimaryLanguage,
		Location:        location,
		GitHubURL:       in.GitHubURL,
		Status:          Status,
		Keywords:        keywords,
		RepoRoot:        repoRoot,
		IsRepoRoot:      in.IsRepoRoot,
		ParentRepo:      parentRepo,
		DetectionSource: in.Detection.Source,
	})

	b.log.Debugw("Built record",
		"name", record.ProjectName(),
		"path", record.Location(),
		"repo_root", record.RepoRoot(),
		"is_repo_root", record.IsRepoRoot(),
	)

	return record, nil
}

func (b *Builder) resolve(p string) (string, error) {
	if b.resolver != nil {
		return b.resolver.Resolve(p)
	}
	return pathutil.Resolve(p)
}
