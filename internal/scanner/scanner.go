// Package scanner finds repository roots beneath a folder and turns each
// repository and its nested projects into inventory records.
package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dbsmedya/codeinventory/internal/detector"
	"github.com/dbsmedya/codeinventory/internal/gitremote"
	"github.com/dbsmedya/codeinventory/internal/inventory"
	"github.com/dbsmedya/codeinventory/internal/logger"
	"github.com/dbsmedya/codeinventory/internal/pathutil"
	"github.com/dbsmedya/codeinventory/internal/types"
	"github.com/dbsmedya/codeinventory/internal/walker"
)

// Scanner walks a tree and produces inventory records.
type Scanner struct {
	chain   *detector.Chain
	walker  *walker.Walker
	builder *inventory.Builder
	resolve func(string) (string, error)
	log     *logger.Logger
}

// New creates a Scanner. A nil resolver resolves paths without caching.
func New(chain *detector.Chain, w *walker.Walker, resolver *pathutil.Resolver, log *logger.Logger) *Scanner {
	if log == nil {
		log = logger.NewNop()
	}

	resolve := pathutil.Resolve
	if resolver != nil {
		resolve = resolver.Resolve
	}

	return &Scanner{
		chain:   chain,
		walker:  w,
		builder: inventory.NewBuilder(resolver, log.Named("builder")),
		resolve: resolve,
		log:     log,
	}
}

// Scan inventories every repository beneath root. Records are deduplicated
// by location (first seen wins) and sorted case-insensitively by location.
func (s *Scanner) Scan(root string) ([]inventory.Record, error) {
	resolvedRoot, err := s.resolve(root)
	if err != nil {
		return nil, fmt.Errorf("resolve scan root: %w", err)
	}
	s.log.Infow("Scanning root folder", "root", resolvedRoot)

	repoRoots := s.FindRepoRoots(resolvedRoot)
	s.log.Infow("Detected repository roots", "count", len(repoRoots))

	var records []inventory.Record
	seen := make(map[string]struct{})
	appendNew := func(r inventory.Record) {
		if _, ok := seen[r.Location()]; ok {
			s.log.Debugw("Skipping duplicate record", "path", r.Location())
			return
		}
		seen[r.Location()] = struct{}{}
		records = append(records, r)
	}

	for _, repoRoot := range repoRoots {
		repoLog := s.log.WithRepo(repoRoot)
		repoLog.Info("Processing repository root")

		githubURL := gitremote.Extract(repoRoot, repoLog)

		rootRecord, err := s.repoRootRecord(repoRoot, githubURL)
		if err != nil {
			return nil, err
		}
		appendNew(rootRecord)

		nested, err := s.ScanNested(repoRoot, githubURL)
		if err != nil {
			return nil, err
		}
		for _, r := range nested {
			appendNew(r)
		}
	}

	SortByLocation(records)
	s.log.Infow("Scan complete", "records", len(records))

	return records, nil
}

// FindRepoRoots returns every walked directory holding a .git directory or
// file, in traversal order.
func (s *Scanner) FindRepoRoots(root string) []string {
	var roots []string
	for _, dir := range s.walker.Dirs(root) {
		if hasGitEntry(dir) {
			s.log.WithFolder(dir).Debug("Repository root detected")
			roots = append(roots, dir)
		}
	}
	return roots
}

// ScanNested classifies every directory beneath repoRoot (excluding the root
// itself) and returns a record for each match.
func (s *Scanner) ScanNested(repoRoot, githubURL string) ([]inventory.Record, error) {
	var records []inventory.Record

	for _, dir := range s.walker.Dirs(repoRoot) {
		if dir == repoRoot {
			continue
		}

		detection := s.chain.Detect(dir)
		if detection == nil {
			continue
		}

		record, err := s.builder.Build(inventory.BuildInput{
			ProjectPath: dir,
			RepoRoot:    repoRoot,
			ParentRepo:  repoRoot,
			IsRepoRoot:  false,
			GitHubURL:   githubURL,
			Detection:   *detection,
		})
		if err != nil {
			return nil, fmt.Errorf("build nested record for %s: %w", dir, err)
		}

		s.log.WithFolder(dir).Debugw("Nested project detected", "source", detection.Source)
		records = append(records, record)
	}

	return records, nil
}

func (s *Scanner) repoRootRecord(repoRoot, githubURL string) (inventory.Record, error) {
	detection := s.chain.Detect(repoRoot)
	if detection == nil {
		fallback := types.RepositoryFallback()
		detection = &fallback
	}

	record, err := s.builder.Build(inventory.BuildInput{
		ProjectPath: repoRoot,
		RepoRoot:    repoRoot,
		IsRepoRoot:  true,
		GitHubURL:   githubURL,
		Detection:   *detection,
	})
	if err != nil {
		return inventory.Record{}, fmt.Errorf("build repository record for %s: %w", repoRoot, err)
	}
	return record, nil
}

// SortByLocation stable-sorts records by lower-cased location.
func SortByLocation(records []inventory.Record) {
	slices.SortStableFunc(records, func(a, b inventory.Record) int {
		return strings.Compare(strings.ToLower(a.Location()), strings.ToLower(b.Location()))
	})
}

// hasGitEntry reports whether dir/.git is a directory or a regular file,
// following symlinks.
func hasGitEntry(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, ".git"))
	if err != nil {
		return false
	}
	return info.IsDir() || info.Mode().IsRegular()
}
