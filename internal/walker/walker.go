// Package walker lists the directories of a tree while pruning dependency,
// cache and build folders that never hold projects of their own.
package walker

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/dbsmedya/codeinventory/internal/logger"
)

// DefaultIgnoredDirs are directory names pruned from every walk.
var DefaultIgnoredDirs = []string{
	".venv",
	"venv",
	"__pycache__",
	".pytest_cache",
	".mypy_cache",
	".ruff_cache",
	"node_modules",
	".git",
	".idea",
	".vscode",
	"dist",
	"build",
}

// Options configures a Walker.
type Options struct {
	// IgnoreDirs are extra directory names pruned alongside DefaultIgnoredDirs.
	IgnoreDirs []string
	// ExcludePatterns are doublestar globs matched against the slash-separated
	// path of each directory relative to the walk root.
	ExcludePatterns []string
}

// Walker enumerates directories beneath a root.
type Walker struct {
	ignored  map[string]struct{}
	patterns []string
	log      *logger.Logger
}

// New creates a Walker. Invalid exclude patterns are dropped with a warning.
func New(log *logger.Logger, opts Options) *Walker {
	if log == nil {
		log = logger.NewNop()
	}

	ignored := make(map[string]struct{}, len(DefaultIgnoredDirs)+len(opts.IgnoreDirs))
	for _, name := range DefaultIgnoredDirs {
		ignored[name] = struct{}{}
	}
	for _, name := range opts.IgnoreDirs {
		if name = strings.TrimSpace(name); name != "" {
			ignored[name] = struct{}{}
		}
	}

	patterns := make([]string, 0, len(opts.ExcludePatterns))
	for _, p := range opts.ExcludePatterns {
		if !doublestar.ValidatePattern(p) {
			log.Warnw("Ignoring invalid exclude pattern", "pattern", p)
			continue
		}
		patterns = append(patterns, p)
	}

	return &Walker{
		ignored:  ignored,
		patterns: patterns,
		log:      log,
	}
}

// Dirs returns root followed by every non-pruned directory beneath it, in
// depth-first lexical order. A missing or non-directory root yields nil.
// Unreadable subdirectories are logged and skipped. Symlinked directories are
// not followed, so root should already be resolved. Ignored names and exclude
// patterns apply to the path relative to root; ancestors above root are not
// checked, so a root inside a build/ folder is still walked.
func (w *Walker) Dirs(root string) []string {
	info, err := os.Stat(root)
	if err != nil {
		w.log.Warnw("Walk requested for unreadable or missing folder", "folder", root, "error", err)
		return nil
	}
	if !info.IsDir() {
		w.log.Warnw("Walk requested for non-directory path", "folder", root)
		return nil
	}

	var dirs []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			w.log.Warnw("Skipping unreadable directory", "folder", path, "error", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.IsDir() {
			return nil
		}

		if path != root {
			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				return nil
			}
			if w.pruned(filepath.ToSlash(rel)) {
				w.log.Debugw("Pruned directory", "folder", path)
				return filepath.SkipDir
			}
		}

		dirs = append(dirs, path)
		return nil
	})
	if err != nil && !errors.Is(err, filepath.SkipDir) {
		w.log.Warnw("Error while traversing folder", "folder", root, "error", err)
	}

	return dirs
}

// pruned reports whether the slash-separated relative path rel should be
// skipped together with its subtree.
func (w *Walker) pruned(rel string) bool {
	for _, part := range strings.Split(rel, "/") {
		if _, ok := w.ignored[part]; ok {
			return true
		}
	}

	for _, p := range w.patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}

	return false
}
