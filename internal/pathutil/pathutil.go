// Package pathutil turns user and filesystem paths into the canonical
// forward-slash form used for locations and project IDs.
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the number of resolved paths kept by a Resolver when no
// size is configured.
const DefaultCacheSize = 4096

// ExpandHome replaces a leading "~" with the current user's home directory.
// Paths of the form "~user" are returned unchanged.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~`+string(filepath.Separator)) {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("expand home directory: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}

// Resolve returns the absolute, cleaned, symlink-resolved form of path with
// forward slashes. When symlinks cannot be evaluated (for example because the
// path does not exist yet) the cleaned absolute path is used.
func Resolve(path string) (string, error) {
	expanded, err := ExpandHome(path)
	if err != nil {
		return "", err
	}

	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", path, err)
	}

	if target, err := filepath.EvalSymlinks(abs); err == nil {
		abs = target
	}

	return filepath.ToSlash(filepath.Clean(abs)), nil
}

// Resolver memoizes Resolve. Walks visit the same ancestors many times, so
// repeated lookups are served from an LRU cache.
type Resolver struct {
	cache *lru.Cache[string, string]
}

// NewResolver creates a Resolver holding up to size entries. A non-positive
// size falls back to DefaultCacheSize.
func NewResolver(size int) (*Resolver, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, string](size)
	if err != nil {
		return nil, fmt.Errorf("create resolve cache: %w", err)
	}
	return &Resolver{cache: cache}, nil
}

// Resolve returns the canonical form of path, consulting the cache first.
func (r *Resolver) Resolve(path string) (string, error) {
	if resolved, ok := r.cache.Get(path); ok {
		return resolved, nil
	}

	resolved, err := Resolve(path)
	if err != nil {
		return "", err
	}
	r.cache.Add(path, resolved)
	return resolved, nil
}

// Len returns the number of cached entries.
func (r *Resolver) Len() int {
	return r.cache.Len()
}
