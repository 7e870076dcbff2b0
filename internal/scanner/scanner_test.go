package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/codeinventory/internal/detector"
	"github.com/dbsmedya/codeinventory/internal/inventory"
	"github.com/dbsmedya/codeinventory/internal/logger"
	"github.com/dbsmedya/codeinventory/internal/pathutil"
	"github.com/dbsmedya/codeinventory/internal/walker"
)

func newTestScanner(t *testing.T) *Scanner {
	t.Helper()
	log := logger.NewNop()
	resolver, err := pathutil.NewResolver(64)
	require.NoError(t, err)
	return New(detector.DefaultChain(log), walker.New(log, walker.Options{}), resolver, log)
}

// tree creates files under root; names ending in "/" are directories.
func tree(t *testing.T, root string, entries map[string]string) {
	t.Helper()
	for name, content := range entries {
		path := filepath.Join(root, filepath.FromSlash(name))
		if name[len(name)-1] == '/' {
			require.NoError(t, os.MkdirAll(path, 0755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func resolvedTempDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return filepath.ToSlash(dir)
}

func byLocation(records []inventory.Record) map[string]inventory.Record {
	out := make(map[string]inventory.Record, len(records))
	for _, r := range records {
		out[r.Location()] = r
	}
	return out
}

func locations(records []inventory.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Location())
	}
	return out
}

func TestScan_PythonScriptRepository(t *testing.T) {
	root := resolvedTempDir(t)
	tree(t, root, map[string]string{
		"tool/.git/":            "",
		"tool/requirements.txt": "requests\n",
	})

	records, err := newTestScanner(t).Scan(root)
	require.NoError(t, err)
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, root+"/tool", r.Location())
	assert.Equal(t, "tool", r.ProjectName())
	assert.Equal(t, "Script", r.ProjectType())
	assert.Equal(t, "Python", r.PrimaryLanguage())
	assert.Equal(t, []string{"python", "repo-root", "requirements"}, r.Keywords())
	assert.True(t, r.IsRepoRoot())
	assert.Equal(t, "", r.ParentRepo())
	assert.Equal(t, "python-markers", r.DetectionSource())
	assert.Equal(t, inventory.MakeProjectID(root+"/tool"), r.ProjectID())
}

func TestScan_Monorepo(t *testing.T) {
	root := resolvedTempDir(t)
	tree(t, root, map[string]string{
		"mono/.git/config": "[remote \"origin\"]\n\turl = git@github.com:acme/mono.git\n",
		"mono/README.md":   "# mono\n",

		"mono/services/api/package.json":  "{}",
		"mono/services/api/tsconfig.json": "{}",
		"mono/services/api/node_modules/dep/package.json": "{}",

		"mono/tools/cli/pyproject.toml": "[project]\n",
		"mono/tools/cli/src/":           "",

		"mono/lib/core/Cargo.toml": "[package]\n",
		"mono/build/gen/go.mod":    "module gen\n",
	})

	records, err := newTestScanner(t).Scan(root)
	require.NoError(t, err)

	mono := root + "/mono"
	assert.Equal(t, []string{
		mono,
		mono + "/lib/core",
		mono + "/services/api",
		mono + "/tools/cli",
	}, locations(records))

	got := byLocation(records)

	repo := got[mono]
	assert.Equal(t, "Repository", repo.ProjectType())
	assert.Equal(t, "Unknown", repo.PrimaryLanguage())
	assert.Equal(t, "repo-root", repo.DetectionSource())
	assert.Equal(t, []string{"git", "repo-root", "repository"}, repo.Keywords())

	api := got[mono+"/services/api"]
	assert.Equal(t, "Web App", api.ProjectType())
	assert.Equal(t, "TypeScript", api.PrimaryLanguage())
	assert.Equal(t, []string{"javascript", "nested-project", "node", "typescript"}, api.Keywords())

	cli := got[mono+"/tools/cli"]
	assert.Equal(t, "CLI Tool", cli.ProjectType())
	assert.Contains(t, cli.Keywords(), "src-layout")

	core := got[mono+"/lib/core"]
	assert.Equal(t, "Rust", core.PrimaryLanguage())
	assert.Equal(t, "generic-marker:Cargo.toml", core.DetectionSource())

	for _, r := range records {
		assert.Equal(t, "https://github.com/acme/mono", r.GitHubURL(), r.Location())
		assert.Equal(t, mono, r.RepoRoot(), r.Location())
		if r.IsRepoRoot() {
			assert.Equal(t, "", r.ParentRepo())
		} else {
			assert.Equal(t, mono, r.ParentRepo())
		}
	}
}

func TestScan_NestedRepositoryFirstSeenWins(t *testing.T) {
	root := resolvedTempDir(t)
	tree(t, root, map[string]string{
		"outer/.git/":          "",
		"outer/inner/.git/":    "",
		"outer/inner/go.mod":   "module inner\n",
		"outer/inner/pkg/x.go": "package pkg\n",
	})

	records, err := newTestScanner(t).Scan(root)
	require.NoError(t, err)
	require.Len(t, records, 2)

	inner := byLocation(records)[root+"/outer/inner"]
	assert.False(t, inner.IsRepoRoot(), "inner repo was first seen as a nested project of outer")
	assert.Equal(t, root+"/outer", inner.ParentRepo())
	assert.Contains(t, inner.Keywords(), "nested-project")
}

func TestScan_SortIsCaseInsensitive(t *testing.T) {
	root := resolvedTempDir(t)
	tree(t, root, map[string]string{
		"Beta/.git/":  "",
		"alpha/.git/": "",
		"Gamma/.git/": "",
	})

	records, err := newTestScanner(t).Scan(root)
	require.NoError(t, err)

	assert.Equal(t, []string{
		root + "/alpha",
		root + "/Beta",
		root + "/Gamma",
	}, locations(records))
}

func TestScan_GitFileRepository(t *testing.T) {
	root := resolvedTempDir(t)
	tree(t, root, map[string]string{
		"worktree/.git":         "gitdir: /elsewhere/.git/worktrees/wt\n",
		"worktree/package.json": "{}",
	})

	records, err := newTestScanner(t).Scan(root)
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, "", records[0].GitHubURL())
	assert.Equal(t, "node-markers", records[0].DetectionSource())
	assert.True(t, records[0].IsRepoRoot())
}

func TestScan_NoRepositories(t *testing.T) {
	root := resolvedTempDir(t)
	tree(t, root, map[string]string{
		"loose/go.mod": "module loose\n",
	})

	records, err := newTestScanner(t).Scan(root)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestScan_RootIsRepository(t *testing.T) {
	root := resolvedTempDir(t)
	tree(t, root, map[string]string{
		".git/":          "",
		"composer.json":  "{}",
		"web/index.html": "",
	})

	records, err := newTestScanner(t).Scan(root + "/.")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, root, records[0].Location())
	assert.Equal(t, "PHP", records[0].PrimaryLanguage())
}

func TestScan_MissingRoot(t *testing.T) {
	records, err := newTestScanner(t).Scan(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestFindRepoRoots(t *testing.T) {
	root := resolvedTempDir(t)
	tree(t, root, map[string]string{
		"a/.git/":              "",
		"b/.git":               "gitdir: x\n",
		"c/src/":               "",
		"node_modules/d/.git/": "",
	})

	roots := newTestScanner(t).FindRepoRoots(root)

	assert.Equal(t, []string{
		filepath.Join(root, "a"),
		filepath.Join(root, "b"),
	}, roots)
}

func TestScanNested_ExcludesRoot(t *testing.T) {
	root := resolvedTempDir(t)
	tree(t, root, map[string]string{
		"go.mod":            "module root\n",
		"cmd/tool/setup.py": "",
	})

	records, err := newTestScanner(t).ScanNested(root, "https://github.com/acme/root")
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, root+"/cmd/tool", records[0].Location())
	assert.Equal(t, "https://github.com/acme/root", records[0].GitHubURL())
	assert.False(t, records[0].IsRepoRoot())
}

func TestSortByLocation_Stable(t *testing.T) {
	records := []inventory.Record{
		inventory.NewRecord(inventory.Fields{Location: "/b", ProjectName: "first"}),
		inventory.NewRecord(inventory.Fields{Location: "/A"}),
		inventory.NewRecord(inventory.Fields{Location: "/B", ProjectName: "second"}),
	}

	SortByLocation(records)

	assert.Equal(t, []string{"/A", "/b", "/B"}, locations(records))
	assert.Equal(t, "first", records[1].ProjectName())
	assert.Equal(t, "second", records[2].ProjectName())
}
