package detector

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/dbsmedya/codeinventory/internal/logger"
	"github.com/dbsmedya/codeinventory/internal/types"
)

// writeFiles creates each named file (and its parents) under dir.
func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	}
}

type stubDetector struct {
	name   string
	result *types.Detection
	err    error
	calls  int
}

func (s *stubDetector) Name() string { return s.name }

func (s *stubDetector) Detect(string) (*types.Detection, error) {
	s.calls++
	return s.result, s.err
}

func TestChain_FirstMatchWins(t *testing.T) {
	first := &stubDetector{name: "first", result: &types.Detection{Source: "first"}}
	second := &stubDetector{name: "second", result: &types.Detection{Source: "second"}}

	chain := NewChain(logger.NewNop(), first, second)
	result := chain.Detect(t.TempDir())

	require.NotNil(t, result)
	assert.Equal(t, "first", result.Source)
	assert.Equal(t, 0, second.calls, "later detectors must not run after a match")
}

func TestChain_SkipsFailingDetector(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	failing := &stubDetector{name: "failing", err: errors.New("permission denied")}
	matching := &stubDetector{name: "matching", result: &types.Detection{Source: "stub"}}

	chain := NewChain(logger.FromZap(zap.New(core)), failing, matching)
	dir := t.TempDir()
	result := chain.Detect(dir)

	require.NotNil(t, result)
	assert.Equal(t, "stub", result.Source)

	failed := logs.FilterMessage("Detector failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, dir, failed[0].ContextMap()["folder"])
	assert.Equal(t, "failing", failed[0].ContextMap()["detector"])

	matched := logs.FilterMessage("Detector matched").All()
	require.Len(t, matched, 1)
	assert.Equal(t, dir, matched[0].ContextMap()["folder"])
}

func TestChain_NoMatch(t *testing.T) {
	chain := NewChain(nil, &stubDetector{name: "none"})
	assert.Nil(t, chain.Detect(t.TempDir()))

	empty := NewChain(nil)
	assert.Nil(t, empty.Detect(t.TempDir()))
}

func TestDefaultChain_Order(t *testing.T) {
	chain := DefaultChain(logger.NewNop())
	assert.Equal(t, []string{"python", "node", "generic"}, chain.Names())
}

func TestDefaultChain_Priority(t *testing.T) {
	tests := []struct {
		name       string
		files      []string
		wantSource string
	}{
		{
			name:       "python backend with node tooling",
			files:      []string{"pyproject.toml", "package.json"},
			wantSource: "python-markers",
		},
		{
			name:       "python beats generic",
			files:      []string{"requirements.txt", "Cargo.toml"},
			wantSource: "python-markers",
		},
		{
			name:       "node beats generic",
			files:      []string{"package.json", "composer.json"},
			wantSource: "node-markers",
		},
		{
			name:       "generic only",
			files:      []string{"go.mod"},
			wantSource: "generic-marker:go.mod",
		},
	}

	chain := DefaultChain(logger.NewNop())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFiles(t, dir, tt.files...)

			result := chain.Detect(dir)
			require.NotNil(t, result)
			assert.Equal(t, tt.wantSource, result.Source)
		})
	}
}

func TestDefaultChain_EmptyFolder(t *testing.T) {
	chain := DefaultChain(logger.NewNop())
	assert.Nil(t, chain.Detect(t.TempDir()))
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "file.txt")

	ok, err := exists(filepath.Join(dir, "file.txt"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = exists(filepath.Join(dir, "missing.txt"))
	require.NoError(t, err)
	assert.False(t, ok)

	// A path beneath a regular file is simply absent.
	ok, err = exists(filepath.Join(dir, "file.txt", "child"))
	require.NoError(t, err)
	assert.False(t, ok)
}
