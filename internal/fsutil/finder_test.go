package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindSources(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		"a.ts",
		"nested/b.tsx",
		"nested/deep/c.js",
		"ignore.go",
		"readme.md",
	}
	for _, f := range files {
		path := filepath.Join(dir, f)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	}

	found, err := FindSources(dir, []string{".ts", ".tsx", ".js"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.ts"),
		filepath.Join(dir, "nested", "b.tsx"),
		filepath.Join(dir, "nested", "deep", "c.js"),
	}, found)
}

func TestFindSourcesEmptyDir(t *testing.T) {
	found, err := FindSources(t.TempDir(), []string{".ts"})
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestFindSourcesMissingRoot(t *testing.T) {
	_, err := FindSources(filepath.Join(t.TempDir(), "absent"), []string{".ts"})
	assert.Error(t, err)
}

func TestFindSourcesNoExtensionsPanics(t *testing.T) {
	assert.Panics(t, func() {
		_, _ = FindSources(t.TempDir(), nil)
	})
}
