package weight

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimate(t *testing.T) {
	f := DefaultFactors()

	t.Run("scales with size and extension", func(t *testing.T) {
		assert.InDelta(t, 0.5, f.Estimate(5000, ".ts"), 1e-9)
		assert.InDelta(t, 0.6, f.Estimate(5000, ".tsx"), 1e-9)
		assert.InDelta(t, 0.4, f.Estimate(5000, ".js"), 1e-9)
	})

	t.Run("unknown extension uses default factor", func(t *testing.T) {
		assert.InDelta(t, 0.25, f.Estimate(5000, ".rb"), 1e-9)
	})

	t.Run("clamped to [0,1]", func(t *testing.T) {
		assert.Equal(t, 1.0, f.Estimate(1_000_000, ".tsx"))
		assert.Equal(t, 0.0, f.Estimate(0, ".ts"))
		assert.Equal(t, 0.0, f.Estimate(-10, ".ts"))
	})
}

func TestLoadFactors(t *testing.T) {
	t.Run("overrides merge over defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "weights.yaml")
		require.NoError(t, os.WriteFile(path, []byte(".ts: 2.0\n.vue: 1.5\n"), 0o644))

		f, err := LoadFactors(path)
		require.NoError(t, err)
		assert.Equal(t, 2.0, f[".ts"])
		assert.Equal(t, 1.5, f[".vue"])
		assert.Equal(t, 1.2, f[".tsx"]) // untouched default
	})

	t.Run("missing file errors", func(t *testing.T) {
		_, err := LoadFactors(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml errors", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "weights.yaml")
		require.NoError(t, os.WriteFile(path, []byte("{not yaml"), 0o644))
		_, err := LoadFactors(path)
		assert.Error(t, err)
	})
}
