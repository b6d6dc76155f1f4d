package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/prismc/internal/config"
	"github.com/vk/prismc/internal/hcl"
	"github.com/vk/prismc/internal/testutil"
)

func TestNewConfig(t *testing.T) {
	t.Run("requires source or profile", func(t *testing.T) {
		_, err := NewConfig(Config{})
		assert.Error(t, err)
	})

	t.Run("source alone is enough", func(t *testing.T) {
		cfg, err := NewConfig(Config{SourcePath: "./src"})
		require.NoError(t, err)
		assert.Equal(t, "./src", cfg.SourcePath)
	})

	t.Run("profile alone is enough", func(t *testing.T) {
		_, err := NewConfig(Config{ProfilePath: "batch.hcl"})
		assert.NoError(t, err)
	})
}

func TestAppRunEndToEnd(t *testing.T) {
	dir, _ := testutil.WriteSourceTree(t, map[string]string{
		"a.ts":        "export const x = 1;\n",
		"sub/b.ts":    "import { x } from \"../a\";\nconst y = x;\n",
		"ignored.txt": "not a source file\n",
	})

	var out testutil.SafeBuffer
	cfg := &Config{
		SourcePath:       dir,
		CorrectionRounds: -1,
		LogLevel:         "debug",
		LogFormat:        "text",
	}
	a := NewApp(&out, cfg, hcl.NewLoader())

	require.NoError(t, a.Run(context.Background()))
	assert.Contains(t, out.String(), "succeeded:    2")
	assert.Contains(t, out.String(), "failed:       0")
}

func TestAppRunWithProfile(t *testing.T) {
	dir, _ := testutil.WriteSourceTree(t, map[string]string{
		"a.ts": "const x: number = 1;\n",
	})
	profile := filepath.Join(t.TempDir(), "batch.hcl")
	require.NoError(t, os.WriteFile(profile, []byte(
		"batch {\n  source = \""+dir+"\"\n  compiler = \"stripper\"\n  max_parallel = 2\n}\n"), 0o644))

	var out testutil.SafeBuffer
	cfg := &Config{
		ProfilePath:      profile,
		CorrectionRounds: -1,
		LogLevel:         "info",
	}
	a := NewApp(&out, cfg, hcl.NewLoader())

	require.NoError(t, a.Run(context.Background()))
	assert.Contains(t, out.String(), "succeeded:    1")
}

func TestAppUnknownCompiler(t *testing.T) {
	dir, _ := testutil.WriteSourceTree(t, map[string]string{"a.ts": "const x = 1;\n"})

	var out testutil.SafeBuffer
	cfg := &Config{SourcePath: dir, Compiler: "imaginary", CorrectionRounds: -1}
	a := NewApp(&out, cfg, hcl.NewLoader())

	err := a.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown compiler")
	assert.Contains(t, err.Error(), "passthrough")
}

func TestAppEmptySourceDirIsNotAnError(t *testing.T) {
	var out testutil.SafeBuffer
	cfg := &Config{SourcePath: t.TempDir(), CorrectionRounds: -1}
	a := NewApp(&out, cfg, hcl.NewLoader())

	require.NoError(t, a.Run(context.Background()))
	assert.Contains(t, out.String(), "nothing to compile")
}

func TestAppRunWithCache(t *testing.T) {
	dir, _ := testutil.WriteSourceTree(t, map[string]string{"a.ts": "const x = 1;\n"})
	cachePath := filepath.Join(t.TempDir(), "cache.db")

	run := func() {
		var out testutil.SafeBuffer
		cfg := &Config{SourcePath: dir, CachePath: cachePath, CorrectionRounds: -1}
		a := NewApp(&out, cfg, hcl.NewLoader())
		require.NoError(t, a.Run(context.Background()))
		assert.Contains(t, out.String(), "succeeded:    1")
	}

	run()
	_, err := os.Stat(cachePath)
	require.NoError(t, err)
	run() // second run served from the same cache file
}

func TestResolvePrecedence(t *testing.T) {
	src := "./flag-src"
	profSrc := "./profile-src"
	profCompiler := "stripper"
	profParallel := 3

	a := &App{
		config: &Config{
			SourcePath:       src,
			Compiler:         "passthrough",
			MaxParallel:      0,
			CorrectionRounds: -1,
		},
		profile: &config.Profile{
			SourcePath:  &profSrc,
			Compiler:    &profCompiler,
			MaxParallel: &profParallel,
		},
	}

	s, err := a.resolve()
	require.NoError(t, err)
	assert.Equal(t, src, s.sourcePath, "explicit flag beats profile")
	assert.Equal(t, "passthrough", s.compiler, "explicit flag beats profile")
	assert.Equal(t, profParallel, s.maxParallel, "unset flag falls back to profile")
	assert.Equal(t, 4, s.correctionRounds, "unset everywhere falls back to default")
}
