// Package testutil provides shared helpers for package tests: a thread-safe
// log buffer and a harness that materializes a temporary source tree and
// runs a batch through the pipeline.
package testutil

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/prismc/internal/ctxlog"
	"github.com/vk/prismc/internal/pipeline"
	"github.com/vk/prismc/internal/report"
	"github.com/vk/prismc/internal/unit"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// WriteSourceTree writes the given relative-path -> content files under a
// fresh temp dir and returns the dir plus a relative -> absolute path map.
func WriteSourceTree(t *testing.T, files map[string]string) (string, map[string]string) {
	t.Helper()
	dir := t.TempDir()
	abs := make(map[string]string, len(files))
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		abs[name] = path
	}
	return dir, abs
}

// BatchResult holds the outcomes of a harness batch run.
type BatchResult struct {
	Results   map[string]unit.Result
	Summary   report.Summary
	Store     *unit.Store
	Err       error
	LogOutput string
}

// RunBatch materializes files, runs them as one batch with the given
// options, and captures debug logs. The paths passed to the pipeline are the
// absolute paths of all files, sorted.
func RunBatch(t *testing.T, files map[string]string, opts pipeline.Options) *BatchResult {
	t.Helper()
	return RunBatchWithContext(context.Background(), t, files, opts)
}

// RunBatchWithContext is RunBatch with a caller-supplied context, for
// cancellation tests.
func RunBatchWithContext(ctx context.Context, t *testing.T, files map[string]string, opts pipeline.Options) *BatchResult {
	t.Helper()

	_, abs := WriteSourceTree(t, files)
	var paths []string
	for _, p := range abs {
		paths = append(paths, p)
	}

	var buf SafeBuffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx = ctxlog.WithLogger(ctx, logger)

	res := &BatchResult{}
	p, err := pipeline.New(opts)
	if err != nil {
		res.Err = err
		return res
	}
	res.Results, res.Summary, res.Err = p.Run(ctx, paths)
	res.Store = p.Store()
	res.LogOutput = buf.String()
	return res
}
