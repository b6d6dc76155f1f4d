package cache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/prismc/internal/unit"
)

func openTestCache(t *testing.T) *SQLite {
	t.Helper()
	c, err := OpenSQLite(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestSQLiteRoundtrip(t *testing.T) {
	c := openTestCache(t)
	key := Key([]byte("const x = 1;"))

	_, ok, err := c.Lookup(key)
	require.NoError(t, err)
	assert.False(t, ok)

	stored := unit.Result{
		Success:         true,
		Output:          []byte("compiled output"),
		Elapsed:         42 * time.Millisecond,
		EfficiencyScore: 0.75,
	}
	require.NoError(t, c.Store(key, stored))

	got, ok, err := c.Lookup(key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, got.Success)
	assert.Equal(t, stored.Output, got.Output)
	assert.Equal(t, stored.Elapsed, got.Elapsed)
	assert.Equal(t, stored.EfficiencyScore, got.EfficiencyScore)
	assert.Empty(t, got.Errors)
}

func TestSQLiteReplace(t *testing.T) {
	c := openTestCache(t)
	key := Key([]byte("src"))

	require.NoError(t, c.Store(key, unit.Result{Success: false, Errors: []string{"first", "second"}}))
	got, ok, err := c.Lookup(key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, got.Success)
	assert.Equal(t, []string{"first", "second"}, got.Errors)

	require.NoError(t, c.Store(key, unit.Result{Success: true, Output: []byte("ok")}))
	got, ok, err = c.Lookup(key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, got.Success)
	assert.Empty(t, got.Errors)
}

func TestSQLitePersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	key := Key([]byte("persist me"))

	c, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, c.Store(key, unit.Result{Success: true, Output: []byte("v1")}))
	require.NoError(t, c.Close())

	c2, err := OpenSQLite(path)
	require.NoError(t, err)
	defer c2.Close()

	got, ok, err := c2.Lookup(key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("v1"), got.Output)
}
