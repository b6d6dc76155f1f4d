package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noop(ctx context.Context, path string, src []byte) ([]byte, error) {
	return src, nil
}

func TestRegistry(t *testing.T) {
	r := New()
	r.RegisterCompiler("noop", noop)

	fn, ok := r.Compiler("noop")
	require.True(t, ok)
	out, err := fn(context.Background(), "/a.ts", []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, []byte("x"), out)

	_, ok = r.Compiler("absent")
	assert.False(t, ok)
}

func TestNames(t *testing.T) {
	r := New()
	assert.Empty(t, r.Names())

	r.RegisterCompiler("b", noop)
	r.RegisterCompiler("a", noop)
	assert.Equal(t, []string{"a", "b"}, r.Names())
}

func TestDuplicateRegistrationPanics(t *testing.T) {
	r := New()
	r.RegisterCompiler("noop", noop)
	assert.Panics(t, func() {
		r.RegisterCompiler("noop", noop)
	})
}
