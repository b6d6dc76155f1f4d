package stripper

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/prismc/internal/pipeline"
	"github.com/vk/prismc/internal/registry"
	"github.com/vk/prismc/internal/testutil"
)

func TestCompileStripsAnnotations(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"variable", "const x: number = 1;", "const x = 1;"},
		{"parameter", "function f(a: string) {}", "function f(a) {}"},
		{"generic", "let xs: Array<number> = [];", "let xs = [];"},
		{"union", "let v: string | null = null;", "let v = null;"},
		{"untyped unchanged", "const y = 2;", "const y = 2;"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := Compile(context.Background(), "/a.ts", []byte(tc.in))
			require.NoError(t, err)
			assert.Equal(t, tc.want, string(out))
		})
	}
}

func TestCompileRejectsEnums(t *testing.T) {
	_, err := Compile(context.Background(), "/a.ts", []byte("enum Color { Red }"))
	assert.ErrorContains(t, err, "enum declarations are not supported")
}

func TestRegister(t *testing.T) {
	r := registry.New()
	(&Module{}).Register(r)

	_, ok := r.Compiler("stripper")
	assert.True(t, ok)
}

func TestStripperThroughPipeline(t *testing.T) {
	opts := pipeline.Options{
		MaxParallel:         2,
		MaxCorrectionRounds: 0,
		Compile:             Compile,
	}
	res := testutil.RunBatch(t, map[string]string{
		"a.ts": "const x: number = 1;\n",
		"b.ts": "import { x } from \"./a\";\nlet y: string = \"hi\";\n",
	}, opts)

	require.NoError(t, res.Err)
	assert.Equal(t, 2, res.Summary.Succeeded)
	for path, r := range res.Results {
		assert.True(t, r.Success, path)
		assert.NotContains(t, string(r.Output), ": number")
		assert.NotContains(t, string(r.Output), ": string")
	}
}
