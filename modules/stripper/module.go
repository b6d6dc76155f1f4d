// Package stripper is a naive TypeScript-to-JavaScript front end: it removes
// simple `: type` annotations from declarations and parameter lists. It is a
// lexical transform, not a parser; constructs it cannot handle are reported
// as compile errors.
package stripper

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/vk/prismc/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// annotation matches a `: type` suffix after an identifier, covering
// primitives, generics, arrays, and unions well enough for toy sources.
var annotation = regexp.MustCompile(`:\s*[A-Za-z_][A-Za-z0-9_<>\[\].,]*(?:\s*[|&]\s*[A-Za-z_][A-Za-z0-9_<>\[\].,]*)*`)

// Compile strips type annotations from src. Enum declarations have no
// lexical JavaScript equivalent and fail the attempt.
func Compile(ctx context.Context, path string, src []byte) ([]byte, error) {
	text := string(src)
	if strings.Contains(text, "enum ") {
		return nil, fmt.Errorf("stripper: enum declarations are not supported: %s", path)
	}
	return []byte(annotation.ReplaceAllString(text, "")), nil
}

// Register registers the front end with the application registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterCompiler("stripper", Compile)
}
