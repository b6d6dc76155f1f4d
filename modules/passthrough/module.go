// Package passthrough is the default compiler front end: it emits the source
// unchanged under a provenance header. Useful for exercising the orchestrator
// and as the reference module shape.
package passthrough

import (
	"context"
	"fmt"

	"github.com/vk/prismc/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Compile annotates and echoes the source. It never fails on well-formed
// input; empty source is rejected so the batch has a realistic failure mode
// for genuinely unreadable or truncated files.
func Compile(ctx context.Context, path string, src []byte) ([]byte, error) {
	if len(src) == 0 {
		return nil, fmt.Errorf("empty source: %s", path)
	}
	header := fmt.Sprintf("// compiled from: %s\n", path)
	return append([]byte(header), src...), nil
}

// Register registers the front end with the application registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterCompiler("passthrough", Compile)
}
