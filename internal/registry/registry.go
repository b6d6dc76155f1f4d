package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// CompileFunc is the pluggable compiler front-end contract. It receives the
// file path (for diagnostics only) and the exact source bytes to compile,
// and must be callable many times concurrently without shared mutable state.
type CompileFunc func(ctx context.Context, path string, src []byte) ([]byte, error)

// Module is the interface a compiler front-end package implements to be
// registered with an application instance.
type Module interface {
	Register(r *Registry)
}

// Registry holds the compiler front ends available to a single application
// instance, keyed by name.
type Registry struct {
	mu        sync.RWMutex
	compilers map[string]CompileFunc
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{compilers: make(map[string]CompileFunc)}
}

// RegisterCompiler adds a front end under name. Registering the same name
// twice is a programmer error and panics.
func (r *Registry) RegisterCompiler(name string, fn CompileFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.compilers[name]; ok {
		panic(fmt.Sprintf("registry: compiler already registered: %s", name))
	}
	r.compilers[name] = fn
}

// Compiler returns the front end registered under name.
func (r *Registry) Compiler(name string) (CompileFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.compilers[name]
	return fn, ok
}

// Names lists the registered front ends, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.compilers))
	for name := range r.compilers {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
