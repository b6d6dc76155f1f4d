package unit

import (
	"fmt"
	"sort"
	"sync"
)

// Store owns the authoritative state for every unit in a batch. The unit map
// is built once at construction and never grows or shrinks; all per-unit
// mutation goes through the accessors on Unit or Store.
type Store struct {
	units map[string]*Unit

	// results holds the latest Result per path. Distinct keys are written
	// concurrently during the execute and correct phases.
	results sync.Map
}

// NewStore creates one unit per unique input path. Duplicate paths collapse
// onto a single unit.
func NewStore(paths []string) *Store {
	s := &Store{units: make(map[string]*Unit, len(paths))}
	for _, p := range paths {
		if _, ok := s.units[p]; ok {
			continue
		}
		s.units[p] = newUnit(p)
	}
	return s
}

// Len returns the number of units in the batch.
func (s *Store) Len() int {
	return len(s.units)
}

// Contains reports whether path is part of the batch.
func (s *Store) Contains(path string) bool {
	_, ok := s.units[path]
	return ok
}

// Get returns the unit for path. Looking up a path that is not part of the
// batch is a programming error and panics.
func (s *Store) Get(path string) *Unit {
	u, ok := s.units[path]
	if !ok {
		panic(fmt.Sprintf("unit store: path not in batch: %s", path))
	}
	return u
}

// Paths returns every unit path in the batch, sorted.
func (s *Store) Paths() []string {
	out := make([]string, 0, len(s.units))
	for p := range s.units {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Units returns every unit in the batch in path order.
func (s *Store) Units() []*Unit {
	out := make([]*Unit, 0, len(s.units))
	for _, p := range s.Paths() {
		out = append(out, s.units[p])
	}
	return out
}

// SetDependencies records the linked dependency edges for path and mirrors
// the reverse edge onto each in-batch target's dependents set.
func (s *Store) SetDependencies(path string, deps, unresolved []string) {
	u := s.Get(path)
	u.setDependencies(deps, unresolved)
	for _, dep := range deps {
		s.Get(dep).addDependent(path)
	}
}

// SetResult records the latest compile attempt outcome for path and moves
// the unit into its terminal-for-now phase.
func (s *Store) SetResult(path string, res Result) {
	u := s.Get(path)
	s.results.Store(path, res)
	if res.Success {
		u.SetPhase(Succeeded)
	} else {
		u.SetPhase(Failed)
	}
}

// Result returns the latest result for path, if one has been recorded.
func (s *Store) Result(path string) (Result, bool) {
	v, ok := s.results.Load(path)
	if !ok {
		return Result{}, false
	}
	return v.(Result), true
}

// Results snapshots the results map. Every unit has an entry once the
// execute phase has drained.
func (s *Store) Results() map[string]Result {
	out := make(map[string]Result, len(s.units))
	s.results.Range(func(k, v any) bool {
		out[k.(string)] = v.(Result)
		return true
	})
	return out
}

// FailingPaths returns the paths whose latest result is a failure, sorted.
func (s *Store) FailingPaths() []string {
	var out []string
	s.results.Range(func(k, v any) bool {
		if !v.(Result).Success {
			out = append(out, k.(string))
		}
		return true
	})
	sort.Strings(out)
	return out
}
