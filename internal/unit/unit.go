package unit

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Phase is the lifecycle state of a single unit within a batch run.
type Phase int32

const (
	Pending Phase = iota
	Resolving
	Compiling
	Succeeded
	Failed
)

// String returns the human-readable name of the phase for logs.
func (p Phase) String() string {
	switch p {
	case Pending:
		return "pending"
	case Resolving:
		return "resolving"
	case Compiling:
		return "compiling"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is the outcome of the most recent compile attempt for one unit.
// A retry replaces the previous result wholesale; results are never merged.
type Result struct {
	Success         bool
	Output          []byte
	Errors          []string
	Warnings        []string
	Elapsed         time.Duration
	EfficiencyScore float64
	FromCache       bool
}

// Unit tracks one file's compilation state for the duration of a batch run.
//
// Weight and Dependencies are written exactly once, by the single task that
// owns the unit during its phase, and are read-only afterward. The dependents
// set is the one field multiple tasks may target concurrently (many units can
// discover an edge onto the same target during linking), so it sits behind
// the unit's own mutex.
type Unit struct {
	Path   string
	Weight float64

	phase   atomic.Int32
	retries atomic.Int32

	deps       []string
	unresolved []string

	mu         sync.Mutex
	dependents map[string]struct{}
}

func newUnit(path string) *Unit {
	return &Unit{
		Path:       path,
		dependents: make(map[string]struct{}),
	}
}

// Phase returns the unit's current lifecycle state.
func (u *Unit) Phase() Phase {
	return Phase(u.phase.Load())
}

// SetPhase records a lifecycle transition.
func (u *Unit) SetPhase(p Phase) {
	u.phase.Store(int32(p))
}

// RetryCount reports how many correction attempts this unit has received.
func (u *Unit) RetryCount() int {
	return int(u.retries.Load())
}

// IncRetry bumps the correction-attempt counter.
func (u *Unit) IncRetry() {
	u.retries.Add(1)
}

// setDependencies records the resolved in-batch dependency paths and the raw
// import tokens that matched no unit in the batch. Called once, during linking.
func (u *Unit) setDependencies(deps, unresolved []string) {
	u.deps = deps
	u.unresolved = unresolved
}

// Dependencies returns the in-batch paths this unit references, sorted.
func (u *Unit) Dependencies() []string {
	out := make([]string, len(u.deps))
	copy(out, u.deps)
	sort.Strings(out)
	return out
}

// Unresolved returns the import tokens that matched no unit in the batch.
func (u *Unit) Unresolved() []string {
	out := make([]string, len(u.unresolved))
	copy(out, u.unresolved)
	return out
}

// HasDependency reports whether path is among this unit's dependencies.
func (u *Unit) HasDependency(path string) bool {
	for _, d := range u.deps {
		if d == path {
			return true
		}
	}
	return false
}

// addDependent records that another unit references this one. Safe for
// concurrent callers targeting the same unit.
func (u *Unit) addDependent(path string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.dependents[path] = struct{}{}
}

// Dependents returns the paths of units that reference this one, sorted.
func (u *Unit) Dependents() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := make([]string, 0, len(u.dependents))
	for p := range u.dependents {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// HasDependent reports whether path is among this unit's dependents.
func (u *Unit) HasDependent(path string) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	_, ok := u.dependents[path]
	return ok
}
