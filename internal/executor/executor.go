// Package executor runs a single compile attempt: cache consult, timed front
// end invocation, and capture of every failure mode as result data.
package executor

import (
	"context"
	"fmt"
	"time"

	"github.com/vk/prismc/internal/cache"
	"github.com/vk/prismc/internal/ctxlog"
	"github.com/vk/prismc/internal/registry"
	"github.com/vk/prismc/internal/unit"
)

// expectedCompileTime anchors the advisory efficiency score; an attempt
// finishing faster than this scores the full ratio cap.
const expectedCompileTime = 50 * time.Millisecond

// Executor invokes the pluggable compile function for one file at a time.
// It is stateless per attempt and safe for concurrent use.
type Executor struct {
	compile registry.CompileFunc
	cache   cache.Cache // nil disables caching
}

// New returns an Executor for the given front end. c may be nil.
func New(compile registry.CompileFunc, c cache.Cache) *Executor {
	return &Executor{compile: compile, cache: c}
}

// Attempt compiles src and returns the outcome as data. A front-end error or
// panic becomes a failing Result; it never propagates out of the Executor,
// so a per-file failure can never abort the batch.
func (e *Executor) Attempt(ctx context.Context, path string, src []byte, weight float64) unit.Result {
	logger := ctxlog.FromContext(ctx).With("path", path)

	var key string
	if e.cache != nil {
		key = cache.Key(src)
		cached, ok, err := e.cache.Lookup(key)
		if err != nil {
			logger.Warn("Cache lookup failed, compiling.", "error", err)
		} else if ok {
			logger.Debug("Cache hit.")
			cached.FromCache = true
			return cached
		}
	}

	start := time.Now()
	output, err := e.invoke(ctx, path, src)
	elapsed := time.Since(start)

	if err != nil {
		logger.Debug("Compile attempt failed.", "elapsed", elapsed, "error", err)
		return unit.Result{
			Success: false,
			Errors:  []string{err.Error()},
			Elapsed: elapsed,
		}
	}

	res := unit.Result{
		Success:         true,
		Output:          output,
		Elapsed:         elapsed,
		EfficiencyScore: efficiencyScore(elapsed, weight),
	}
	if e.cache != nil {
		if err := e.cache.Store(key, res); err != nil {
			logger.Warn("Cache store failed.", "error", err)
		}
	}
	logger.Debug("Compile attempt succeeded.", "elapsed", elapsed, "efficiency", res.EfficiencyScore)
	return res
}

// invoke calls the front end, converting a panic into an error.
func (e *Executor) invoke(ctx context.Context, path string, src []byte) (output []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("compiler panic: %v", r)
		}
	}()
	return e.compile(ctx, path, src)
}

// efficiencyScore is a toy relative-performance metric: the expected/actual
// time ratio capped at 1, scaled by the unit's complexity weight. Advisory
// only, never a correctness signal.
func efficiencyScore(elapsed time.Duration, weight float64) float64 {
	if elapsed <= 0 {
		return weight
	}
	ratio := float64(expectedCompileTime) / float64(elapsed)
	if ratio > 1 {
		ratio = 1
	}
	return ratio * weight
}
