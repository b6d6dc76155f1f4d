package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/vk/prismc/internal/cache"
	"github.com/vk/prismc/internal/ctxlog"
	"github.com/vk/prismc/internal/deps"
	"github.com/vk/prismc/internal/executor"
	"github.com/vk/prismc/internal/registry"
	"github.com/vk/prismc/internal/report"
	"github.com/vk/prismc/internal/unit"
	"github.com/vk/prismc/internal/weight"
)

// DefaultMaxCorrectionRounds bounds the correction loop when the caller does
// not say otherwise.
const DefaultMaxCorrectionRounds = 4

// Options configures one batch run.
type Options struct {
	// MaxParallel bounds simultaneously in-flight compile attempts. Must be
	// positive; a zero or negative value is a configuration error, not a
	// default request.
	MaxParallel int

	// MaxCorrectionRounds bounds the correction loop. Zero disables
	// correction entirely; negative is a configuration error.
	MaxCorrectionRounds int

	// Compile is the pluggable front end. Required.
	Compile registry.CompileFunc

	// Cache, when non-nil, is consulted by the executor before each front
	// end invocation.
	Cache cache.Cache

	// Factors override the complexity-weight extension multipliers.
	Factors weight.Factors

	// Extensions are the source extensions tried when matching an import
	// token against batch paths.
	Extensions []string

	// ReadFile is swappable for tests; defaults to os.ReadFile.
	ReadFile func(string) ([]byte, error)
}

// DefaultOptions returns Options with host parallelism and the default
// correction budget for the given front end.
func DefaultOptions(compile registry.CompileFunc) Options {
	return Options{
		MaxParallel:         runtime.NumCPU(),
		MaxCorrectionRounds: DefaultMaxCorrectionRounds,
		Compile:             compile,
	}
}

// validate rejects configuration errors before any work starts.
func (o *Options) validate() error {
	if o.Compile == nil {
		return errors.New("pipeline: compile function is required")
	}
	if o.MaxParallel <= 0 {
		return fmt.Errorf("pipeline: max parallel must be positive, got %d", o.MaxParallel)
	}
	if o.MaxCorrectionRounds < 0 {
		return fmt.Errorf("pipeline: max correction rounds must not be negative, got %d", o.MaxCorrectionRounds)
	}
	return nil
}

// defaults fills the optional hooks.
func (o *Options) defaults() {
	if o.Factors == nil {
		o.Factors = weight.DefaultFactors()
	}
	if len(o.Extensions) == 0 {
		o.Extensions = []string{".ts", ".tsx", ".js", ".jsx"}
	}
	if o.ReadFile == nil {
		o.ReadFile = os.ReadFile
	}
}

// Pipeline drives one batch through the four sequential phases. A Pipeline
// runs a single batch; create a new one per Run.
type Pipeline struct {
	opts     Options
	store    *unit.Store
	sem      *semaphore.Weighted
	resolver *deps.Resolver
	exec     *executor.Executor
}

// New validates opts and prepares a Pipeline.
func New(opts Options) (*Pipeline, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	opts.defaults()

	resolver := deps.New()
	resolver.ReadFile = opts.ReadFile

	return &Pipeline{
		opts:     opts,
		sem:      semaphore.NewWeighted(int64(opts.MaxParallel)),
		resolver: resolver,
		exec:     executor.New(opts.Compile, opts.Cache),
	}, nil
}

// Store exposes the batch state after Run, for callers that want per-unit
// edges and retry counts in addition to the results map.
func (p *Pipeline) Store() *unit.Store {
	return p.store
}

// Run executes the batch: Init -> Link -> Execute -> Correct. It returns one
// result per input path; per-file failures are recorded in the results, and
// only configuration errors or cancellation produce a non-nil error.
func (p *Pipeline) Run(ctx context.Context, paths []string) (map[string]unit.Result, report.Summary, error) {
	runID := uuid.NewString()
	logger := ctxlog.FromContext(ctx).With("batch", runID)
	ctx = ctxlog.WithLogger(ctx, logger)

	start := time.Now()
	p.store = unit.NewStore(paths)
	logger.Info("Batch starting.", "files", p.store.Len(), "maxParallel", p.opts.MaxParallel)

	phases := []struct {
		name string
		run  func(context.Context) error
	}{
		{"init", p.initPhase},
		{"link", p.linkPhase},
		{"execute", p.executePhase},
		{"correct", p.correctPhase},
	}
	for _, phase := range phases {
		if err := ctx.Err(); err != nil {
			return nil, report.Summary{}, err
		}
		logger.Debug("Phase starting.", "phase", phase.name)
		if err := phase.run(ctx); err != nil {
			return nil, report.Summary{}, fmt.Errorf("%s phase: %w", phase.name, err)
		}
		logger.Debug("Phase drained.", "phase", phase.name)
	}

	results := p.store.Results()
	summary := report.Summarize(runID, results, time.Since(start))
	logger.Info("Batch complete.",
		"succeeded", summary.Succeeded,
		"failed", summary.Failed,
		"wallTime", summary.TotalElapsed,
		"estSpeedup", fmt.Sprintf("%.2f", summary.EstimatedSpeedup),
	)
	return results, summary, nil
}

// Run is the package-level entry point for callers that do not need to
// inspect per-unit state afterward.
func Run(ctx context.Context, paths []string, opts Options) (map[string]unit.Result, report.Summary, error) {
	p, err := New(opts)
	if err != nil {
		return nil, report.Summary{}, err
	}
	return p.Run(ctx, paths)
}
