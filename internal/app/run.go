package app

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/vk/prismc/internal/cache"
	"github.com/vk/prismc/internal/ctxlog"
	"github.com/vk/prismc/internal/fsutil"
	"github.com/vk/prismc/internal/pipeline"
	"github.com/vk/prismc/internal/report"
	"github.com/vk/prismc/internal/weight"
)

// settings are the fully resolved per-run values after layering flags over
// the profile over built-in defaults.
type settings struct {
	sourcePath       string
	compiler         string
	maxParallel      int
	correctionRounds int
	cachePath        string
	weightsPath      string
	extensions       []string
}

// resolve layers the CLI config over the optional profile.
func (a *App) resolve() (*settings, error) {
	s := &settings{
		sourcePath:       a.config.SourcePath,
		compiler:         a.config.Compiler,
		maxParallel:      a.config.MaxParallel,
		correctionRounds: a.config.CorrectionRounds,
		cachePath:        a.config.CachePath,
		weightsPath:      a.config.WeightsPath,
		extensions:       a.config.Extensions,
	}

	if p := a.profile; p != nil {
		if s.sourcePath == "" && p.SourcePath != nil {
			s.sourcePath = *p.SourcePath
		}
		if s.compiler == "" && p.Compiler != nil {
			s.compiler = *p.Compiler
		}
		if s.maxParallel == 0 && p.MaxParallel != nil {
			s.maxParallel = *p.MaxParallel
		}
		if s.correctionRounds < 0 && p.MaxCorrectionRounds != nil {
			s.correctionRounds = *p.MaxCorrectionRounds
		}
		if s.cachePath == "" && p.CachePath != nil {
			s.cachePath = *p.CachePath
		}
		if s.weightsPath == "" && p.WeightsPath != nil {
			s.weightsPath = *p.WeightsPath
		}
		if len(s.extensions) == 0 {
			s.extensions = p.Extensions
		}
	}

	if s.sourcePath == "" {
		return nil, fmt.Errorf("no source path given by flags or profile")
	}
	if s.compiler == "" {
		s.compiler = "passthrough"
	}
	if s.maxParallel == 0 {
		s.maxParallel = runtime.NumCPU()
	}
	if s.correctionRounds < 0 {
		s.correctionRounds = pipeline.DefaultMaxCorrectionRounds
	}
	if len(s.extensions) == 0 {
		s.extensions = []string{".ts", ".tsx", ".js", ".jsx"}
	}
	return s, nil
}

// Run executes the main application logic: discover sources, run the batch
// pipeline, and print the efficiency summary.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	s, err := a.resolve()
	if err != nil {
		return err
	}

	compile, ok := a.registry.Compiler(s.compiler)
	if !ok {
		return fmt.Errorf("unknown compiler %q (registered: %s)",
			s.compiler, strings.Join(a.registry.Names(), ", "))
	}

	paths, err := a.discover(s)
	if err != nil {
		return fmt.Errorf("discovering sources: %w", err)
	}
	if len(paths) == 0 {
		a.logger.Warn("No source files found, nothing to compile.", "path", s.sourcePath)
		return nil
	}
	a.logger.Info("Sources discovered.", "count", len(paths), "compiler", s.compiler)

	opts := pipeline.Options{
		MaxParallel:         s.maxParallel,
		MaxCorrectionRounds: s.correctionRounds,
		Compile:             compile,
		Extensions:          s.extensions,
	}

	if s.weightsPath != "" {
		factors, err := weight.LoadFactors(s.weightsPath)
		if err != nil {
			return err
		}
		opts.Factors = factors
	}

	if s.cachePath != "" {
		c, err := cache.OpenSQLite(s.cachePath)
		if err != nil {
			return err
		}
		defer c.Close()
		opts.Cache = c
		a.logger.Debug("Result cache enabled.", "path", s.cachePath)
	}

	_, summary, err := pipeline.Run(ctx, paths, opts)
	if err != nil {
		return fmt.Errorf("batch run: %w", err)
	}

	fmt.Fprint(a.outW, report.Render(summary))
	a.logger.Debug("App.Run method finished.")
	return nil
}

// discover expands the source path into the batch's input paths. A single
// file becomes a one-element batch; a directory is walked for sources.
func (a *App) discover(s *settings) ([]string, error) {
	info, err := os.Stat(s.sourcePath)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{s.sourcePath}, nil
	}
	return fsutil.FindSources(s.sourcePath, s.extensions)
}
