package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/prismc/internal/config"
	"github.com/vk/prismc/internal/ctxlog"
	"github.com/vk/prismc/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	config   *Config
	profile  *config.Profile
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and registry.
func NewApp(outW io.Writer, cfg *Config, loader config.Loader, modules ...registry.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("Compiler front ends registered.", "count", len(modules), "names", reg.Names())

	var profile *config.Profile
	if cfg.ProfilePath != "" {
		p, err := loader.Load(ctx, cfg.ProfilePath)
		if err != nil {
			// A failure to load the profile is a fatal startup error.
			panic(fmt.Errorf("failed to load profile: %w", err))
		}
		profile = p
		logger.Debug("Profile loaded.", "path", cfg.ProfilePath)
	}

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		config:   cfg,
		profile:  profile,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}
