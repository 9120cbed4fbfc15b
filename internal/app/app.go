package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/infinitytest/internal/config"
	"github.com/vk/infinitytest/internal/ctxlog"
	"github.com/vk/infinitytest/internal/environment"
	"github.com/vk/infinitytest/internal/options"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	config  *Config
	loaders Loaders
	env     environment.Service
}

// NewApp is the constructor for the main application. The logger it builds is
// isolated from the global one.
func NewApp(outW io.Writer, appConfig *Config, loaders Loaders, env environment.Service) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:    outW,
		logger:  logger,
		config:  appConfig,
		loaders: loaders,
		env:     env,
	}
}

// Configure builds the effective configuration: defaults, then the
// declaration file if one is found, then the command-line arguments.
func (a *App) Configure(ctx context.Context) (*config.Configuration, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	var decls []config.Declaration
	path, found, err := findDeclarationFile(a.config)
	if err != nil {
		return nil, err
	}
	if found {
		loader, err := a.loaders.For(path)
		if err != nil {
			return nil, err
		}
		decl, err := loader.Load(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("failed to load declaration file: %w", err)
		}
		a.logger.Debug("Declaration file loaded.", "path", path)
		decls = append(decls, decl)
	} else {
		a.logger.Debug("No declaration file found, using defaults.", "work_dir", a.config.WorkDir, "home_dir", a.config.HomeDir)
	}

	cfg, err := config.Declare(decls...)
	if err != nil {
		return nil, fmt.Errorf("failed to apply declaration file %s: %w", path, err)
	}

	cfg.Use(*options.ParseOnto(cfg.Settings(), a.config.Args))
	a.logger.Debug("Command-line settings applied.",
		"test_framework", cfg.TestFramework(),
		"app_framework", cfg.AppFramework(),
		"rubies", cfg.Rubies().String(),
	)
	return cfg, nil
}
