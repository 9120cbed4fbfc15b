package app

import (
	"context"
	"fmt"

	"github.com/vk/infinitytest/internal/ctxlog"
	"github.com/vk/infinitytest/internal/options"
	"github.com/vk/infinitytest/internal/plan"
)

// Run performs the action the command line asks for: writing a starter
// declaration file, listing the heuristics, or printing the resolved plan.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	settings := options.Parse(a.config.Args)
	if settings.GenerateFile {
		return a.generateFile()
	}

	cfg, err := a.Configure(ctx)
	if err != nil {
		return err
	}

	if settings.ShowHeuristics {
		a.writeHeuristics(cfg.Heuristics(nil).Rules())
		return nil
	}

	entries, err := plan.Resolve(ctx, cfg, cfg.Binaries(), a.env)
	if err != nil {
		return fmt.Errorf("failed to resolve plan: %w", err)
	}
	a.writePlan(cfg, entries)

	a.logger.Debug("App.Run method finished.", "entries", len(entries))
	return nil
}
