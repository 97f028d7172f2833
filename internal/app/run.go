package app

import (
	"context"
	"fmt"

	"github.com/vk/scriptbasic/internal/ctxlog"
	"github.com/vk/scriptbasic/internal/script"
)

// Run loads the configured pipeline and executes it sequentially.
func (a *App) Run(ctx context.Context, appConfig *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	loader := script.NewLoader()
	steps, err := loader.Load(ctx, appConfig.ScriptPath)
	if err != nil {
		return fmt.Errorf("failed to load pipeline: %w", err)
	}

	a.logger.Info("Action verbs registered:", "count", len(a.registry.Verbs()), "verbs", a.registry.Verbs())

	if len(steps) == 0 {
		a.logger.Warn("No actions found in pipeline, execution not required.")
		return nil
	}

	a.logger.Info("🚀 Starting pipeline execution...", "steps", len(steps))
	runner := script.NewRunner(a.dispatcher)
	if err := runner.Run(ctx, a.session, steps); err != nil {
		return fmt.Errorf("execution failed: %w", err)
	}
	a.logger.Info("🏁 Execution finished.")

	a.logger.Debug("App.Run method finished.")
	return nil
}
