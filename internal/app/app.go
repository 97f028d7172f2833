package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/vk/scriptbasic/internal/ctxlog"
	"github.com/vk/scriptbasic/internal/dispatcher"
	"github.com/vk/scriptbasic/internal/registry"
	"github.com/vk/scriptbasic/internal/session"
)

// App encapsulates the host's dependencies, configuration, and lifecycle.
type App struct {
	outW       io.Writer
	logger     *slog.Logger
	registry   *registry.Registry
	dispatcher *dispatcher.Dispatcher
	session    *session.Session
}

// NewApp constructs a fully initialized App with its own isolated logger,
// registry, and session. Passing no modules selects the compiled-in core
// set. A handler that violates the action contract is a programmer error
// and panics here, at startup.
func NewApp(outW io.Writer, appConfig *Config, modules ...registry.Module) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All action modules registered.", "count", len(modules))

	if err := reg.Validate(ctx); err != nil {
		panic(err)
	}
	logger.Debug("Registry validation passed.", "verbs", reg.Verbs())

	return &App{
		outW:       outW,
		logger:     logger,
		registry:   reg,
		dispatcher: dispatcher.New(reg),
		session:    session.New(),
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Session returns the application's session. This is primarily for testing.
func (a *App) Session() *session.Session {
	return a.session
}
