package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/expconf/config"
	"github.com/specialistvlad/expconf/internal/ctxlog"
	"github.com/specialistvlad/expconf/internal/registry"
	"github.com/specialistvlad/expconf/internal/schemafile"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	registry *registry.Registry
	spec     *config.Spec
}

// NewApp loads the schema named by cfg and resolves the requested type.
// Results are written to outW and logs to logW.
func NewApp(outW, logW io.Writer, cfg *Config) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	reg := registry.New()
	if _, err := schemafile.NewLoader(reg).Load(ctx, cfg.SchemaPath); err != nil {
		return nil, fmt.Errorf("failed to load schema: %w", err)
	}
	logger.Debug("Schema registered.", "types", reg.Names())

	spec, err := reg.Get(cfg.TypeName)
	if err != nil {
		return nil, err
	}

	return &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		registry: reg,
		spec:     spec,
	}, nil
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}
