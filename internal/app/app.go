package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/vk/gategrid/internal/config"
	"github.com/vk/gategrid/internal/ctxlog"
	"github.com/vk/gategrid/internal/gate"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	ctx        context.Context
	outW       io.Writer
	logger     *slog.Logger
	config     *Config
	model      *config.Model
	catalog    *gate.Catalog
	httpServer *http.Server
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger and gate catalog.
func NewApp(outW io.Writer, cfg *Config, loader config.Loader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	// Load all configuration into the format-agnostic model first.
	cfgModel, err := loader.Load(ctx, cfg.ConfigPaths...)
	if err != nil {
		// A failure to load config is a fatal startup error.
		panic(fmt.Errorf("failed to load configuration: %w", err))
	}
	logger.Debug("Configuration loaded and translated into unified model.", "custom_gates", len(cfgModel.Gates))

	if cfg.Width > 0 {
		cfgModel.Editor.Width = cfg.Width
	}
	if cfg.Height > 0 {
		cfgModel.Editor.Height = cfg.Height
	}
	if err := validate.Struct(cfgModel.Editor); err != nil {
		panic(fmt.Errorf("invalid editor settings: %w", describeValidation(err)))
	}

	catalog := gate.NewCatalog()
	catalog.PopulateFromModel(cfgModel)
	if err := catalog.Validate(ctx); err != nil {
		panic(fmt.Errorf("invalid gate definitions: %w", err))
	}
	logger.Debug("Gate catalog validation passed.", "tags", catalog.Tags())

	return &App{
		ctx:     ctx,
		outW:    outW,
		logger:  logger,
		config:  cfg,
		model:   cfgModel,
		catalog: catalog,
	}
}

// Catalog returns the application's gate catalog. This is primarily for testing.
func (a *App) Catalog() *gate.Catalog {
	return a.catalog
}
