package app

import (
	"io"
	"log/slog"

	"github.com/vk/recipeforge/internal/catalog"
	hclloader "github.com/vk/recipeforge/internal/hcl"
	"github.com/vk/recipeforge/internal/recipe"
	yamlloader "github.com/vk/recipeforge/internal/yaml"
)

// Recipe file extensions, mapped to their loaders in NewApp.
const (
	ExtHCL  = ".ebh"
	ExtYAML = ".eby"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	config  *Config
	loaders map[string]recipe.Loader
	catalog *catalog.Catalog
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger, loaders for
// every supported recipe format, and an empty catalog.
func NewApp(outW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	loaders := map[string]recipe.Loader{
		ExtHCL:  hclloader.NewLoader(cfg.OSName),
		ExtYAML: yamlloader.NewLoader(),
	}
	logger.Debug("Recipe loaders registered.", "formats", len(loaders))

	return &App{
		outW:    outW,
		logger:  logger,
		config:  cfg,
		loaders: loaders,
		catalog: catalog.New(),
	}
}

// Catalog returns the application's recipe catalog. This is primarily for
// testing.
func (a *App) Catalog() *catalog.Catalog {
	return a.catalog
}
