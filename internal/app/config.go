package app

import (
	"errors"
	"fmt"

	"github.com/vk/recipeforge/internal/recipe"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	RecipePath string // a recipe file, or a directory tree of recipe files
	OSName     string // OS family OS_NAME conditionals evaluate against

	LogFormat string
	LogLevel  string

	// Strict makes the run fail when any recipe in the corpus is invalid,
	// instead of only reporting it.
	Strict bool
}

// NewConfig validates a Config and fills in nothing: defaults are the CLI
// layer's job.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.RecipePath == "" {
		return nil, errors.New("RecipePath is a required configuration field and cannot be empty")
	}
	if !recipe.IsKnownOSFamily(cfg.OSName) {
		return nil, fmt.Errorf("unknown OS family %q", cfg.OSName)
	}
	return &cfg, nil
}
