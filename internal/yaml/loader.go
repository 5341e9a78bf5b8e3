package yaml

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vk/recipeforge/internal/ctxlog"
	"github.com/vk/recipeforge/internal/recipe"
)

// Loader is the YAML-specific implementation of the recipe.Loader interface.
type Loader struct{}

// NewLoader creates a YAML recipe loader.
func NewLoader() *Loader {
	return &Loader{}
}

// LoadFile decodes a single YAML recipe document into a format-agnostic
// Record.
func (l *Loader) LoadFile(ctx context.Context, path string) (recipe.Record, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Parsing YAML recipe file.", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("recipe %s is empty", path)
	}

	rec := make(recipe.Record, len(doc))
	for name, raw := range doc {
		val, err := toCtyValue(raw)
		if err != nil {
			return nil, fmt.Errorf("field %q in %s: %w", name, path, err)
		}
		rec[name] = val
	}

	logger.Debug("YAML recipe file loaded.", "path", path, "fields", len(rec))
	return rec, nil
}
