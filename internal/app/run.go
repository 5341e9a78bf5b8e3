package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/vk/recipeforge/internal/ctxlog"
	"github.com/vk/recipeforge/internal/fsutil"
	"github.com/vk/recipeforge/internal/recipe"
	"github.com/vk/recipeforge/internal/validate"
)

// Run executes one planning pass: discover recipe files, load and validate
// each one, build the catalog, and report dependency resolution. A
// malformed recipe fails only itself; the rest of the corpus is processed
// regardless.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "path", a.config.RecipePath)

	files, err := fsutil.FindFilesByExtensions(a.config.RecipePath, ExtHCL, ExtYAML)
	if err != nil {
		return fmt.Errorf("failed to discover recipe files: %w", err)
	}
	if len(files) == 0 {
		a.logger.Warn("No recipe files found in path.", "path", a.config.RecipePath)
		return nil
	}
	a.logger.Debug("Recipe files discovered.", "count", len(files))

	var rejected int
	for _, path := range files {
		if err := a.processFile(ctx, path); err != nil {
			rejected++
			var verr validate.ValidationError
			if errors.As(err, &verr) {
				a.logger.Error("Recipe rejected by schema validation.",
					"path", path, "field", verr.Subject(), "error", err)
			} else {
				a.logger.Error("Recipe rejected.", "path", path, "error", err)
			}
		}
	}

	report := a.catalog.ResolveDependencies(ctx)
	a.logger.Info("Recipe corpus processed.",
		"valid", a.catalog.Len(),
		"rejected", rejected,
		"deps_in_catalog", len(report.InCatalog),
		"deps_external", len(report.External),
	)

	if a.config.Strict && rejected > 0 {
		return fmt.Errorf("%d of %d recipe file(s) rejected", rejected, len(files))
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// processFile takes a single recipe file through the load, validate,
// translate, and catalog stages.
func (a *App) processFile(ctx context.Context, path string) error {
	loader, ok := a.loaders[filepath.Ext(path)]
	if !ok {
		return fmt.Errorf("no loader registered for extension %q", filepath.Ext(path))
	}

	rec, err := loader.LoadFile(ctx, path)
	if err != nil {
		return err
	}

	if err := validate.Validate(rec); err != nil {
		return err
	}

	r, err := recipe.FromRecord(rec)
	if err != nil {
		return err
	}
	r.SourceFile = path

	return a.catalog.Add(r)
}
