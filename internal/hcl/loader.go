package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/recipeforge/internal/ctxlog"
	"github.com/vk/recipeforge/internal/recipe"
)

// OSNameVariable is the expression variable carrying the host OS family.
const OSNameVariable = "OS_NAME"

// Loader is the HCL-specific implementation of the recipe.Loader interface.
type Loader struct {
	osName string
	parser *hclparse.Parser
}

// NewLoader creates a recipe loader that evaluates OS_NAME conditionals
// against the given OS family.
func NewLoader(osName string) *Loader {
	return &Loader{
		osName: osName,
		parser: hclparse.NewParser(),
	}
}

// LoadFile parses a single HCL recipe file and evaluates its attributes
// into a format-agnostic Record.
func (l *Loader) LoadFile(ctx context.Context, path string) (recipe.Record, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Parsing HCL recipe file.", "path", path)

	file, diags := l.parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %s: %w", path, diags)
	}

	// Recipe files are flat name/value bindings, so every top-level
	// construct must be an attribute; JustAttributes rejects blocks.
	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to read attributes of %s: %w", path, diags)
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			OSNameVariable: cty.StringVal(l.osName),
		},
	}

	rec := make(recipe.Record, len(attrs))
	for name, attr := range attrs {
		if name != recipe.FieldOSDependencies {
			for _, traversal := range attr.Expr.Variables() {
				if traversal.RootName() == OSNameVariable {
					return nil, fmt.Errorf("%s: %s may only be referenced from %s, found in field %q",
						path, OSNameVariable, recipe.FieldOSDependencies, name)
				}
			}
		}

		val, diags := attr.Expr.Value(evalCtx)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to evaluate field %q in %s: %w", name, path, diags)
		}
		rec[name] = val
	}

	logger.Debug("HCL recipe file loaded.", "path", path, "fields", len(rec))
	return rec, nil
}
