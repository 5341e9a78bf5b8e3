package catalog

import (
	"context"
	"sort"

	"github.com/vk/recipeforge/internal/ctxlog"
	"github.com/vk/recipeforge/internal/recipe"
)

// DependencyRef is a dependency reference as seen across the corpus.
type DependencyRef struct {
	Name    string
	Version string
}

// ResolutionReport classifies every distinct dependency reference in the
// catalog. External references are not an error: the engine may resolve
// them from already-installed software.
type ResolutionReport struct {
	InCatalog []DependencyRef
	External  []DependencyRef
}

// ResolveDependencies walks all registered recipes and classifies each
// dependency reference as resolvable in-catalog or external. It reports,
// it never fails the corpus.
func (c *Catalog) ResolveDependencies(ctx context.Context) *ResolutionReport {
	logger := ctxlog.FromContext(ctx)

	inCatalog := make(map[DependencyRef]struct{})
	external := make(map[DependencyRef]struct{})

	for _, r := range c.Recipes() {
		for _, deps := range [][]recipe.Dependency{r.Dependencies, r.BuildDependencies} {
			for _, dep := range deps {
				ref := DependencyRef{Name: dep.Name, Version: dep.Version}
				if len(c.Lookup(ref.Name, ref.Version)) > 0 {
					inCatalog[ref] = struct{}{}
					continue
				}
				external[ref] = struct{}{}
				logger.Debug("Dependency not found in catalog, left to the engine.",
					"recipe", KeyOf(r).String(), "dependency", ref.Name, "version", ref.Version)
			}
		}
	}

	return &ResolutionReport{
		InCatalog: sortedRefs(inCatalog),
		External:  sortedRefs(external),
	}
}

func sortedRefs(set map[DependencyRef]struct{}) []DependencyRef {
	refs := make([]DependencyRef, 0, len(set))
	for ref := range set {
		refs = append(refs, ref)
	}
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].Name != refs[j].Name {
			return refs[i].Name < refs[j].Name
		}
		return refs[i].Version < refs[j].Version
	})
	return refs
}
