package catalog

import (
	"fmt"
	"sort"

	"github.com/vk/recipeforge/internal/recipe"
)

// Key is the identity of a recipe within the corpus.
type Key struct {
	Name          string
	Version       string
	VersionSuffix string
	Toolchain     recipe.Toolchain
}

// KeyOf derives the catalog key of a recipe.
func KeyOf(r *recipe.Recipe) Key {
	return Key{
		Name:          r.Name,
		Version:       r.Version,
		VersionSuffix: r.VersionSuffix,
		Toolchain:     r.Toolchain,
	}
}

// String renders the key in module-name form, e.g.
// "hwloc/1.11.8-GCC-6.4.0-2.28".
func (k Key) String() string {
	s := fmt.Sprintf("%s/%s%s", k.Name, k.Version, k.VersionSuffix)
	if !k.Toolchain.IsSystem() {
		s += "-" + k.Toolchain.String()
	}
	return s
}

// nameVersion indexes recipes by the two elements every dependency
// reference is guaranteed to carry.
type nameVersion struct {
	Name    string
	Version string
}

// Catalog holds all validated recipes of one planning pass.
type Catalog struct {
	recipes map[Key]*recipe.Recipe
	byRef   map[nameVersion][]*recipe.Recipe
}

// New creates and initializes an empty Catalog.
func New() *Catalog {
	return &Catalog{
		recipes: make(map[Key]*recipe.Recipe),
		byRef:   make(map[nameVersion][]*recipe.Recipe),
	}
}

// Add registers a recipe. It fails if a recipe with the same identity key
// was already registered.
func (c *Catalog) Add(r *recipe.Recipe) error {
	key := KeyOf(r)
	if existing, ok := c.recipes[key]; ok {
		return fmt.Errorf("duplicate recipe %s: already provided by %s", key, existing.SourceFile)
	}
	c.recipes[key] = r

	ref := nameVersion{Name: r.Name, Version: r.Version}
	c.byRef[ref] = append(c.byRef[ref], r)
	return nil
}

// Len returns the number of registered recipes.
func (c *Catalog) Len() int {
	return len(c.recipes)
}

// Lookup returns every recipe matching a dependency reference's name and
// version, regardless of versionsuffix or toolchain.
func (c *Catalog) Lookup(name, version string) []*recipe.Recipe {
	return c.byRef[nameVersion{Name: name, Version: version}]
}

// Recipes returns all registered recipes ordered by identity key.
func (c *Catalog) Recipes() []*recipe.Recipe {
	keys := make([]Key, 0, len(c.recipes))
	for key := range c.recipes {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].String() < keys[j].String()
	})

	out := make([]*recipe.Recipe, len(keys))
	for i, key := range keys {
		out[i] = c.recipes[key]
	}
	return out
}
