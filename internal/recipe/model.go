package recipe

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

// SystemToolchainName is the sentinel toolchain name for recipes built
// directly against the host compiler, outside any named toolchain.
const SystemToolchainName = "system"

// Toolchain is a named, versioned compiler/library stack a recipe builds
// against.
type Toolchain struct {
	Name    string
	Version string
}

// SystemToolchain returns the sentinel toolchain reference.
func SystemToolchain() Toolchain {
	return Toolchain{Name: SystemToolchainName}
}

// IsSystem reports whether the toolchain is the system sentinel.
func (t Toolchain) IsSystem() bool {
	return t.Name == SystemToolchainName && t.Version == ""
}

// String renders the toolchain in module-name form, e.g. "GCC-6.4.0-2.28".
func (t Toolchain) String() string {
	if t.IsSystem() {
		return SystemToolchainName
	}
	return fmt.Sprintf("%s-%s", t.Name, t.Version)
}

// Dependency is a reference from one recipe to another, in the positional
// tuple form (name, version[, versionsuffix[, toolchain]]). Omitted trailing
// elements stay zero-valued; a nil Toolchain means the dependency builds
// with the dependent recipe's own toolchain.
type Dependency struct {
	Name          string
	Version       string
	VersionSuffix string
	Toolchain     *Toolchain
}

// OSPackageSet is one alternative set of OS package names; any single
// package in the set satisfies the dependency on its OS family.
type OSPackageSet []string

// SanityCheckPaths lists the path templates whose existence confirms a
// build produced the expected artifact.
type SanityCheckPaths struct {
	Files []string
	Dirs  []string
}

// Checksum verifies one source or patch file. An empty Type means the
// engine's default checksum algorithm.
type Checksum struct {
	Type  string
	Value string
}

// Recipe is the typed model of a validated recipe record. Recipes are
// authored once and read-only thereafter; the engine discards them after
// the build they describe completes.
type Recipe struct {
	Easyblock     string
	Name          string
	Version       string
	VersionSuffix string

	Homepage    string
	Description string

	Toolchain Toolchain

	Dependencies      []Dependency
	BuildDependencies []Dependency

	Sources    []string
	SourceURLs []string
	Patches    []string
	Checksums  []Checksum

	ConfigOpts  string
	BuildOpts   string
	InstallOpts string

	OSDependencies   []OSPackageSet
	SanityCheckPaths *SanityCheckPaths

	ModuleClass string

	// Extra holds declared fields this layer does not recognize; they are
	// passed through to the engine untouched.
	Extra map[string]cty.Value

	// SourceFile is the path the recipe was loaded from.
	SourceFile string
}

// FullVersion renders version plus suffix, e.g. "9.1.85" or "2.1.2-CUDA-9.1.85".
func (r *Recipe) FullVersion() string {
	return r.Version + r.VersionSuffix
}
