// This file contains the logic for translating a validated Record into the
// typed Recipe model consumed by the catalog and the external engine.

package recipe

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

// FromRecord converts a validated Record into a typed Recipe. It expects a
// record that already passed schema validation; structurally malformed
// values are still reported as errors rather than silently dropped.
func FromRecord(rec Record) (*Recipe, error) {
	r := &Recipe{}

	scalars := map[string]*string{
		FieldEasyblock:     &r.Easyblock,
		FieldName:          &r.Name,
		FieldVersion:       &r.Version,
		FieldVersionSuffix: &r.VersionSuffix,
		FieldHomepage:      &r.Homepage,
		FieldDescription:   &r.Description,
		FieldConfigOpts:    &r.ConfigOpts,
		FieldBuildOpts:     &r.BuildOpts,
		FieldInstallOpts:   &r.InstallOpts,
		FieldModuleClass:   &r.ModuleClass,
	}
	stringLists := map[string]*[]string{
		FieldSources:    &r.Sources,
		FieldSourceURLs: &r.SourceURLs,
		FieldPatches:    &r.Patches,
	}
	depLists := map[string]*[]Dependency{
		FieldDependencies:      &r.Dependencies,
		FieldBuildDependencies: &r.BuildDependencies,
	}

	for field, val := range rec {
		var err error
		switch {
		case scalars[field] != nil:
			err = decodeString(val, scalars[field])
		case stringLists[field] != nil:
			*stringLists[field], err = decodeStringSlice(val)
		case depLists[field] != nil:
			*depLists[field], err = decodeDependencies(val)
		case field == FieldToolchain:
			r.Toolchain, err = decodeToolchain(val)
		case field == FieldChecksums:
			r.Checksums, err = decodeChecksums(val)
		case field == FieldOSDependencies:
			r.OSDependencies, err = decodeOSDependencies(val)
		case field == FieldSanityCheckPaths:
			r.SanityCheckPaths, err = decodeSanityCheckPaths(val)
		default:
			if r.Extra == nil {
				r.Extra = make(map[string]cty.Value)
			}
			r.Extra[field] = val
		}
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", field, err)
		}
	}

	return r, nil
}

func decodeString(val cty.Value, target *string) error {
	if val.IsNull() || val.Type() != cty.String {
		return fmt.Errorf("expected a string, got %s", TypeName(val))
	}
	*target = val.AsString()
	return nil
}

func decodeStringSlice(val cty.Value) ([]string, error) {
	if !IsSequence(val) {
		return nil, fmt.Errorf("expected a list of strings, got %s", TypeName(val))
	}
	elems := val.AsValueSlice()
	out := make([]string, len(elems))
	for i, elem := range elems {
		if err := decodeString(elem, &out[i]); err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
	}
	return out, nil
}

// decodeToolchain accepts the system sentinel string, a [name, version]
// 2-tuple, or a {name, version} record.
func decodeToolchain(val cty.Value) (Toolchain, error) {
	switch {
	case !val.IsNull() && val.Type() == cty.String:
		if val.AsString() != SystemToolchainName {
			return Toolchain{}, fmt.Errorf("string toolchain must be the %q sentinel, got %q", SystemToolchainName, val.AsString())
		}
		return SystemToolchain(), nil

	case IsSequence(val):
		elems := val.AsValueSlice()
		if len(elems) != 2 {
			return Toolchain{}, fmt.Errorf("toolchain reference must have exactly 2 elements, got %d", len(elems))
		}
		var tc Toolchain
		if err := decodeString(elems[0], &tc.Name); err != nil {
			return Toolchain{}, fmt.Errorf("toolchain name: %w", err)
		}
		if err := decodeString(elems[1], &tc.Version); err != nil {
			return Toolchain{}, fmt.Errorf("toolchain version: %w", err)
		}
		return tc, nil

	case IsMapping(val):
		var tc Toolchain
		for key, elem := range val.AsValueMap() {
			var err error
			switch key {
			case "name":
				err = decodeString(elem, &tc.Name)
			case "version":
				err = decodeString(elem, &tc.Version)
			default:
				err = fmt.Errorf("unrecognized key %q", key)
			}
			if err != nil {
				return Toolchain{}, err
			}
		}
		if tc.Name == "" || tc.Version == "" {
			return Toolchain{}, fmt.Errorf("toolchain record needs both name and version")
		}
		return tc, nil

	default:
		return Toolchain{}, fmt.Errorf("expected toolchain reference, got %s", TypeName(val))
	}
}

// decodeDependencies converts the positional tuple form
// (name, version[, versionsuffix[, toolchain]]). Trailing elements truncate
// strictly left to right.
func decodeDependencies(val cty.Value) ([]Dependency, error) {
	if !IsSequence(val) {
		return nil, fmt.Errorf("expected a list of dependency tuples, got %s", TypeName(val))
	}
	elems := val.AsValueSlice()
	out := make([]Dependency, 0, len(elems))
	for i, entry := range elems {
		dep, err := decodeDependency(entry)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		out = append(out, dep)
	}
	return out, nil
}

func decodeDependency(val cty.Value) (Dependency, error) {
	if !IsSequence(val) {
		return Dependency{}, fmt.Errorf("expected a dependency tuple, got %s", TypeName(val))
	}
	elems := val.AsValueSlice()
	if len(elems) < 2 || len(elems) > 4 {
		return Dependency{}, fmt.Errorf("dependency tuple must have 2 to 4 elements, got %d", len(elems))
	}

	var dep Dependency
	if err := decodeString(elems[0], &dep.Name); err != nil {
		return Dependency{}, fmt.Errorf("name: %w", err)
	}
	if err := decodeString(elems[1], &dep.Version); err != nil {
		return Dependency{}, fmt.Errorf("version: %w", err)
	}
	if len(elems) >= 3 {
		if err := decodeString(elems[2], &dep.VersionSuffix); err != nil {
			return Dependency{}, fmt.Errorf("versionsuffix: %w", err)
		}
	}
	if len(elems) == 4 {
		tc, err := decodeToolchain(elems[3])
		if err != nil {
			return Dependency{}, fmt.Errorf("toolchain: %w", err)
		}
		dep.Toolchain = &tc
	}
	return dep, nil
}

func decodeChecksums(val cty.Value) ([]Checksum, error) {
	if !IsSequence(val) {
		return nil, fmt.Errorf("expected a list of checksums, got %s", TypeName(val))
	}
	elems := val.AsValueSlice()
	out := make([]Checksum, 0, len(elems))
	for i, entry := range elems {
		switch {
		case !entry.IsNull() && entry.Type() == cty.String:
			out = append(out, Checksum{Value: entry.AsString()})
		case IsSequence(entry):
			pair := entry.AsValueSlice()
			if len(pair) != 2 {
				return nil, fmt.Errorf("entry %d: checksum pair must have 2 elements, got %d", i, len(pair))
			}
			var cs Checksum
			if err := decodeString(pair[0], &cs.Type); err != nil {
				return nil, fmt.Errorf("entry %d: checksum type: %w", i, err)
			}
			// Size checksums carry a numeric value.
			switch {
			case !pair[1].IsNull() && pair[1].Type() == cty.Number:
				cs.Value = pair[1].AsBigFloat().Text('f', -1)
			default:
				if err := decodeString(pair[1], &cs.Value); err != nil {
					return nil, fmt.Errorf("entry %d: checksum value: %w", i, err)
				}
			}
			out = append(out, cs)
		default:
			return nil, fmt.Errorf("entry %d: expected checksum string or [type, value] pair, got %s", i, TypeName(entry))
		}
	}
	return out, nil
}

// decodeOSDependencies normalizes each entry to an alternative set: a plain
// package name becomes a one-element set.
func decodeOSDependencies(val cty.Value) ([]OSPackageSet, error) {
	if !IsSequence(val) {
		return nil, fmt.Errorf("expected a list of OS packages, got %s", TypeName(val))
	}
	elems := val.AsValueSlice()
	out := make([]OSPackageSet, 0, len(elems))
	for i, entry := range elems {
		switch {
		case !entry.IsNull() && entry.Type() == cty.String:
			out = append(out, OSPackageSet{entry.AsString()})
		case IsSequence(entry):
			set, err := decodeStringSlice(entry)
			if err != nil {
				return nil, fmt.Errorf("entry %d: %w", i, err)
			}
			out = append(out, OSPackageSet(set))
		default:
			return nil, fmt.Errorf("entry %d: expected package name or set of package names, got %s", i, TypeName(entry))
		}
	}
	return out, nil
}

func decodeSanityCheckPaths(val cty.Value) (*SanityCheckPaths, error) {
	if !IsMapping(val) {
		return nil, fmt.Errorf("expected a record with files/dirs keys, got %s", TypeName(val))
	}
	scp := &SanityCheckPaths{}
	for key, elem := range val.AsValueMap() {
		var err error
		switch key {
		case SanityCheckFiles:
			scp.Files, err = decodeStringSlice(elem)
		case SanityCheckDirs:
			scp.Dirs, err = decodeStringSlice(elem)
		default:
			err = fmt.Errorf("unrecognized key %q", key)
		}
		if err != nil {
			return nil, err
		}
	}
	return scp, nil
}

// IsSequence reports whether the value is a non-null tuple, list or set.
func IsSequence(val cty.Value) bool {
	if val.IsNull() {
		return false
	}
	ty := val.Type()
	return ty.IsTupleType() || ty.IsListType() || ty.IsSetType()
}

// IsMapping reports whether the value is a non-null object or map.
func IsMapping(val cty.Value) bool {
	if val.IsNull() {
		return false
	}
	ty := val.Type()
	return ty.IsObjectType() || ty.IsMapType()
}

func TypeName(val cty.Value) string {
	if val.IsNull() {
		return "null"
	}
	return val.Type().FriendlyName()
}
