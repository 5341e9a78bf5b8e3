package validate

import (
	"fmt"
	"sort"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/recipeforge/internal/recipe"
)

// Validate checks a parsed recipe record against the schema contract. It is
// a pure function over its input: no side effects, no I/O, and the same
// record always yields the same result. Checks run in a fixed order and the
// first violation is returned.
func Validate(rec recipe.Record) error {
	if err := checkRequiredFields(rec); err != nil {
		return err
	}
	if err := checkToolchain(rec); err != nil {
		return err
	}
	for _, field := range []string{recipe.FieldDependencies, recipe.FieldBuildDependencies} {
		if err := checkDependencies(rec, field); err != nil {
			return err
		}
	}
	if err := checkOSDependencies(rec); err != nil {
		return err
	}
	if err := checkSanityCheckPaths(rec); err != nil {
		return err
	}
	return checkChecksums(rec)
}

func checkRequiredFields(rec recipe.Record) error {
	for _, field := range recipe.RequiredFields {
		val, ok := rec[field]
		if !ok {
			return &MissingFieldError{Field: field, Reason: "required field is not set"}
		}
		if val.IsNull() {
			return &MissingFieldError{Field: field, Reason: "required field is null"}
		}
		// The toolchain field has its own shape check; every other required
		// field is a plain string.
		if field == recipe.FieldToolchain {
			continue
		}
		if val.Type() != cty.String {
			reason := fmt.Sprintf("expected a string, got %s", recipe.TypeName(val))
			return &MissingFieldError{Field: field, Reason: reason}
		}
	}
	for _, field := range []string{recipe.FieldName, recipe.FieldVersion} {
		if rec[field].AsString() == "" {
			return &MissingFieldError{Field: field, Reason: "must not be empty"}
		}
	}
	return nil
}

func checkToolchain(rec recipe.Record) error {
	if reason := toolchainShape(rec[recipe.FieldToolchain]); reason != "" {
		return &MalformedToolchainError{Field: recipe.FieldToolchain, Reason: reason}
	}
	return nil
}

/// toolchainShape checks one toolchain reference: the system sentinel
// string, a 2-tuple of strings, or a record with exactly name/version keys.
// It returns an empty reason when the shape is valid.
func toolchainShape(val cty.Value) string {
	switch {
	case !val.IsNull() && val.Type() == cty.String:
		if val.AsString() != recipe.SystemToolchainName {
			return fmt.Sprintf("string toolchain must be the %q sentinel, got %q", recipe.SystemToolchainName, val.AsString())
		}
		return ""

	case recipe.IsSequence(val):
		elems := val.AsValueSlice()
		if len(elems) != 2 {
			return fmt.Sprintf("toolchain reference must be a 2-tuple of name and version, got %d elements", len(elems))
		}
		for i, elem := range elems {
			if elem.IsNull() || elem.Type() != cty.String {
				return fmt.Sprintf("toolchain element %d: expected a string, got %s", i, recipe.TypeName(elem))
			}
		}
		return ""

	case recipe.IsMapping(val):
		attrs := val.AsValueMap()
		for _, key := range sortedKeys(attrs) {
			elem := attrs[key]
			if key != "name" && key != "version" {
				return fmt.Sprintf("toolchain record has unrecognized key %q", key)
			}
			if elem.IsNull() || elem.Type() != cty.String {
				return fmt.Sprintf("toolchain %s: expected a string, got %s", key, recipe.TypeName(elem))
			}
		}
		if _, ok := attrs["name"]; !ok {
			return "toolchain record is missing the name key"
		}
		if _, ok := attrs["version"]; !ok {
			return "toolchain record is missing the version key"
		}
		return ""

	default:
		return fmt.Sprintf("expected the %q sentinel or a name/version pair, got %s", recipe.SystemToolchainName, recipe.TypeName(val))
	}
}

func checkDependencies(rec recipe.Record, field string) error {
	val, ok := rec[field]
	if !ok {
		return nil
	}
	if !recipe.IsSequence(val) {
		reason := fmt.Sprintf("expected a list of dependency tuples, got %s", recipe.TypeName(val))
		return &MalformedDependencyError{Field: field, Reason: reason}
	}
	for i, entry := range val.AsValueSlice() {
		if reason := dependencyShape(entry); reason != "" {
			return &MalformedDependencyError{Field: field, Reason: fmt.Sprintf("entry %d: %s", i, reason)}
		}
	}
	return nil
}

// dependencyShape checks the positional tuple form
// (name, version[, versionsuffix[, toolchain]]). Optional elements truncate
// strictly left to right: a toolchain override requires a versionsuffix.
func dependencyShape(val cty.Value) string {
	if !recipe.IsSequence(val) {
		return fmt.Sprintf("expected a dependency tuple, got %s", recipe.TypeName(val))
	}
	elems := val.AsValueSlice()
	if len(elems) < 2 {
		return fmt.Sprintf("dependency tuple needs at least name and version, got %d element(s)", len(elems))
	}
	if len(elems) > 4 {
		return fmt.Sprintf("dependency tuple has at most 4 elements, got %d", len(elems))
	}
	names := []string{"name", "version", "versionsuffix"}
	for i := 0; i < len(elems) && i < 3; i++ {
		if elems[i].IsNull() || elems[i].Type() != cty.String {
			return fmt.Sprintf("%s: expected a string, got %s", names[i], recipe.TypeName(elems[i]))
		}
	}
	if len(elems) == 4 {
		if reason := toolchainShape(elems[3]); reason != "" {
			return fmt.Sprintf("toolchain override: %s", reason)
		}
	}
	return ""
}

func checkOSDependencies(rec recipe.Record) error {
	val, ok := rec[recipe.FieldOSDependencies]
	if !ok {
		return nil
	}
	fail := func(reason string) error {
		return &MalformedOSDependenciesError{Field: recipe.FieldOSDependencies, Reason: reason}
	}
	if !recipe.IsSequence(val) {
		return fail(fmt.Sprintf("expected a list of OS packages, got %s", recipe.TypeName(val)))
	}
	for i, entry := range val.AsValueSlice() {
		switch {
		case !entry.IsNull() && entry.Type() == cty.String:
			// A plain package name.
		case recipe.IsSequence(entry):
			// An alternative set: any one package satisfies the dependency.
			for j, pkg := range entry.AsValueSlice() {
				if pkg.IsNull() || pkg.Type() != cty.String {
					return fail(fmt.Sprintf("entry %d, alternative %d: expected a package name, got %s", i, j, recipe.TypeName(pkg)))
				}
			}
		default:
			return fail(fmt.Sprintf("entry %d: expected a package name or a set of package names, got %s", i, recipe.TypeName(entry)))
		}
	}
	return nil
}

func checkSanityCheckPaths(rec recipe.Record) error {
	val, ok := rec[recipe.FieldSanityCheckPaths]
	if !ok {
		return nil
	}
	fail := func(reason string) error {
		return &MalformedSanityPathsError{Field: recipe.FieldSanityCheckPaths, Reason: reason}
	}
	if !recipe.IsMapping(val) {
		return fail(fmt.Sprintf("expected a record with files/dirs keys, got %s", recipe.TypeName(val)))
	}
	attrs := val.AsValueMap()
	for _, key := range sortedKeys(attrs) {
		if key != recipe.SanityCheckFiles && key != recipe.SanityCheckDirs {
			return fail(fmt.Sprintf("unrecognized key %q", key))
		}
		entry := attrs[key]
		if !recipe.IsSequence(entry) {
			return fail(fmt.Sprintf("%s: expected a list of path templates, got %s", key, recipe.TypeName(entry)))
		}
		for i, path := range entry.AsValueSlice() {
			if path.IsNull() || path.Type() != cty.String {
				return fail(fmt.Sprintf("%s entry %d: expected a path template, got %s", key, i, recipe.TypeName(path)))
			}
		}
	}
	for _, key := range []string{recipe.SanityCheckFiles, recipe.SanityCheckDirs} {
		if _, ok := attrs[key]; !ok {
			return fail(fmt.Sprintf("missing required key %q", key))
		}
	}
	return nil
}

func checkChecksums(rec recipe.Record) error {
	val, ok := rec[recipe.FieldChecksums]
	if !ok {
		return nil
	}
	fail := func(reason string) error {
		return &MalformedChecksumError{Field: recipe.FieldChecksums, Reason: reason}
	}
	if !recipe.IsSequence(val) {
		return fail(fmt.Sprintf("expected a list of checksums, got %s", recipe.TypeName(val)))
	}
	for i, entry := range val.AsValueSlice() {
		switch {
		case !entry.IsNull() && entry.Type() == cty.String:
			// A bare checksum value.
		case recipe.IsSequence(entry):
			pair := entry.AsValueSlice()
			if len(pair) != 2 {
				return fail(fmt.Sprintf("entry %d: checksum pair must have 2 elements, got %d", i, len(pair)))
			}
			if pair[0].IsNull() || pair[0].Type() != cty.String {
				return fail(fmt.Sprintf("entry %d: checksum type must be a string, got %s", i, recipe.TypeName(pair[0])))
			}
			if pair[1].IsNull() || (pair[1].Type() != cty.String && pair[1].Type() != cty.Number) {
				return fail(fmt.Sprintf("entry %d: checksum value must be a string or number, got %s", i, recipe.TypeName(pair[1])))
			}
		default:
			return fail(fmt.Sprintf("entry %d: expected a checksum string or [type, value] pair, got %s", i, recipe.TypeName(entry)))
		}
	}
	return nil
}

func sortedKeys(attrs map[string]cty.Value) []string {
	keys := make([]string, 0, len(attrs))
	for key := range attrs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
