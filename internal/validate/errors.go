package validate

import "fmt"

// ValidationError is the common shape of every schema violation: the recipe
// field at fault and a human-readable reason. The concrete types below let
// callers distinguish violation kinds with errors.As.
type ValidationError interface {
	error
	// Subject returns the name of the violating recipe field.
	Subject() string
}

// MissingFieldError reports a required field that is absent, empty, or not
// of its required type.
type MissingFieldError struct {
	Field  string
	Reason string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("recipe field %q: %s", e.Field, e.Reason)
}

// Subject returns the violating field name.
func (e *MissingFieldError) Subject() string { return e.Field }

// MalformedToolchainError reports a toolchain reference that is neither the
// system sentinel nor a well-formed name/version pair.
type MalformedToolchainError struct {
	Field  string
	Reason string
}

func (e *MalformedToolchainError) Error() string {
	return fmt.Sprintf("recipe field %q: %s", e.Field, e.Reason)
}

// Subject returns the violating field name.
func (e *MalformedToolchainError) Subject() string { return e.Field }

// MalformedDependencyError reports a dependency entry that is not a valid
// (name, version[, versionsuffix[, toolchain]]) tuple.
type MalformedDependencyError struct {
	Field  string
	Reason string
}

func (e *MalformedDependencyError) Error() string {
	return fmt.Sprintf("recipe field %q: %s", e.Field, e.Reason)
}

// Subject returns the violating field name.
func (e *MalformedDependencyError) Subject() string { return e.Field }

// MalformedOSDependenciesError reports an osdependencies value that is not
// a sequence of package names or alternative sets of package names.
type MalformedOSDependenciesError struct {
	Field  string
	Reason string
}

func (e *MalformedOSDependenciesError) Error() string {
	return fmt.Sprintf("recipe field %q: %s", e.Field, e.Reason)
}

// Subject returns the violating field name.
func (e *MalformedOSDependenciesError) Subject() string { return e.Field }

// MalformedSanityPathsError reports a sanity_check_paths record with
// unrecognized or missing keys, or non-string path entries.
type MalformedSanityPathsError struct {
	Field  string
	Reason string
}

func (e *MalformedSanityPathsError) Error() string {
	return fmt.Sprintf("recipe field %q: %s", e.Field, e.Reason)
}

// Subject returns the violating field name.
func (e *MalformedSanityPathsError) Subject() string { return e.Field }

// MalformedChecksumError reports a checksums entry that is neither a plain
// checksum string nor a [type, value] pair.
type MalformedChecksumError struct {
	Field  string
	Reason string
}

func (e *MalformedChecksumError) Error() string {
	return fmt.Sprintf("recipe field %q: %s", e.Field, e.Reason)
}

// Subject returns the violating field name.
func (e *MalformedChecksumError) Subject() string { return e.Field }
