// Package validate implements the recipe schema validator: a pure,
// stateless check of a parsed recipe Record against the schema contract.
// It verifies that the required fields are present and well-typed and that
// dependency references are well-formed tuples; it performs no I/O and
// fails fast on the first violated check. Dependency resolution and build
// execution belong to the external engine.
package validate
