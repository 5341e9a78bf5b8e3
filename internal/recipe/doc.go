// Package recipe defines the format-agnostic representation of a build
// recipe: the raw Record produced by a Loader, the typed Recipe model
// handed to the build-orchestration engine, and the translation between
// the two. Concrete loaders for the supported on-disk formats live in
// separate packages.
package recipe
