// Package catalog collects validated recipes for one planning pass. It
// enforces the identity invariant (name+version+versionsuffix+toolchain is
// unique across the corpus) and classifies dependency references as
// resolvable in-catalog or left to the external engine. It never schedules
// or executes builds.
package catalog
