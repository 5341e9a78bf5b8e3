// Package hcl provides the concrete HCL implementation of the recipe
// loading interface defined in the `recipe` package. Recipe files in this
// format are flat top-level attribute bindings; the host OS family is
// exposed to expressions as the OS_NAME variable, which may only be
// referenced from the osdependencies attribute.
package hcl
