// Package yaml provides the concrete YAML implementation of the recipe
// loading interface defined in the `recipe` package. A YAML recipe is a
// single mapping document with the same field names as the HCL format;
// decoded values are converted to cty so both formats feed the same
// validator.
package yaml
