// Package hcl provides the HCL implementation of the config.Loader interface.
// It parses a declaration file, decodes it into the schema.File structures
// with gohcl and translates the result into the format-agnostic
// schema.Document, using cty to accept the attributes that have more than one
// shape.
package hcl
