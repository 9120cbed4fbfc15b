package config

import "context"

// Declaration describes a configuration by mutating the one it is given.
type Declaration func(*Configuration) error

// Loader is the interface for a format-specific declaration file loader.
type Loader interface {
	// Load reads the declaration file at path and returns it as a
	// Declaration ready to be applied.
	Load(ctx context.Context, path string) (Declaration, error)
}
