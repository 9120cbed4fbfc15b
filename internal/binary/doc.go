// Package binary maps logical test-framework names to executables inside an
// interpreter environment.
//
// Binaries are declared once into a Resolver, optionally under an alias so
// that two installs of the same framework (for example rspec 1 and rspec 2)
// stay addressable side by side. Lookups are plain queries: a binary that
// cannot be found is reported through the boolean result, never as an error.
package binary
