// Package config holds the run configuration of the test runner: the
// Configuration aggregate that settings, hooks and builders accumulate into,
// the Declaration type used to describe it, and the Loader interface that
// format-specific packages implement to turn a declaration file into a
// Declaration.
//
// A Configuration is built once per process with New or Declare and handed to
// its consumers by pointer. It has no internal locking: declare everything on
// one goroutine, then treat the value as read-only.
package config
