// Package app contains the core application logic. It loads the declaration
// file, merges the command-line settings into the configuration and performs
// the requested action, decoupled from any specific entrypoint like a CLI.
package app
