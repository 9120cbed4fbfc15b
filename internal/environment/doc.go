// Package environment is the boundary to the interpreter-environment service.
// The core never switches environments; it only asks for a Handle and probes
// the handle's executable directories.
//
// Two services ship with the package: System, which exposes a single handle
// built from a PATH-style list, and RVM, which maps "ident" and
// "ident@gemset" strings onto an rvm installation tree.
package environment
