// Package cli is responsible for parsing the process-level command-line
// arguments and handling exit codes. Test options are left in place for the
// application to parse on top of the declaration file.
package cli
