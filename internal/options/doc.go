// Package options decodes the runner's command-line tokens into a typed
// Settings record, including the compound --rubies grammar that pairs each
// interpreter identifier with an optional verbatim override string.
//
// Parsing is deliberately tolerant: unknown flags, positional arguments and
// malformed values are skipped rather than rejected, so newer front-ends can
// pass flags that older cores do not understand.
package options
