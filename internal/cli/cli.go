package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/vk/infinitytest/internal/app"
	"github.com/vk/infinitytest/internal/options"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usage(output io.Writer, ambient *flag.FlagSet) {
	fmt.Fprint(output, `
infinity-test - Continuous testing across several ruby interpreters.

Usage:
  infinity-test [options]

Declaration file:
  Without --config the first of .infinity_test.hcl, .infinity_test.yml,
  .infinity_test.yaml and .infinity_test.toml found in the working directory,
  then in $HOME, is loaded.
  Command-line options are applied on top of it.

Options:
`)
	ambient.SetOutput(output)
	ambient.PrintDefaults()
	options.PrintDefaults(output)
}

// Parse processes command-line arguments. It consumes the process-level flags
// and hands every other token to the application, which parses the test
// options tolerantly. It returns a populated Config, a boolean indicating if
// the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("infinity-test", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.Usage = func() {}

	configFlag := flagSet.String("config", "", "Path to the declaration file (.hcl, .yml, .yaml or .toml).")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	helpFlag := flagSet.Bool("help", false, "Show this help and exit.")
	flagSet.BoolVar(helpFlag, "h", false, "Show this help and exit (shorthand).")

	before, after := args, []string(nil)
	if i := slices.Index(args, "--"); i >= 0 {
		before, after = args[:i], args[i:]
	}
	rest := append(options.ParseKnown(flagSet, before), after...)
	slog.Debug("Arguments parsed successfully.", "rest", rest)

	if *helpFlag {
		usage(output, flagSet)
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	workDir, err := os.Getwd()
	if err != nil {
		return nil, false, &ExitError{Code: 1, Message: fmt.Sprintf("cannot determine working directory: %v", err)}
	}
	// A missing home directory only narrows the declaration file search.
	homeDir, _ := os.UserHomeDir()

	config, err := app.NewConfig(app.Config{
		ConfigPath: *configFlag,
		WorkDir:    workDir,
		HomeDir:    homeDir,
		LogFormat:  logFormat,
		LogLevel:   logLevel,
		Args:       rest,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
