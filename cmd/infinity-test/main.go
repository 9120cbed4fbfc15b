package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/vk/infinitytest/internal/app"
	"github.com/vk/infinitytest/internal/cli"
	"github.com/vk/infinitytest/internal/environment"
	"github.com/vk/infinitytest/internal/hcl"
	"github.com/vk/infinitytest/internal/tomlfile"
	"github.com/vk/infinitytest/internal/yamlfile"
)

// main is the entrypoint for the infinity-test application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	// The real main function handles errors and exit codes.
	if err := run(os.Stdout, os.Args[1:], os.Getenv); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(outW io.Writer, args []string, getenv func(string) string) error {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	yml := yamlfile.NewLoader()
	loaders := app.Loaders{
		".hcl":  hcl.NewLoader(),
		".yml":  yml,
		".yaml": yml,
		".toml": tomlfile.NewLoader(),
	}

	infinityApp := app.NewApp(outW, appConfig, loaders, environmentService(getenv))
	return infinityApp.Run(context.Background())
}

// environmentService picks rvm when an installation is present and the plain
// PATH otherwise.
func environmentService(getenv func(string) string) environment.Service {
	system := environment.NewSystem(getenv("PATH"))

	root := getenv("rvm_path")
	if root == "" {
		if home := getenv("HOME"); home != "" {
			root = filepath.Join(home, ".rvm")
		}
	}
	if root == "" {
		return system
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return system
	}
	rvm := environment.NewRVM(root)
	rvm.Fallback = system
	rvm.Getenv = getenv
	return rvm
}
