// Package plan resolves a configuration into one entry per interpreter
// environment: which ruby, which override flags and which test binary. The
// orchestrator walks the entries in order; nothing here runs them.
package plan

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/infinitytest/internal/binary"
	"github.com/vk/infinitytest/internal/config"
	"github.com/vk/infinitytest/internal/ctxlog"
	"github.com/vk/infinitytest/internal/environment"
)

// Entry is the resolved plan for one ruby.
type Entry struct {
	Ruby        string
	Override    string
	HasOverride bool

	// Binary is the test framework executable and BinaryKey the lookup key
	// that found it. Found is false when no key matched.
	Binary    string
	BinaryKey string
	Found     bool

	// Cucumber is set when cucumber features are enabled and the binary
	// exists in this environment.
	Cucumber string

	// Err is set when the environment itself could not be located.
	Err error
}

// Resolve builds one entry per configured ruby, in configuration order. With
// no rubies configured it resolves the current environment only. Missing
// binaries and unknown environments are recorded on the entry and resolution
// carries on; only failing to find the current environment is an error.
func Resolve(ctx context.Context, cfg *config.Configuration, resolver *binary.Resolver, svc environment.Service) ([]Entry, error) {
	logger := ctxlog.FromContext(ctx)
	rubies := cfg.Rubies()
	logger.Debug("Resolving plan.", "rubies", rubies.String(), "test_framework", cfg.TestFramework())

	if len(rubies) == 0 {
		env, err := svc.Current()
		if err != nil {
			return nil, fmt.Errorf("failed to locate current environment: %w", err)
		}
		return []Entry{resolveIn(ctx, cfg, resolver, env.Name(), env)}, nil
	}

	entries := make([]Entry, 0, len(rubies))
	for _, ruby := range rubies {
		env, err := svc.Lookup(ruby)
		if err != nil {
			logger.Warn("Environment not available.", "ruby", ruby, "error", err)
			entry := Entry{Ruby: ruby, Err: err}
			entry.Override, entry.HasOverride = lookupOverride(cfg, ruby)
			entries = append(entries, entry)
			continue
		}
		entries = append(entries, resolveIn(ctx, cfg, resolver, ruby, env))
	}
	return entries, nil
}

func resolveIn(ctx context.Context, cfg *config.Configuration, resolver *binary.Resolver, ruby string, env environment.Handle) Entry {
	logger := ctxlog.FromContext(ctxlog.With(ctx, "ruby", ruby))

	entry := Entry{Ruby: ruby}
	entry.Override, entry.HasOverride = lookupOverride(cfg, ruby)
	entry.Binary, entry.BinaryKey, entry.Found = resolver.LookupFramework(cfg.TestFramework(), env)
	if !entry.Found {
		logger.Warn("Test framework binary not found.", "test_framework", cfg.TestFramework(), "tried", binary.FrameworkKeys(cfg.TestFramework()))
	}
	if cfg.Cucumber() {
		entry.Cucumber, _ = resolver.Lookup("cucumber", env)
	}
	logger.Debug("Resolved environment.", "binary", entry.Binary, "override", entry.Override)
	return entry
}

// lookupOverride finds the override for ruby, falling back to the identifier
// without its gemset since gemsets are applied to rubies only.
func lookupOverride(cfg *config.Configuration, ruby string) (string, bool) {
	opts := cfg.SpecificOptions()
	if flags, ok := opts.Lookup(ruby); ok {
		return flags, true
	}
	if base, _, found := strings.Cut(ruby, "@"); found {
		return opts.Lookup(base)
	}
	return "", false
}
