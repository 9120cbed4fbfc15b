package config

import (
	"log/slog"

	"github.com/vk/infinitytest/internal/binary"
	"github.com/vk/infinitytest/internal/heuristics"
	"github.com/vk/infinitytest/internal/notification"
	"github.com/vk/infinitytest/internal/options"
	"github.com/vk/infinitytest/internal/watch"
)

// Configuration is the single source of truth for the parameters of a run.
type Configuration struct {
	testFramework   options.TestFramework
	appFramework    options.AppFramework
	verbose         bool
	skipBundler     bool
	cucumber        bool
	rubies          options.RubySpec
	specificOptions options.SpecificOptions
	exceptions      []string

	notification *notification.Notification
	hooks        [hookCount]Callback
	heuristics   *heuristics.Builder
	script       *watch.Script
	binaries     *binary.Resolver
}

// New returns a Configuration holding the defaults.
func New() *Configuration {
	n, _ := notification.New("")
	return &Configuration{
		testFramework:   options.TestUnit,
		appFramework:    options.RubyGems,
		rubies:          options.RubySpec{},
		specificOptions: options.SpecificOptions{},
		notification:    n,
		binaries:        binary.Defaults(),
	}
}

// Use merges s into the configuration. Rubies and specific options are
// replaced outright (absent rubies become the empty list), the framework enums
// only when set, and verbose/skip-bundler can only be switched on. A gemset in
// s is applied to the new rubies.
func (c *Configuration) Use(s options.Settings) *Configuration {
	if s.Rubies == nil {
		c.rubies = options.RubySpec{}
	} else {
		c.rubies = append(options.RubySpec{}, s.Rubies...)
	}
	c.specificOptions = s.SpecificOptions.Clone()
	if s.TestFramework != "" {
		c.testFramework = s.TestFramework
	}
	if s.AppFramework != "" {
		c.appFramework = s.AppFramework
	}
	c.verbose = c.verbose || s.Verbose
	c.skipBundler = c.skipBundler || s.SkipBundler
	c.cucumber = s.Cucumber
	if s.Gemset != "" {
		c.ApplyGemset(s.Gemset)
	}

	slog.Debug("Settings merged into configuration.",
		"test_framework", c.testFramework,
		"app_framework", c.appFramework,
		"rubies", c.rubies.String(),
	)
	return c
}

// Settings snapshots the fields Use understands, so that a later Use of the
// snapshot leaves the configuration as it is.
func (c *Configuration) Settings() options.Settings {
	return options.Settings{
		TestFramework:   c.testFramework,
		AppFramework:    c.appFramework,
		Verbose:         c.verbose,
		SkipBundler:     c.skipBundler,
		Cucumber:        c.cucumber,
		Rubies:          append(options.RubySpec{}, c.rubies...),
		SpecificOptions: c.specificOptions.Clone(),
	}
}

// UseRubies replaces the rubies with a comma-joined list.
func (c *Configuration) UseRubies(spec string) *Configuration {
	c.rubies = options.ParseRubySpec(spec)
	return c
}

// ApplyGemset appends "@gemset" to every ruby in place. Calling it twice
// appends twice.
func (c *Configuration) ApplyGemset(gemset string) *Configuration {
	for i, ident := range c.rubies {
		c.rubies[i] = ident + "@" + gemset
	}
	return c
}

// Ignore records path fragments the watcher should not react to.
func (c *Configuration) Ignore(exceptions ...string) *Configuration {
	c.exceptions = append([]string{}, exceptions...)
	return c
}

// SkipBundlerNow stops the runner from wrapping commands in bundler even when
// a Gemfile is present.
func (c *Configuration) SkipBundlerNow() *Configuration {
	c.skipBundler = true
	return c
}

// Notifications replaces the notification sub-configuration with a fresh one
// for framework and hands it to fn. On error the previous sub-configuration
// stays in place.
func (c *Configuration) Notifications(framework string, fn func(*notification.Notification)) error {
	n, err := notification.New(framework)
	if err != nil {
		return err
	}
	if fn != nil {
		fn(n)
	}
	c.notification = n
	return nil
}

// Heuristics creates the heuristics builder on first use and hands it to fn.
// Every call returns the same builder.
func (c *Configuration) Heuristics(fn func(*heuristics.Builder)) *heuristics.Builder {
	if c.heuristics == nil {
		c.heuristics = heuristics.New()
	}
	if fn != nil {
		fn(c.heuristics)
	}
	return c.heuristics
}

// Watch creates the watch script on first use and forwards pattern and action
// to it.
func (c *Configuration) Watch(pattern string, action watch.Action) (*watch.Script, error) {
	if c.script == nil {
		c.script = watch.NewScript()
	}
	if err := c.script.Watch(pattern, action); err != nil {
		return c.script, err
	}
	return c.script, nil
}

func (c *Configuration) TestFramework() options.TestFramework { return c.testFramework }
func (c *Configuration) AppFramework() options.AppFramework   { return c.appFramework }
func (c *Configuration) Verbose() bool                        { return c.verbose }
func (c *Configuration) Cucumber() bool                       { return c.cucumber }
func (c *Configuration) SkipBundler() bool                    { return c.skipBundler }

// Rubies returns a copy of the configured rubies.
func (c *Configuration) Rubies() options.RubySpec {
	return append(options.RubySpec{}, c.rubies...)
}

// SpecificOptions returns a copy of the per-ruby overrides.
func (c *Configuration) SpecificOptions() options.SpecificOptions {
	return c.specificOptions.Clone()
}

// Exceptions returns the ignored path fragments.
func (c *Configuration) Exceptions() []string {
	return append([]string(nil), c.exceptions...)
}

// HeuristicsBuilder returns the heuristics builder, nil if none was declared.
func (c *Configuration) HeuristicsBuilder() *heuristics.Builder { return c.heuristics }

// DeclareBinary registers an extra executable with the binary resolver; see
// binary.Resolver.Declare.
func (c *Configuration) DeclareBinary(name, alias string) error {
	return c.binaries.Declare(name, alias)
}

// Binaries returns the resolver holding the default and declared binaries.
func (c *Configuration) Binaries() *binary.Resolver { return c.binaries }

// Script returns the watch script, nil if no watch was declared.
func (c *Configuration) Script() *watch.Script { return c.script }

func (c *Configuration) Notification() *notification.Notification { return c.notification }
func (c *Configuration) SuccessImage() string                     { return c.notification.SuccessImage() }
func (c *Configuration) PendingImage() string                     { return c.notification.PendingImage() }
func (c *Configuration) FailureImage() string                     { return c.notification.FailureImage() }
func (c *Configuration) NotificationFramework() string            { return c.notification.Notifier() }
