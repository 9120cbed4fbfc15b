// Package schema describes the shape of a declaration file. Document is the
// format-agnostic form every loader produces; File and its blocks are the
// HCL-specific shape decoded with gohcl.
package schema

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/vk/infinitytest/internal/options"
)

// --- Format-agnostic document ---

// Document is a parsed declaration file. The yaml and toml tags let those
// formats decode straight into it.
type Document struct {
	Use           *Use             `yaml:"use" toml:"use"`
	SkipBundler   bool             `yaml:"skip_bundler" toml:"skip_bundler"`
	Ignore        []string         `yaml:"ignore" toml:"ignore"`
	Notifications *Notifications   `yaml:"notifications" toml:"notifications"`
	Before        map[string]*Hook `yaml:"before" toml:"before"`
	After         map[string]*Hook `yaml:"after" toml:"after"`
	Heuristics    []*Rule          `yaml:"heuristics" toml:"heuristics"`
	Watch         []*Watch         `yaml:"watch" toml:"watch"`
	Binaries      []*Binary        `yaml:"binaries" toml:"binaries"`
}

// Use mirrors the settings record.
type Use struct {
	Rubies          RubyList    `yaml:"rubies" toml:"rubies"`
	SpecificOptions OverrideMap `yaml:"specific_options" toml:"specific_options"`
	Gemset          string      `yaml:"gemset" toml:"gemset"`
	TestFramework   string      `yaml:"test_framework" toml:"test_framework"`
	AppFramework    string      `yaml:"app_framework" toml:"app_framework"`
	Verbose         bool        `yaml:"verbose" toml:"verbose"`
	Cucumber        bool        `yaml:"cucumber" toml:"cucumber"`
	SkipBundler     bool        `yaml:"skip_bundler" toml:"skip_bundler"`
}

// Settings converts the block into a settings record.
func (u *Use) Settings() options.Settings {
	var rubies options.RubySpec
	if u.Rubies != nil {
		rubies = options.RubySpec(u.Rubies)
	}
	return options.Settings{
		TestFramework:   options.TestFramework(u.TestFramework),
		AppFramework:    options.AppFramework(u.AppFramework),
		Verbose:         u.Verbose,
		Cucumber:        u.Cucumber,
		SkipBundler:     u.SkipBundler,
		Rubies:          rubies,
		SpecificOptions: options.SpecificOptions(u.SpecificOptions),
		Gemset:          u.Gemset,
	}
}

// RubyList accepts either a list of identifiers or a comma-joined string.
type RubyList []string

// OverrideMap maps identifiers to override flags; a null value is the
// explicit "no override" marker.
type OverrideMap map[string]options.Override

// Notifications selects and configures the notification backend.
type Notifications struct {
	Framework    string `yaml:"framework" toml:"framework"`
	SuccessImage string `yaml:"success_image" toml:"success_image"`
	PendingImage string `yaml:"pending_image" toml:"pending_image"`
	FailureImage string `yaml:"failure_image" toml:"failure_image"`
}

// Hook is the body of a before/after callback. Clear names what to clear
// ("terminal"); Command is run afterwards when set.
type Hook struct {
	Clear   string   `yaml:"clear" toml:"clear"`
	Command []string `yaml:"command" toml:"command"`
}

// Rule is one heuristics rule.
type Rule struct {
	Pattern string `yaml:"pattern" toml:"pattern"`
	Run     string `yaml:"run" toml:"run"`
}

// Watch runs Command when a changed path matches Pattern.
type Watch struct {
	Pattern string   `yaml:"pattern" toml:"pattern"`
	Command []string `yaml:"command" toml:"command"`
}

// Binary declares an extra test-framework executable.
type Binary struct {
	Name  string `yaml:"name" toml:"name"`
	Alias string `yaml:"alias" toml:"alias"`
}

// --- HCL file structures ---

// File is the top-level structure of an HCL declaration file.
type File struct {
	Use           *UseBlock           `hcl:"use,block"`
	SkipBundler   *bool               `hcl:"skip_bundler,optional"`
	Ignore        *IgnoreBlock        `hcl:"ignore,block"`
	Notifications *NotificationsBlock `hcl:"notifications,block"`
	Before        []*HookBlock        `hcl:"before,block"`
	After         []*HookBlock        `hcl:"after,block"`
	Heuristics    []*HeuristicsBlock  `hcl:"heuristics,block"`
	Watch         []*WatchBlock       `hcl:"watch,block"`
	Binaries      []*BinaryBlock      `hcl:"binary,block"`
}

// UseBlock is the `use` block. Rubies and specific_options are kept as
// expressions because they accept more than one shape.
type UseBlock struct {
	Rubies          hcl.Expression `hcl:"rubies,optional"`
	SpecificOptions hcl.Expression `hcl:"specific_options,optional"`
	Gemset          string         `hcl:"gemset,optional"`
	TestFramework   string         `hcl:"test_framework,optional"`
	AppFramework    string         `hcl:"app_framework,optional"`
	Verbose         bool           `hcl:"verbose,optional"`
	Cucumber        bool           `hcl:"cucumber,optional"`
	SkipBundler     bool           `hcl:"skip_bundler,optional"`
}

// IgnoreBlock is the `ignore` block.
type IgnoreBlock struct {
	Exceptions []string `hcl:"exceptions,optional"`
}

// NotificationsBlock is `notifications "<framework>" { ... }`.
type NotificationsBlock struct {
	Framework    string `hcl:"framework,label"`
	SuccessImage string `hcl:"success_image,optional"`
	PendingImage string `hcl:"pending_image,optional"`
	FailureImage string `hcl:"failure_image,optional"`
}

// HookBlock is `before "<hook>" { ... }` or `after "<hook>" { ... }`.
type HookBlock struct {
	Hook    string   `hcl:"hook,label"`
	Clear   string   `hcl:"clear,optional"`
	Command []string `hcl:"command,optional"`
}

// HeuristicsBlock groups `rule` blocks.
type HeuristicsBlock struct {
	Rules []*RuleBlock `hcl:"rule,block"`
}

// RuleBlock is `rule "<pattern>" { run = "..." }`.
type RuleBlock struct {
	Pattern string `hcl:"pattern,label"`
	Run     string `hcl:"run"`
}

// WatchBlock is `watch "<pattern>" { command = [...] }`.
type WatchBlock struct {
	Pattern string   `hcl:"pattern,label"`
	Command []string `hcl:"command,optional"`
}

// BinaryBlock is `binary "<name>" { alias = "..." }`.
type BinaryBlock struct {
	Name  string `hcl:"name,label"`
	Alias string `hcl:"alias,optional"`
}
