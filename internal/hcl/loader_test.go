package hcl

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/infinitytest/internal/config"
	"github.com/vk/infinitytest/internal/ctxlog"
	"github.com/vk/infinitytest/internal/options"
	"github.com/vk/infinitytest/internal/schema"
)

func testContext() context.Context {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return ctxlog.WithLogger(context.Background(), logger)
}

const fullDeclaration = `
use {
  rubies         = ["1.8.7", "1.9.2"]
  gemset         = "infinity_test"
  test_framework = "rspec"
  app_framework  = "rails"
  verbose        = true
  specific_options = {
    "1.8.7" = "-w"
    "1.9.2" = null
  }
}

skip_bundler = true

ignore {
  exceptions = [".svn", ".git", "vendor"]
}

notifications "growl" {
  success_image = "images/green.png"
  failure_image = "images/red.png"
}

before "all" {
  clear = "terminal"
}

before "each_ruby" {
  command = ["echo", "switching"]
}

after "each_ruby" {
  command = ["echo", "done"]
}

heuristics {
  rule "^lib/(.*)\\.rb$" {
    run = "spec/%1_spec.rb"
  }
  rule "^spec/spec_helper\\.rb$" {
    run = "spec"
  }
}

watch "^features/.*\\.feature$" {
  command = ["cucumber", "%0"]
}

binary "rspec" {
  alias = "rspec3"
}
`

func TestLoader_Document(t *testing.T) {
	t.Parallel()

	// --- Act ---
	doc, err := NewLoader().Document(testContext(), []byte(fullDeclaration), ".infinity_test.hcl")

	// --- Assert ---
	require.NoError(t, err)
	want := &schema.Document{
		Use: &schema.Use{
			Rubies:        schema.RubyList{"1.8.7", "1.9.2"},
			Gemset:        "infinity_test",
			TestFramework: "rspec",
			AppFramework:  "rails",
			Verbose:       true,
			SpecificOptions: schema.OverrideMap{
				"1.8.7": {Flags: "-w", Set: true},
				"1.9.2": options.NoOverride,
			},
		},
		SkipBundler:   true,
		Ignore:        []string{".svn", ".git", "vendor"},
		Notifications: &schema.Notifications{Framework: "growl", SuccessImage: "images/green.png", FailureImage: "images/red.png"},
		Before: map[string]*schema.Hook{
			"all":       {Clear: "terminal"},
			"each_ruby": {Command: []string{"echo", "switching"}},
		},
		After: map[string]*schema.Hook{"each_ruby": {Command: []string{"echo", "done"}}},
		Heuristics: []*schema.Rule{
			{Pattern: `^lib/(.*)\.rb$`, Run: "spec/%1_spec.rb"},
			{Pattern: `^spec/spec_helper\.rb$`, Run: "spec"},
		},
		Watch:    []*schema.Watch{{Pattern: `^features/.*\.feature$`, Command: []string{"cucumber", "%0"}}},
		Binaries: []*schema.Binary{{Name: "rspec", Alias: "rspec3"}},
	}
	if diff := cmp.Diff(want, doc); diff != "" {
		t.Errorf("document mismatch (-want +got):\n%s", diff)
	}
}

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := filepath.Join(t.TempDir(), ".infinity_test.hcl")
	require.NoError(t, os.WriteFile(path, []byte(fullDeclaration), 0o600))

	// --- Act ---
	decl, err := NewLoader().Load(testContext(), path)
	require.NoError(t, err)
	c, err := config.Declare(decl)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, "1.8.7@infinity_test,1.9.2@infinity_test", c.Rubies().String())
	assert.Equal(t, options.RSpec, c.TestFramework())
	assert.Equal(t, options.Rails, c.AppFramework())
	assert.True(t, c.Verbose())
	assert.True(t, c.SkipBundler())
	assert.Equal(t, "growlnotify", c.NotificationFramework())
	assert.NotNil(t, c.Callback(config.HookBeforeAll))
	assert.NotNil(t, c.Callback(config.HookBeforeEachRuby))
	assert.Nil(t, c.Callback(config.HookAfterAll))
	assert.Equal(t, []string{"spec/user_spec.rb"}, c.HeuristicsBuilder().Match("lib/user.rb"))
	assert.Contains(t, c.Binaries().Keys(), "rspec3")
}

func TestLoader_RubiesShapes(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		src  string
		want schema.RubyList
	}{
		{"comma string", `use { rubies = "1.8.7-p249,1.9.2@rails3" }`, schema.RubyList{"1.8.7-p249", "1.9.2@rails3"}},
		{"empty string", `use { rubies = "" }`, schema.RubyList{}},
		{"empty list", `use { rubies = [] }`, schema.RubyList{}},
		{"numbers become strings", `use { rubies = [1.9] }`, schema.RubyList{"1.9"}},
		{"absent", `use { verbose = true }`, nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			doc, err := NewLoader().Document(testContext(), []byte(tc.src), "test.hcl")

			require.NoError(t, err)
			require.NotNil(t, doc.Use)
			assert.Equal(t, tc.want, doc.Use.Rubies)
		})
	}
}

func TestLoader_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		src     string
		wantErr string
	}{
		{"syntax error", `use {`, "failed to parse HCL file"},
		{"unknown attribute", `colour = "red"`, "failed to decode HCL file"},
		{"duplicate notifications", "notifications \"growl\" {}\nnotifications \"lib_notify\" {}", "failed to decode HCL file"},
		{"rubies wrong type", `use { rubies = { a = 1 } }`, `Invalid "rubies" attribute`},
		{"specific options wrong type", `use { specific_options = "x" }`, `Invalid "specific_options" attribute`},
		{"variables are not available", `use { rubies = var.rubies }`, "invalid declaration"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewLoader().LoadBytes(testContext(), []byte(tc.src), "test.hcl")

			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestLoader_UnsupportedNotificationSurfacesOnApply(t *testing.T) {
	t.Parallel()

	decl, err := NewLoader().LoadBytes(testContext(), []byte(`notifications "snarl" {}`), "test.hcl")
	require.NoError(t, err)

	_, err = config.Declare(decl)

	assert.ErrorContains(t, err, "not supported")
}

func TestLoader_EmptyAndAllHookLabelsConflict(t *testing.T) {
	t.Parallel()

	src := `
before "" {
  command = ["true"]
}
before "all" {
  clear = "terminal"
}
`
	decl, err := NewLoader().LoadBytes(testContext(), []byte(src), "test.hcl")
	require.NoError(t, err)

	_, err = config.Declare(decl)

	assert.ErrorContains(t, err, `hooks "" and "all" both select before_all`)
}

func TestLoader_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := NewLoader().Load(testContext(), filepath.Join(t.TempDir(), "missing.hcl"))

	assert.ErrorContains(t, err, "failed to parse HCL file")
}
