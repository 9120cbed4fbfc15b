package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/infinitytest/internal/config"
	"github.com/vk/infinitytest/internal/environment"
	"github.com/vk/infinitytest/internal/hcl"
	"github.com/vk/infinitytest/internal/options"
	"github.com/vk/infinitytest/internal/tomlfile"
	"github.com/vk/infinitytest/internal/yamlfile"
)

// stubLoader records the paths it was asked to load and returns decl.
type stubLoader struct {
	decl  config.Declaration
	err   error
	paths []string
}

func (l *stubLoader) Load(_ context.Context, path string) (config.Declaration, error) {
	l.paths = append(l.paths, path)
	return l.decl, l.err
}

func testLoaders() Loaders {
	yml := yamlfile.NewLoader()
	return Loaders{".hcl": hcl.NewLoader(), ".yml": yml, ".yaml": yml, ".toml": tomlfile.NewLoader()}
}

func writeFile(t *testing.T, path, content string, perm os.FileMode) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), perm))
}

func newTestConfig(t *testing.T, cfg Config) *Config {
	t.Helper()
	if cfg.WorkDir == "" {
		cfg.WorkDir = t.TempDir()
	}
	c, err := NewConfig(cfg)
	require.NoError(t, err)
	return c
}

func TestNewConfig(t *testing.T) {
	t.Parallel()

	_, err := NewConfig(Config{})
	require.Error(t, err)

	c, err := NewConfig(Config{WorkDir: "/tmp"})
	require.NoError(t, err)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "text", c.LogFormat)
}

func TestConfigure_CommandLineOverridesDeclaration(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	work := t.TempDir()
	writeFile(t, filepath.Join(work, ".infinity_test.hcl"), `
use {
  rubies         = ["ree", "jruby"]
  test_framework = "rspec"
  verbose        = true
}
`, 0o644)

	testCases := []struct {
		name          string
		args          []string
		wantFramework options.TestFramework
		wantRubies    options.RubySpec
	}{
		{name: "no flags", args: nil, wantFramework: options.RSpec, wantRubies: options.RubySpec{"ree", "jruby"}},
		{name: "framework flag", args: []string{"--bacon"}, wantFramework: options.Bacon, wantRubies: options.RubySpec{"ree", "jruby"}},
		{name: "rubies flag", args: []string{"--rubies=1.9.2"}, wantFramework: options.RSpec, wantRubies: options.RubySpec{"1.9.2"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			a, _ := SetupAppTest(t, newTestConfig(t, Config{WorkDir: work, Args: tc.args}), testLoaders(), environment.NewSystem(""))

			// --- Act ---
			cfg, err := a.Configure(context.Background())

			// --- Assert ---
			require.NoError(t, err)
			assert.Equal(t, tc.wantFramework, cfg.TestFramework())
			assert.Equal(t, tc.wantRubies, cfg.Rubies())
			assert.True(t, cfg.Verbose())
		})
	}
}

func TestConfigure_SearchOrder(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	work, home := t.TempDir(), t.TempDir()
	writeFile(t, filepath.Join(home, ".infinity_test.hcl"), "", 0o644)
	loader := &stubLoader{}
	loaders := Loaders{".hcl": loader, ".yml": loader}
	a, _ := SetupAppTest(t, newTestConfig(t, Config{WorkDir: work, HomeDir: home}), loaders, environment.NewSystem(""))

	// --- Act & Assert ---
	_, err := a.Configure(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(home, ".infinity_test.hcl")}, loader.paths)

	writeFile(t, filepath.Join(work, ".infinity_test.yml"), "", 0o644)
	_, err = a.Configure(context.Background())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(work, ".infinity_test.yml"), loader.paths[1], "the working directory wins over home")
}

func TestConfigure_NoDeclarationFile(t *testing.T) {
	t.Parallel()

	a, _ := SetupAppTest(t, newTestConfig(t, Config{Args: []string{"--rspec"}}), testLoaders(), environment.NewSystem(""))

	cfg, err := a.Configure(context.Background())

	require.NoError(t, err)
	assert.Equal(t, options.RSpec, cfg.TestFramework())
	assert.Empty(t, cfg.Rubies())
}

func TestConfigure_Errors(t *testing.T) {
	t.Parallel()

	work := t.TempDir()
	writeFile(t, filepath.Join(work, "decl.toml"), "", 0o644)
	writeFile(t, filepath.Join(work, "bad.hcl"), `notifications "snarl" {}`, 0o644)
	loadErr := errors.New("boom")

	testCases := []struct {
		name    string
		cfg     Config
		loaders Loaders
		wantErr string
	}{
		{name: "explicit path missing", cfg: Config{ConfigPath: filepath.Join(work, "nope.hcl")}, loaders: testLoaders(), wantErr: "does not exist"},
		{name: "unknown extension", cfg: Config{ConfigPath: filepath.Join(work, "decl.toml")}, loaders: testLoaders(), wantErr: "no loader"},
		{name: "loader error", cfg: Config{ConfigPath: filepath.Join(work, "bad.hcl")}, loaders: Loaders{".hcl": &stubLoader{err: loadErr}}, wantErr: "boom"},
		{name: "declaration error", cfg: Config{ConfigPath: filepath.Join(work, "bad.hcl")}, loaders: testLoaders(), wantErr: "snarl"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			tc.cfg.WorkDir = work
			a, _ := SetupAppTest(t, newTestConfig(t, tc.cfg), tc.loaders, environment.NewSystem(""))

			_, err := a.Configure(context.Background())

			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestRun_PrintsPlan(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	work, rvm := t.TempDir(), t.TempDir()
	writeFile(t, filepath.Join(rvm, "rubies", "ree", "bin", "rspec"), "#!/bin/sh\n", 0o755)
	writeFile(t, filepath.Join(rvm, "rubies", "1.9.2", "bin", "ruby"), "#!/bin/sh\n", 0o755)
	writeFile(t, filepath.Join(work, ".infinity_test.yml"), "use:\n  test_framework: rspec\n", 0o644)

	args := []string{"--rubies=ree+-w,1.9.2,jruby"}
	a, out := SetupAppTest(t, newTestConfig(t, Config{WorkDir: work, Args: args}), testLoaders(), &environment.RVM{Root: rvm})

	// --- Act ---
	err := a.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	output := out.String()
	assert.Contains(t, strings.ToLower(output), "test framework: rspec")
	assert.Contains(t, output, filepath.Join(rvm, "rubies", "ree", "bin", "rspec"))
	assert.Contains(t, output, "rspec_two")
	assert.Contains(t, output, "-w")
	assert.Contains(t, output, notFound)
	assert.Contains(t, output, "unknown environment")
	assert.Contains(t, output, "2/3")
}

func TestRun_Heuristics(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	work := t.TempDir()
	writeFile(t, filepath.Join(work, ".infinity_test.hcl"), `
heuristics {
  rule "^lib/(.*)\\.rb$" {
    run = "spec/%1_spec.rb"
  }
}
`, 0o644)
	a, out := SetupAppTest(t, newTestConfig(t, Config{WorkDir: work, Args: []string{"--heuristics"}}), testLoaders(), environment.NewSystem(""))

	// --- Act ---
	err := a.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	assert.Contains(t, out.String(), `^lib/(.*)\.rb$`)
	assert.Contains(t, out.String(), "spec/%1_spec.rb")
}

func TestRun_HeuristicsEmpty(t *testing.T) {
	t.Parallel()

	a, out := SetupAppTest(t, newTestConfig(t, Config{Args: []string{"--heuristics"}}), testLoaders(), environment.NewSystem(""))

	require.NoError(t, a.Run(context.Background()))
	assert.Contains(t, out.String(), "No heuristics declared.")
}

func TestRun_GenerateFile(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	work := t.TempDir()
	appConfig := newTestConfig(t, Config{WorkDir: work, Args: []string{"--generate-file"}})
	a, _ := SetupAppTest(t, appConfig, testLoaders(), environment.NewSystem(""))

	// --- Act ---
	err := a.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	path := filepath.Join(work, StarterFileName)
	require.FileExists(t, path)

	decl, err := hcl.NewLoader().Load(context.Background(), path)
	require.NoError(t, err, "the starter file must load")
	cfg, err := config.Declare(decl)
	require.NoError(t, err)
	assert.Equal(t, options.RSpec, cfg.TestFramework())
	assert.Len(t, cfg.Heuristics(nil).Rules(), 1)

	err = a.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestConfigure_TOMLDeclaration(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	work := t.TempDir()
	writeFile(t, filepath.Join(work, ".infinity_test.toml"), "[use]\ntest_framework = \"bacon\"\nrubies = \"ree,jruby\"\n", 0o644)
	a, _ := SetupAppTest(t, newTestConfig(t, Config{WorkDir: work}), testLoaders(), environment.NewSystem(""))

	// --- Act ---
	cfg, err := a.Configure(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, options.Bacon, cfg.TestFramework())
	assert.Equal(t, options.RubySpec{"ree", "jruby"}, cfg.Rubies())
}
