package app

import "errors"

// DefaultConfigNames are the declaration file names searched for when no
// explicit path is given, in order.
var DefaultConfigNames = []string{
	".infinity_test.hcl",
	".infinity_test.yml",
	".infinity_test.yaml",
	".infinity_test.toml",
}

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// ConfigPath is an explicit declaration file. Empty means search
	// WorkDir and then HomeDir for DefaultConfigNames.
	ConfigPath string
	WorkDir    string
	HomeDir    string

	LogFormat string
	LogLevel  string

	// Args are the command-line tokens left once the ambient flags are
	// consumed. They are parsed on top of the declaration file.
	Args []string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.WorkDir == "" {
		return nil, errors.New("WorkDir is a required configuration field and cannot be empty")
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	return &cfg, nil
}
