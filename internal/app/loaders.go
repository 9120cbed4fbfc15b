package app

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vk/infinitytest/internal/config"
	"github.com/vk/infinitytest/internal/fsutil"
)

// Loaders maps a lower-case file extension (".hcl", ".toml") onto the loader
// that understands it.
type Loaders map[string]config.Loader

// For picks the loader for path by extension.
func (l Loaders) For(path string) (config.Loader, error) {
	ext := strings.ToLower(filepath.Ext(path))
	loader, ok := l[ext]
	if !ok {
		return nil, fmt.Errorf("no loader for declaration file %s (extension %q)", path, ext)
	}
	return loader, nil
}

// findDeclarationFile returns the declaration file to load. An explicit path
// must exist; otherwise the working directory is searched before the home
// directory and a missing file is not an error.
func findDeclarationFile(cfg *Config) (string, bool, error) {
	if cfg.ConfigPath != "" {
		if _, ok := fsutil.FindFirstFile([]string{filepath.Dir(cfg.ConfigPath)}, filepath.Base(cfg.ConfigPath)); !ok {
			return "", false, fmt.Errorf("declaration file %s does not exist", cfg.ConfigPath)
		}
		return cfg.ConfigPath, true, nil
	}
	path, ok := fsutil.FindFirstFile([]string{cfg.WorkDir, cfg.HomeDir}, DefaultConfigNames...)
	return path, ok, nil
}
