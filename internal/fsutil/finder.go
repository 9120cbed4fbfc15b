// Package fsutil provides file system utility functions.
package fsutil

import (
	"os"
	"path/filepath"
)

// FindExecutable searches dirs in order for a regular file called name with
// at least one executable bit set. It returns the first match.
func FindExecutable(dirs []string, name string) (string, bool) {
	if name == "" {
		panic("name must not be empty")
	}

	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		candidate := filepath.Join(dir, name)
		info, err := os.Stat(candidate)
		if err != nil {
			continue
		}
		if info.Mode().IsRegular() && info.Mode().Perm()&0o111 != 0 {
			return candidate, true
		}
	}
	return "", false
}

// FindFirstFile returns the first existing regular file among names, trying
// every name in each directory before moving to the next directory.
func FindFirstFile(dirs []string, names ...string) (string, bool) {
	if len(names) == 0 {
		panic("names must not be empty")
	}

	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		for _, name := range names {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
				return candidate, true
			}
		}
	}
	return "", false
}
