package environment

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// RVM resolves environments inside an rvm installation rooted at Root.
type RVM struct {
	Root string

	// Fallback answers Current when GEM_HOME does not point into Root.
	Fallback Service
	// Getenv reads environment variables; os.Getenv when nil.
	Getenv func(string) string
}

// NewRVM returns an RVM service rooted at root, falling back to the process
// PATH for the current environment.
func NewRVM(root string) *RVM {
	return &RVM{
		Root:     root,
		Fallback: NewSystem(os.Getenv("PATH")),
	}
}

// Lookup returns the handle for "ident" or "ident@gemset". The ruby itself
// must be installed under <root>/rubies; gem directories are optional.
func (r *RVM) Lookup(ident string) (Handle, error) {
	ruby, gemset, _ := strings.Cut(ident, "@")
	if ruby == "" {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEnvironment, ident)
	}

	rubyDir := filepath.Join(r.Root, "rubies", ruby)
	if info, err := os.Stat(rubyDir); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %q is not installed under %s", ErrUnknownEnvironment, ruby, r.Root)
	}

	var dirs []string
	if gemset != "" {
		dirs = append(dirs, filepath.Join(r.Root, "gems", ruby+"@"+gemset, "bin"))
	}
	dirs = append(dirs,
		filepath.Join(r.Root, "gems", ruby, "bin"),
		filepath.Join(r.Root, "gems", ruby+"@global", "bin"),
		filepath.Join(rubyDir, "bin"),
	)
	return NewHandle(ident, dirs...), nil
}

// Current derives the active environment from GEM_HOME. When GEM_HOME is unset
// or lies outside Root the fallback service answers.
func (r *RVM) Current() (Handle, error) {
	getenv := r.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	gemHome := getenv("GEM_HOME")
	gemsDir := filepath.Join(r.Root, "gems")
	if gemHome != "" && filepath.Dir(filepath.Clean(gemHome)) == gemsDir {
		return r.Lookup(filepath.Base(gemHome))
	}
	if r.Fallback == nil {
		return nil, fmt.Errorf("%w: no active rvm environment", ErrUnknownEnvironment)
	}
	return r.Fallback.Current()
}
