package environment

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/vk/infinitytest/internal/fsutil"
)

// ErrUnknownEnvironment is returned when a service has no environment for the
// requested identifier.
var ErrUnknownEnvironment = errors.New("unknown environment")

// Handle identifies one interpreter environment.
type Handle interface {
	// Name is the identifier the environment was requested with.
	Name() string
	// BinDirs lists the directories searched for executables, in order.
	BinDirs() []string
}

// Service hands out environment handles.
type Service interface {
	Current() (Handle, error)
	Lookup(ident string) (Handle, error)
}

// FindExecutable reports the path of the executable called name inside h.
func FindExecutable(h Handle, name string) (string, bool) {
	return fsutil.FindExecutable(h.BinDirs(), name)
}

type handle struct {
	name string
	dirs []string
}

func (h *handle) Name() string      { return h.name }
func (h *handle) BinDirs() []string { return append([]string(nil), h.dirs...) }

// NewHandle builds a Handle from an explicit list of directories.
func NewHandle(name string, dirs ...string) Handle {
	return &handle{name: name, dirs: dirs}
}

// System exposes the environment the process already runs in.
type System struct {
	dirs []string
}

// NewSystem builds a System service from a PATH-style list.
func NewSystem(pathList string) *System {
	return &System{dirs: filepath.SplitList(pathList)}
}

// Current returns the handle for the process environment.
func (s *System) Current() (Handle, error) {
	return NewHandle("system", s.dirs...), nil
}

// Lookup only knows the "system" identifier and the empty one.
func (s *System) Lookup(ident string) (Handle, error) {
	if ident != "" && ident != "system" {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEnvironment, ident)
	}
	return s.Current()
}
