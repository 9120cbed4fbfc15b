package binary

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/vk/infinitytest/internal/environment"
	"github.com/vk/infinitytest/internal/options"
)

// ErrDuplicateBinary is returned when a lookup key is declared twice.
var ErrDuplicateBinary = errors.New("binary already declared")

// Descriptor pairs the executable name with the key it is addressed by.
type Descriptor struct {
	Name  string
	Alias string
}

// Key is the alias when one is set, otherwise the name.
func (d Descriptor) Key() string {
	if d.Alias != "" {
		return d.Alias
	}
	return d.Name
}

// Resolver holds the declared binaries.
type Resolver struct {
	descriptors map[string]Descriptor
	order       []string
}

// New returns an empty Resolver.
func New() *Resolver {
	return &Resolver{descriptors: make(map[string]Descriptor)}
}

// Defaults returns a Resolver with the binaries every supported framework
// needs: bacon, cucumber, rspec 2 as "rspec_two", rspec 1 ("spec") as
// "rspec_one" and the interpreter itself for test-unit.
func Defaults() *Resolver {
	r := New()
	for _, d := range []Descriptor{
		{Name: "bacon"},
		{Name: "cucumber"},
		{Name: "rspec", Alias: "rspec_two"},
		{Name: "spec", Alias: "rspec_one"},
		{Name: "ruby"},
	} {
		if err := r.Declare(d.Name, d.Alias); err != nil {
			panic(err)
		}
	}
	return r
}

// Declare registers the executable name under alias, or under name itself
// when alias is empty.
func (r *Resolver) Declare(name, alias string) error {
	if name == "" {
		return errors.New("binary name must not be empty")
	}
	d := Descriptor{Name: name, Alias: alias}
	key := d.Key()
	if _, exists := r.descriptors[key]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateBinary, key)
	}
	slog.Debug("Declaring binary.", "name", name, "key", key)
	r.descriptors[key] = d
	r.order = append(r.order, key)
	return nil
}

// Descriptor returns the descriptor registered under key.
func (r *Resolver) Descriptor(key string) (Descriptor, bool) {
	d, ok := r.descriptors[key]
	return d, ok
}

// Keys lists the lookup keys in declaration order.
func (r *Resolver) Keys() []string {
	return append([]string(nil), r.order...)
}

// Lookup finds the executable declared under key inside env. Every call
// probes the environment again.
func (r *Resolver) Lookup(key string, env environment.Handle) (string, bool) {
	d, ok := r.descriptors[key]
	if !ok {
		slog.Debug("Lookup for undeclared binary.", "key", key)
		return "", false
	}
	path, found := environment.FindExecutable(env, d.Name)
	slog.Debug("Binary lookup finished.", "key", key, "binary", d.Name, "environment", env.Name(), "found", found)
	return path, found
}

// FrameworkKeys lists the lookup keys a test framework is run through, in
// order of preference.
func FrameworkKeys(tf options.TestFramework) []string {
	switch tf {
	case options.RSpec:
		return []string{"rspec_two", "rspec_one"}
	case options.Bacon:
		return []string{"bacon"}
	case options.Cucumber:
		return []string{"cucumber"}
	case options.TestUnit:
		return []string{"ruby"}
	default:
		return nil
	}
}

// LookupFramework tries every key of tf in turn and returns the first match
// together with the key that matched.
func (r *Resolver) LookupFramework(tf options.TestFramework, env environment.Handle) (path, key string, found bool) {
	for _, k := range FrameworkKeys(tf) {
		if p, ok := r.Lookup(k, env); ok {
			return p, k, true
		}
	}
	return "", "", false
}
