// Package heuristics maps changed file paths onto the tests that should run
// for them. The runner's watcher consumes the rules; this package only
// records and evaluates them.
package heuristics

import (
	"fmt"
	"regexp"
	"strconv"
)

// Rule sends changes matching Pattern to Run. Run may reference capture
// groups of the pattern as %1, %2 and so on.
type Rule struct {
	Pattern *regexp.Regexp
	Run     string
}

// Builder accumulates rules in declaration order.
type Builder struct {
	rules []Rule
}

// New returns an empty Builder.
func New() *Builder {
	return &Builder{}
}

// Add compiles pattern and appends a rule for it.
func (b *Builder) Add(pattern, run string) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("invalid heuristics pattern %q: %w", pattern, err)
	}
	b.rules = append(b.rules, Rule{Pattern: re, Run: run})
	return nil
}

// Rules returns a copy of the recorded rules.
func (b *Builder) Rules() []Rule {
	return append([]Rule(nil), b.rules...)
}

// Match returns the expanded run targets of every rule matching path.
func (b *Builder) Match(path string) []string {
	var targets []string
	for _, r := range b.rules {
		groups := r.Pattern.FindStringSubmatch(path)
		if groups == nil {
			continue
		}
		targets = append(targets, Expand(r.Run, groups))
	}
	return targets
}

var placeholder = regexp.MustCompile(`%[0-9]+`)

// Expand replaces every %N in template with capture group N in a single
// pass, so text coming from a group is never expanded again. A placeholder
// naming a group that does not exist is left as is.
func Expand(template string, groups []string) string {
	return placeholder.ReplaceAllStringFunc(template, func(m string) string {
		i, err := strconv.Atoi(m[1:])
		if err != nil || i >= len(groups) {
			return m
		}
		return groups[i]
	})
}
