// Package watch is the raw pattern-to-action script used when the built-in
// heuristics are not wanted. The file watcher feeds changed paths into
// Dispatch.
package watch

import (
	"fmt"
	"regexp"
)

// Action runs for a changed path. Groups holds the pattern's submatches with
// the whole match at index 0.
type Action func(path string, groups []string)

// Rule binds a compiled pattern to its action.
type Rule struct {
	Pattern *regexp.Regexp
	Action  Action
}

// Script holds the watch rules in declaration order.
type Script struct {
	rules []Rule
}

// NewScript returns an empty Script.
func NewScript() *Script {
	return &Script{}
}

// Watch compiles pattern and records action for it. A nil action is allowed
// and makes the rule a no-op.
func (s *Script) Watch(pattern string, action Action) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("invalid watch pattern %q: %w", pattern, err)
	}
	s.rules = append(s.rules, Rule{Pattern: re, Action: action})
	return nil
}

// Rules returns a copy of the recorded rules.
func (s *Script) Rules() []Rule {
	return append([]Rule(nil), s.rules...)
}

// Dispatch runs the action of every rule matching path and reports how many
// rules matched.
func (s *Script) Dispatch(path string) int {
	matched := 0
	for _, r := range s.rules {
		groups := r.Pattern.FindStringSubmatch(path)
		if groups == nil {
			continue
		}
		matched++
		if r.Action != nil {
			r.Action(path, groups)
		}
	}
	return matched
}
