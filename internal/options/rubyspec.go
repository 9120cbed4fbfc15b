package options

import "strings"

// RubySpec is the ordered list of interpreter identifiers a run targets.
type RubySpec []string

// ParseRubySpec splits a comma-joined list. The empty string yields an empty,
// non-nil spec.
func ParseRubySpec(s string) RubySpec {
	if s == "" {
		return RubySpec{}
	}
	return RubySpec(strings.Split(s, ","))
}

// String joins the identifiers back with commas.
func (r RubySpec) String() string {
	return strings.Join(r, ",")
}

// WithGemset returns a copy with "@gemset" appended to every identifier.
func (r RubySpec) WithGemset(gemset string) RubySpec {
	out := make(RubySpec, len(r))
	for i, ident := range r {
		out[i] = ident + "@" + gemset
	}
	return out
}

// Override is the verbatim flags string attached to one interpreter. Set is
// false for the explicit "no override" marker, which differs from an override
// that happens to be empty.
type Override struct {
	Flags string
	Set   bool
}

// NoOverride is the marker recorded for identifiers given without a '+'.
var NoOverride = Override{}

// SpecificOptions maps interpreter identifiers to their overrides.
type SpecificOptions map[string]Override

// Clone returns a copy of s. A nil s clones to an empty map.
func (s SpecificOptions) Clone() SpecificOptions {
	out := make(SpecificOptions, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Lookup reports the override flags for ident and whether one is set.
func (s SpecificOptions) Lookup(ident string) (string, bool) {
	o, ok := s[ident]
	if !ok || !o.Set {
		return "", false
	}
	return o.Flags, true
}

// parseRubies decodes the value of --rubies. Entries are split on commas and
// each entry on its first '+'; everything after that '+' is kept verbatim.
// When no entry carries a '+' the returned map is empty, otherwise every
// identifier gets a key.
func parseRubies(value string) (RubySpec, SpecificOptions) {
	rubies := RubySpec{}
	specific := SpecificOptions{}
	if value == "" {
		return rubies, specific
	}

	withOverride := false
	entries := strings.Split(value, ",")
	overrides := make([]Override, len(entries))
	for i, entry := range entries {
		ident, flags, found := strings.Cut(entry, "+")
		rubies = append(rubies, ident)
		if found {
			withOverride = true
			overrides[i] = Override{Flags: flags, Set: true}
		}
	}

	if !withOverride {
		return rubies, specific
	}
	for i, ident := range rubies {
		specific[ident] = overrides[i]
	}
	return rubies, specific
}
