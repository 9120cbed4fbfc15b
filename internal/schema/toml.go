package schema

import (
	"fmt"

	"github.com/vk/infinitytest/internal/options"
)

// UnmarshalTOML accepts an array of strings or a single comma-joined string.
func (r *RubyList) UnmarshalTOML(data any) error {
	switch v := data.(type) {
	case string:
		*r = RubyList(options.ParseRubySpec(v))
		return nil
	case []any:
		list := make(RubyList, 0, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("rubies[%d] must be a string, got %T", i, item)
			}
			list = append(list, s)
		}
		*r = list
		return nil
	default:
		return fmt.Errorf("rubies must be an array or a comma separated string, got %T", data)
	}
}

// UnmarshalTOML reads a table of identifier to flags. TOML has no null, so
// false stands for the explicit "no override" marker.
func (m *OverrideMap) UnmarshalTOML(data any) error {
	table, ok := data.(map[string]any)
	if !ok {
		return fmt.Errorf("specific_options must be a table, got %T", data)
	}
	out := make(OverrideMap, len(table))
	for ident, value := range table {
		switch v := value.(type) {
		case string:
			out[ident] = options.Override{Flags: v, Set: true}
		case bool:
			if v {
				return fmt.Errorf("override for %q: only false is allowed as a marker", ident)
			}
			out[ident] = options.NoOverride
		default:
			return fmt.Errorf("override for %q must be a string or false, got %T", ident, value)
		}
	}
	*m = out
	return nil
}
