package schema

import (
	"fmt"

	"github.com/vk/infinitytest/internal/options"
	"gopkg.in/yaml.v3"
)

// UnmarshalYAML accepts a sequence of scalars or a single comma-joined
// scalar. Identifiers are read as raw text so "1.9" stays a string.
func (r *RubyList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			*r = nil
			return nil
		}
		*r = RubyList(options.ParseRubySpec(node.Value))
		return nil
	case yaml.SequenceNode:
		list := make(RubyList, 0, len(node.Content))
		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: rubies entries must be scalars", item.Line)
			}
			list = append(list, item.Value)
		}
		*r = list
		return nil
	default:
		return fmt.Errorf("line %d: rubies must be a list or a comma separated string", node.Line)
	}
}

// UnmarshalYAML reads a mapping of identifier to flags. A null value records
// the explicit "no override" marker.
func (m *OverrideMap) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		*m = nil
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: specific_options must be a mapping", node.Line)
	}
	out := make(OverrideMap, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if value.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: override for %q must be a string", value.Line, key.Value)
		}
		if value.Tag == "!!null" {
			out[key.Value] = options.NoOverride
			continue
		}
		out[key.Value] = options.Override{Flags: value.Value, Set: true}
	}
	*m = out
	return nil
}
