package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/infinitytest/internal/options"
	"github.com/vk/infinitytest/internal/schema"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// decodeRubies accepts either a list of identifiers or a comma-joined string.
// A missing or null attribute yields nil.
func decodeRubies(expr hcl.Expression) (schema.RubyList, hcl.Diagnostics) {
	val, diags := staticValue(expr)
	if diags.HasErrors() || val.IsNull() {
		return nil, diags
	}

	if val.Type() == cty.String {
		return schema.RubyList(options.ParseRubySpec(val.AsString())), nil
	}

	listVal, err := convert.Convert(val, cty.List(cty.String))
	if err != nil {
		return nil, hcl.Diagnostics{invalidAttribute(expr, "rubies",
			fmt.Sprintf("Expected a list of strings or a comma separated string, got %s.", val.Type().FriendlyName()))}
	}
	rubies := []string{}
	if listVal.LengthInt() > 0 {
		if err := gocty.FromCtyValue(listVal, &rubies); err != nil {
			return nil, hcl.Diagnostics{invalidAttribute(expr, "rubies", err.Error())}
		}
	}
	return schema.RubyList(rubies), nil
}

// decodeSpecificOptions reads a map of identifier to flags. A null value is
// the explicit "no override" marker.
func decodeSpecificOptions(expr hcl.Expression) (schema.OverrideMap, hcl.Diagnostics) {
	val, diags := staticValue(expr)
	if diags.HasErrors() || val.IsNull() {
		return nil, diags
	}

	ty := val.Type()
	if !ty.IsObjectType() && !ty.IsMapType() {
		return nil, hcl.Diagnostics{invalidAttribute(expr, "specific_options",
			fmt.Sprintf("Expected a map of strings, got %s.", ty.FriendlyName()))}
	}

	out := make(schema.OverrideMap)
	for it := val.ElementIterator(); it.Next(); {
		k, v := it.Element()
		ident := k.AsString()
		if v.IsNull() {
			out[ident] = options.NoOverride
			continue
		}
		str, err := convert.Convert(v, cty.String)
		if err != nil || !str.IsKnown() {
			return nil, hcl.Diagnostics{invalidAttribute(expr, "specific_options",
				fmt.Sprintf("The override for %q must be a string.", ident))}
		}
		out[ident] = options.Override{Flags: str.AsString(), Set: true}
	}
	return out, nil
}

// staticValue evaluates expr without variables or functions. A nil expression
// is treated as null.
func staticValue(expr hcl.Expression) (cty.Value, hcl.Diagnostics) {
	if expr == nil {
		return cty.NullVal(cty.DynamicPseudoType), nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return cty.NilVal, diags
	}
	if !val.IsWhollyKnown() {
		return cty.NilVal, hcl.Diagnostics{invalidAttribute(expr, "value", "The value must be known without evaluation context.")}
	}
	return val, nil
}

func invalidAttribute(expr hcl.Expression, name, detail string) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  fmt.Sprintf("Invalid %q attribute", name),
		Detail:   detail,
		Subject:  expr.Range().Ptr(),
	}
}
