package schemafile

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"

	"github.com/specialistvlad/expconf/config"
)

var primitives = map[string]config.Type{
	"int":    config.Int,
	"float":  config.Float,
	"number": config.Float,
	"string": config.String,
	"bool":   config.Bool,
	"any":    config.Any,
}

// resolveType converts an HCL type expression into a declared field type.
// lookup resolves references to config types.
func resolveType(expr hcl.Expression, lookup func(string) (*config.Spec, bool)) (config.Type, hcl.Diagnostics) {
	if call, diags := hcl.ExprCall(expr); !diags.HasErrors() {
		return resolveCall(call, lookup)
	}

	traversal, diags := hcl.AbsTraversalForExpr(expr)
	if diags.HasErrors() || len(traversal) != 1 {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid type specification",
			Detail:   "A type must be a type keyword, a config type name, or a type constructor such as list(int).",
			Subject:  expr.Range().Ptr(),
		}}
	}

	name := traversal.RootName()
	if t, ok := primitives[name]; ok {
		return t, nil
	}
	if s, ok := lookup(name); ok {
		return s, nil
	}
	return nil, hcl.Diagnostics{{
		Severity: hcl.DiagError,
		Summary:  "Unsupported type",
		Detail:   fmt.Sprintf("The keyword '%s' is neither a primitive type nor a config type declared earlier.", name),
		Subject:  expr.Range().Ptr(),
	}}
}

func resolveCall(call *hcl.StaticCall, lookup func(string) (*config.Spec, bool)) (config.Type, hcl.Diagnostics) {
	if call.Name == "enum" {
		return resolveEnum(call)
	}

	if len(call.Arguments) != 1 {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid type constructor",
			Detail:   fmt.Sprintf("The %s() type constructor requires exactly one argument, got %d.", call.Name, len(call.Arguments)),
			Subject:  call.ArgsRange.Ptr(),
		}}
	}

	inner, diags := resolveType(call.Arguments[0], lookup)
	if diags.HasErrors() {
		return nil, diags
	}

	switch call.Name {
	case "list":
		return config.List(inner), nil
	case "dict", "map":
		return config.Dict(inner), nil
	case "optional":
		return config.Optional(inner), nil
	}
	return nil, hcl.Diagnostics{{
		Severity: hcl.DiagError,
		Summary:  "Unknown type constructor",
		Detail:   fmt.Sprintf("Unknown type constructor %q. Supported: list, dict, map, optional, enum.", call.Name),
		Subject:  call.NameRange.Ptr(),
	}}
}

func resolveEnum(call *hcl.StaticCall) (config.Type, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	if len(call.Arguments) == 0 {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid enum",
			Detail:   "enum() requires at least one value.",
			Subject:  call.ArgsRange.Ptr(),
		}}
	}

	values := make([]string, 0, len(call.Arguments))
	seen := make(map[string]bool, len(call.Arguments))
	for _, arg := range call.Arguments {
		v, valDiags := arg.Value(nil)
		diags = append(diags, valDiags...)
		if valDiags.HasErrors() {
			continue
		}
		if v.IsNull() || !v.Type().Equals(cty.String) {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid enum value",
				Detail:   "Enum values must be string literals.",
				Subject:  arg.Range().Ptr(),
			})
			continue
		}
		s := v.AsString()
		if seen[s] {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate enum value",
				Detail:   fmt.Sprintf("The value %q is listed more than once.", s),
				Subject:  arg.Range().Ptr(),
			})
			continue
		}
		seen[s] = true
		values = append(values, s)
	}
	if diags.HasErrors() {
		return nil, diags
	}
	return config.Enum(values...), nil
}

// parseKind maps the kind attribute to a field option.
func parseKind(kind string) (config.FieldOption, bool) {
	switch strings.ToLower(kind) {
	case "", "normal":
		return func(*config.FieldDef) {}, true
	case "stateless":
		return config.Stateless(), true
	case "derived":
		return config.Derived(), true
	}
	return nil, false
}
