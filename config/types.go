package config

import (
	"fmt"
	"math"
	"math/big"
	"reflect"
	"strconv"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/specialistvlad/expconf/internal/ctyconv"
)

// Type is a declared field type. Coerce converts an arbitrary input value to
// the canonical Go representation of the type, or returns an error wrapping
// ErrTypeCoercion.
//
// Canonical representations: int for Int, float64 for Float, string for String
// and Enum, bool for Bool, []any for List, map[string]any for Dict, *Config for
// nested configuration types and the struct value for Object types.
type Type interface {
	Name() string
	Coerce(v any) (any, error)
}

// nullable is implemented by types that accept a nil value.
type nullable interface {
	acceptsNull() bool
}

func acceptsNull(t Type) bool {
	n, ok := t.(nullable)
	return ok && n.acceptsNull()
}

var (
	Int    Type = intType{}
	Float  Type = floatType{}
	String Type = stringType{}
	Bool   Type = boolType{}
	// Any accepts every value unchanged, including nil.
	Any Type = anyType{}
)

// toPrimitive converts v to the given primitive cty type with go-cty's
// conversion rules.
func toPrimitive(v any, ty cty.Type) (cty.Value, error) {
	cv, err := ctyconv.FromNative(v)
	if err != nil {
		return cty.NilVal, err
	}
	if cv.IsNull() {
		return cty.NilVal, fmt.Errorf("null value")
	}
	out, err := convert.Convert(cv, ty)
	if err != nil {
		return cty.NilVal, err
	}
	return out, nil
}

type intType struct{}

func (intType) Name() string { return "int" }

func (t intType) Coerce(v any) (any, error) {
	switch x := v.(type) {
	case int:
		return x, nil
	case nil:
		return nil, coercionError(v, t, nil)
	}
	n, err := toPrimitive(v, cty.Number)
	if err != nil {
		return nil, coercionError(v, t, err)
	}
	bf := n.AsBigFloat()
	if _, isString := v.(string); isString && !bf.IsInt() {
		return nil, coercionError(v, t, fmt.Errorf("%q is not an integer", v))
	}
	i, acc := bf.Int64()
	if (i == math.MaxInt64 && acc == big.Below) || (i == math.MinInt64 && acc == big.Above) ||
		i > math.MaxInt || i < math.MinInt {
		return nil, coercionError(v, t, fmt.Errorf("value out of range"))
	}
	return int(i), nil
}

type floatType struct{}

func (floatType) Name() string { return "float" }

func (t floatType) Coerce(v any) (any, error) {
	switch x := v.(type) {
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, coercionError(v, t, fmt.Errorf("non-finite number"))
		}
		return x, nil
	case nil:
		return nil, coercionError(v, t, nil)
	}
	n, err := toPrimitive(v, cty.Number)
	if err != nil {
		return nil, coercionError(v, t, err)
	}
	f, _ := n.AsBigFloat().Float64()
	return f, nil
}

type stringType struct{}

func (stringType) Name() string { return "string" }

func (t stringType) Coerce(v any) (any, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case nil:
		return nil, coercionError(v, t, nil)
	}
	s, err := toPrimitive(v, cty.String)
	if err != nil {
		return nil, coercionError(v, t, err)
	}
	return s.AsString(), nil
}

type boolType struct{}

func (boolType) Name() string { return "bool" }

func (t boolType) Coerce(v any) (any, error) {
	switch x := v.(type) {
	case bool:
		return x, nil
	case nil:
		return nil, coercionError(v, t, nil)
	}
	b, err := toPrimitive(v, cty.Bool)
	if err != nil {
		return nil, coercionError(v, t, err)
	}
	return b.True(), nil
}

type anyType struct{}

func (anyType) Name() string      { return "any" }
func (anyType) acceptsNull() bool { return true }

func (anyType) Coerce(v any) (any, error) {
	return copyValue(v), nil
}

type listType struct {
	elem Type
}

// List declares a homogeneous list of elem values.
func List(elem Type) Type {
	return listType{elem: elem}
}

func (t listType) Name() string { return "list(" + t.elem.Name() + ")" }

func (t listType) Coerce(v any) (any, error) {
	if v == nil {
		return nil, coercionError(v, t, nil)
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, coercionError(v, t, nil)
	}
	out := make([]any, rv.Len())
	for i := range out {
		ev, err := t.elem.Coerce(rv.Index(i).Interface())
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = ev
	}
	return out, nil
}

type dictType struct {
	elem Type
}

// Dict declares a string-keyed mapping of elem values.
func Dict(elem Type) Type {
	return dictType{elem: elem}
}

func (t dictType) Name() string { return "dict(" + t.elem.Name() + ")" }

func (t dictType) Coerce(v any) (any, error) {
	if tr, ok := v.(ctyconv.Treer); ok && v != nil {
		v = tr.ToTree()
	}
	if v == nil {
		return nil, coercionError(v, t, nil)
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, coercionError(v, t, nil)
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		key := iter.Key().String()
		ev, err := t.elem.Coerce(iter.Value().Interface())
		if err != nil {
			return nil, fmt.Errorf("key '%s': %w", key, err)
		}
		out[key] = ev
	}
	return out, nil
}

type optionalType struct {
	inner Type
}

// Optional declares that a field may hold nil in addition to inner values.
func Optional(inner Type) Type {
	return optionalType{inner: inner}
}

func (t optionalType) Name() string      { return "optional(" + t.inner.Name() + ")" }
func (t optionalType) acceptsNull() bool { return true }

func (t optionalType) Coerce(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	return t.inner.Coerce(v)
}

type enumType struct {
	values []string
}

// Enum declares a string field restricted to the given values.
func Enum(values ...string) Type {
	return enumType{values: append([]string(nil), values...)}
}

func (t enumType) Name() string {
	quoted := make([]string, len(t.values))
	for i, v := range t.values {
		quoted[i] = strconv.Quote(v)
	}
	return "enum(" + strings.Join(quoted, ",") + ")"
}

// Values returns the allowed values in declaration order.
func (t enumType) Values() []string {
	return append([]string(nil), t.values...)
}

func (t enumType) Coerce(v any) (any, error) {
	if v == nil {
		return nil, coercionError(v, t, nil)
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.String {
		return nil, coercionError(v, t, nil)
	}
	s := rv.String()
	for _, allowed := range t.values {
		if s == allowed {
			return s, nil
		}
	}
	return nil, coercionError(v, t, fmt.Errorf("%q is not one of %s", s, strings.Join(t.values, ", ")))
}

// unwrapOptional strips any Optional wrappers.
func unwrapOptional(t Type) Type {
	for {
		o, ok := t.(optionalType)
		if !ok {
			return t
		}
		t = o.inner
	}
}
