package config

import (
	"fmt"
	"reflect"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/specialistvlad/expconf/internal/ctyconv"
)

// objectType adapts a plain Go struct with `cty` tags into a declared type.
// A keyword mapping is laid over the struct's zero value attribute by
// attribute, so unspecified attributes keep their zero values.
type objectType struct {
	rt reflect.Type
	ty cty.Type
}

// Object declares a field holding a plain struct T. T must be a struct whose
// exported fields carry `cty:"name"` tags.
func Object[T any]() Type {
	t, err := ObjectOf(reflect.TypeFor[T]())
	if err != nil {
		panic(err)
	}
	return t
}

// ObjectOf is the reflection form of Object.
func ObjectOf(rt reflect.Type) (Type, error) {
	if rt == nil || rt.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: object type must be a struct, got %v", ErrInvalidDefinition, rt)
	}
	ty, err := gocty.ImpliedType(reflect.New(rt).Elem().Interface())
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidDefinition, rt, err)
	}
	return objectType{rt: rt, ty: ty}, nil
}

func (t objectType) Name() string {
	if n := t.rt.Name(); n != "" {
		return n
	}
	return t.rt.String()
}

func (t objectType) Coerce(v any) (any, error) {
	if v == nil {
		return nil, coercionError(v, t, nil)
	}
	rv := reflect.ValueOf(v)
	if rv.Type() == t.rt {
		return v, nil
	}
	if rv.Kind() == reflect.Pointer && rv.Type().Elem() == t.rt {
		if rv.IsNil() {
			return nil, coercionError(v, t, nil)
		}
		return rv.Elem().Interface(), nil
	}

	src, err := ctyconv.FromNative(v)
	if err != nil {
		return nil, coercionError(v, t, err)
	}
	if !src.Type().IsObjectType() && !src.Type().IsMapType() {
		return nil, coercionError(v, t, nil)
	}

	base, err := gocty.ToCtyValue(reflect.New(t.rt).Elem().Interface(), t.ty)
	if err != nil {
		return nil, coercionError(v, t, err)
	}
	attrs := base.AsValueMap()
	if attrs == nil {
		attrs = map[string]cty.Value{}
	}
	for it := src.ElementIterator(); it.Next(); {
		k, ev := it.Element()
		name := k.AsString()
		if !t.ty.HasAttribute(name) {
			return nil, coercionError(v, t, fmt.Errorf("%w '%s'", ErrUnknownField, name))
		}
		attrs[name] = ev
	}

	obj, err := convert.Convert(cty.ObjectVal(attrs), t.ty)
	if err != nil {
		return nil, coercionError(v, t, err)
	}
	out := reflect.New(t.rt)
	if err := gocty.FromCtyValue(obj, out.Interface()); err != nil {
		return nil, coercionError(v, t, err)
	}
	return out.Elem().Interface(), nil
}

// objectTree renders a struct value as a native mapping.
func objectTree(v any) any {
	cv, err := ctyconv.FromNative(v)
	if err != nil {
		return v
	}
	nv, err := ctyconv.ToNative(cv)
	if err != nil {
		return v
	}
	return nv
}
