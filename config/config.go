package config

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/google/go-cmp/cmp"

	"github.com/specialistvlad/expconf/internal/ctyconv"
	"github.com/specialistvlad/expconf/internal/fieldpath"
)

// Config is an instance of a configuration type. It owns its values,
// including nested instances. Configs are not safe for concurrent mutation.
type Config struct {
	spec   *Spec
	values []any
	frozen bool
}

// Spec returns the configuration type of c.
func (c *Config) Spec() *Spec {
	return c.spec
}

// Keys returns the field names in declaration order.
func (c *Config) Keys() []string {
	return c.spec.Keys()
}

// Frozen reports whether c rejects writes.
func (c *Config) Frozen() bool {
	return c.frozen
}

// Set is the single mutation entry point: it rejects writes to a frozen
// instance, coerces v to the declared type and only then stores it. On error
// c is left unchanged.
func (c *Config) Set(name string, v any) error {
	i, ok := c.spec.index[name]
	if !ok {
		return &FieldError{Type: c.spec.name, Field: name, Err: ErrUnknownField}
	}
	if c.frozen {
		return &FieldError{Type: c.spec.name, Field: name, Err: ErrFrozen}
	}
	f := c.spec.fields[i]
	if v == nil {
		if !f.nullable() {
			return &FieldError{Type: c.spec.name, Field: name, Err: coercionError(v, f.Type, nil)}
		}
		c.values[i] = nil
		return nil
	}
	raw, err := c.spec.overDefault(f, v)
	if err != nil {
		return err
	}
	nv, err := c.spec.coerce(f, raw, settingsFrom(nil))
	if err != nil {
		return err
	}
	c.values[i] = nv
	return nil
}

// SetPath assigns v to the field at a dotted path, walking nested
// instances first.
func (c *Config) SetPath(path string, v any) error {
	p, err := fieldpath.Parse(path)
	if err != nil {
		return &FieldError{Type: c.spec.name, Field: path, Err: fmt.Errorf("%w: %v", ErrUnknownField, err)}
	}
	owner, err := c.walk(p.Parent())
	if err != nil {
		return err
	}
	if err := owner.Set(p.Leaf(), v); err != nil {
		if fe, ok := err.(*FieldError); ok && owner != c {
			return &FieldError{Type: c.spec.name, Field: path, Err: fe.Err}
		}
		return err
	}
	return nil
}

// walk follows nested instances along segments.
func (c *Config) walk(segments []string) (*Config, error) {
	cur := c
	for i, seg := range segments {
		child, err := cur.Child(seg)
		if err != nil {
			return nil, &FieldError{
				Type:  c.spec.name,
				Field: strings.Join(segments[:i+1], "."),
				Err:   err.(*FieldError).Err,
			}
		}
		cur = child
	}
	return cur, nil
}

// Freeze makes c and every nested instance reject writes. It returns c.
func (c *Config) Freeze() *Config {
	c.setFrozen(true)
	return c
}

// Unfreeze reverses Freeze on c and every nested instance. It returns c.
func (c *Config) Unfreeze() *Config {
	c.setFrozen(false)
	return c
}

func (c *Config) setFrozen(frozen bool) {
	c.frozen = frozen
	for _, v := range c.values {
		setFrozen(v, frozen)
	}
}

func setFrozen(v any, frozen bool) {
	switch x := v.(type) {
	case *Config:
		if x != nil {
			x.setFrozen(frozen)
		}
	case []any:
		for _, e := range x {
			setFrozen(e, frozen)
		}
	case map[string]any:
		for _, e := range x {
			setFrozen(e, frozen)
		}
	}
}

// Get returns the value of a field. Lists and dicts are returned as copies;
// nested instances are returned live, so writes through them are subject to
// their own frozen state.
func (c *Config) Get(name string) (any, error) {
	i, ok := c.spec.index[name]
	if !ok {
		return nil, &FieldError{Type: c.spec.name, Field: name, Err: ErrUnknownField}
	}
	if nested, ok := c.values[i].(*Config); ok {
		return nested, nil
	}
	return copyValue(c.values[i]), nil
}

// Lookup returns the value at a dotted path.
func (c *Config) Lookup(path string) (any, error) {
	p, err := fieldpath.Parse(path)
	if err != nil {
		return nil, &FieldError{Type: c.spec.name, Field: path, Err: fmt.Errorf("%w: %v", ErrUnknownField, err)}
	}
	owner, err := c.walk(p.Parent())
	if err != nil {
		return nil, err
	}
	v, err := owner.Get(p.Leaf())
	if err != nil {
		return nil, &FieldError{Type: c.spec.name, Field: path, Err: ErrUnknownField}
	}
	return v, nil
}

// Child returns the nested instance held by field name.
func (c *Config) Child(name string) (*Config, error) {
	v, err := c.Get(name)
	if err != nil {
		return nil, err
	}
	child, ok := v.(*Config)
	if !ok || child == nil {
		return nil, &FieldError{Type: c.spec.name, Field: name, Err: fmt.Errorf("%w: not a nested config", ErrUnknownField)}
	}
	return child, nil
}

// Value returns the value at a dotted path as T.
func Value[T any](c *Config, path string) (T, error) {
	var zero T
	v, err := c.Lookup(path)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, &FieldError{
			Type:  c.spec.name,
			Field: path,
			Err:   fmt.Errorf("%w: holds %T, not %s", ErrTypeCoercion, v, reflect.TypeFor[T]()),
		}
	}
	return t, nil
}

// GetInt returns the int at a dotted path.
func (c *Config) GetInt(path string) (int, error) { return Value[int](c, path) }

// GetFloat returns the float64 at a dotted path.
func (c *Config) GetFloat(path string) (float64, error) { return Value[float64](c, path) }

// GetString returns the string at a dotted path.
func (c *Config) GetString(path string) (string, error) { return Value[string](c, path) }

// GetBool returns the bool at a dotted path.
func (c *Config) GetBool(path string) (bool, error) { return Value[bool](c, path) }

// Clone returns an unfrozen deep copy of c.
func (c *Config) Clone() *Config {
	out := &Config{spec: c.spec, values: make([]any, len(c.values))}
	for i, v := range c.values {
		out.values[i] = copyValue(v)
	}
	return out
}

// Equal reports whether both instances have the same type name and the same
// values for every field, Stateless and Derived fields included.
func (c *Config) Equal(other *Config) bool {
	if c == nil || other == nil {
		return c == other
	}
	if c.spec.name != other.spec.name {
		return false
	}
	return cmp.Equal(c.ToTree(), other.ToTree())
}

// String renders c as Name(field=value, ...).
func (c *Config) String() string {
	var sb strings.Builder
	sb.WriteString(c.spec.name)
	sb.WriteByte('(')
	for i, f := range c.spec.fields {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(f.Name)
		sb.WriteByte('=')
		writeValue(&sb, c.values[i])
	}
	sb.WriteByte(')')
	return sb.String()
}

func writeValue(sb *strings.Builder, v any) {
	switch x := v.(type) {
	case nil:
		sb.WriteString("nil")
	case string:
		sb.WriteString(strconv.Quote(x))
	case *Config:
		sb.WriteString(x.String())
	case []any:
		sb.WriteByte('[')
		for i, e := range x {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeValue(sb, e)
		}
		sb.WriteByte(']')
	case map[string]any:
		sb.WriteByte('{')
		for i, k := range ctyconv.SortedKeys(x) {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(strconv.Quote(k))
			sb.WriteString(": ")
			writeValue(sb, x[k])
		}
		sb.WriteByte('}')
	default:
		fmt.Fprintf(sb, "%v", x)
	}
}

// copyValue deep-copies lists, dicts and nested instances. Other values are
// returned as is.
func copyValue(v any) any {
	switch x := v.(type) {
	case *Config:
		if x == nil {
			return x
		}
		return x.Clone()
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = copyValue(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = copyValue(e)
		}
		return out
	}
	return v
}
