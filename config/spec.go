package config

import (
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/specialistvlad/expconf/internal/ctyconv"
	"github.com/specialistvlad/expconf/internal/fieldpath"
)

// Spec is a configuration type: an ordered set of field descriptors. A Spec
// is itself a Type, so it can be used as the type of a nested field.
type Spec struct {
	name   string
	fields []FieldDef
	index  map[string]int
	parent *Spec
}

// Define builds a configuration type from its fields. Declaration order is
// preserved and drives fingerprinting, expansion and serialization order.
func Define(name string, fields ...FieldDef) (*Spec, error) {
	return define(name, nil, fields)
}

// MustDefine is like Define but panics on error.
func MustDefine(name string, fields ...FieldDef) *Spec {
	s, err := Define(name, fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Extend derives a configuration type from parent. Parent fields keep their
// position; a field re-declared in fields replaces the parent descriptor in
// place, and new fields are appended.
func Extend(parent *Spec, name string, fields ...FieldDef) (*Spec, error) {
	if parent == nil {
		return nil, fmt.Errorf("%w: %s: nil parent", ErrInvalidDefinition, name)
	}
	merged := append([]FieldDef(nil), parent.fields...)
	for _, f := range fields {
		if i, ok := parent.index[f.Name]; ok {
			merged[i] = f
			continue
		}
		merged = append(merged, f)
	}
	return define(name, parent, merged)
}

func define(name string, parent *Spec, fields []FieldDef) (*Spec, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: config type name cannot be empty", ErrInvalidDefinition)
	}
	s := &Spec{
		name:   name,
		fields: make([]FieldDef, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
		parent: parent,
	}
	for _, f := range fields {
		if p, err := fieldpath.Parse(f.Name); err != nil || len(p) != 1 {
			return nil, fmt.Errorf("%w: %s: invalid field name %q", ErrInvalidDefinition, name, f.Name)
		}
		if _, dup := s.index[f.Name]; dup {
			return nil, fmt.Errorf("%w: %s: duplicate field '%s'", ErrInvalidDefinition, name, f.Name)
		}
		if f.Type == nil {
			return nil, fmt.Errorf("%w: %s: field '%s' has no type", ErrInvalidDefinition, name, f.Name)
		}
		if err := resolveDefault(&f); err != nil {
			return nil, &FieldError{Type: name, Field: f.Name, Err: fmt.Errorf("%w: default: %w", ErrInvalidDefinition, err)}
		}
		s.index[f.Name] = len(s.fields)
		s.fields = append(s.fields, f)
	}
	return s, nil
}

// resolveDefault coerces a static default once and gives nested
// configuration fields without an explicit default the nested type's own
// defaults, when those are complete.
func resolveDefault(f *FieldDef) error {
	if !f.hasDefault {
		if nested, ok := f.Type.(*Spec); ok {
			if _, err := nested.New(nil); err == nil {
				f.hasDefault = true
				f.factory = func() any { return nested.MustNew(nil) }
			}
		}
		return nil
	}
	if f.factory != nil {
		return nil
	}
	if f.def == nil {
		if !f.nullable() {
			return fmt.Errorf("%w: nil is not a valid %s", ErrTypeCoercion, f.Type.Name())
		}
		return nil
	}
	v, err := f.Type.Coerce(f.def)
	if err != nil {
		return err
	}
	if c, ok := v.(*Config); ok {
		c.Freeze()
	}
	f.def = v
	return nil
}

// Name returns the configuration type name.
func (s *Spec) Name() string {
	return s.name
}

// Parent returns the type this one was derived from with Extend, or nil.
func (s *Spec) Parent() *Spec {
	return s.parent
}

// Fields returns the field descriptors in declaration order.
func (s *Spec) Fields() []FieldDef {
	return append([]FieldDef(nil), s.fields...)
}

// Field returns the descriptor for name.
func (s *Spec) Field(name string) (FieldDef, bool) {
	i, ok := s.index[name]
	if !ok {
		return FieldDef{}, false
	}
	return s.fields[i], true
}

// Keys returns the field names in declaration order.
func (s *Spec) Keys() []string {
	keys := make([]string, len(s.fields))
	for i, f := range s.fields {
		keys[i] = f.Name
	}
	return keys
}

// NewOption customizes instance construction.
type NewOption func(*newSettings)

type newSettings struct {
	lenient bool
	logger  *slog.Logger
}

// Lenient downgrades unknown keys, missing required values and uncoercible
// values to logged warnings. Affected fields are left nil.
func Lenient() NewOption {
	return func(s *newSettings) { s.lenient = true }
}

// WithLogger sets the logger used for lenient-mode warnings.
func WithLogger(l *slog.Logger) NewOption {
	return func(s *newSettings) { s.logger = l }
}

func settingsFrom(opts []NewOption) newSettings {
	st := newSettings{}
	for _, opt := range opts {
		opt(&st)
	}
	if st.logger == nil {
		st.logger = slog.Default()
	}
	return st
}

// New constructs an instance from keyword values. Fields not present in
// kwargs take their defaults. The returned instance is not frozen.
func (s *Spec) New(kwargs map[string]any, opts ...NewOption) (*Config, error) {
	return s.build(kwargs, settingsFrom(opts))
}

// MustNew is like New but panics on error.
func (s *Spec) MustNew(kwargs map[string]any, opts ...NewOption) *Config {
	c, err := s.New(kwargs, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// FromTree rebuilds an instance from the output of Config.ToTree.
func (s *Spec) FromTree(tree map[string]any, opts ...NewOption) (*Config, error) {
	return s.New(tree, opts...)
}

func (s *Spec) build(kwargs map[string]any, st newSettings) (*Config, error) {
	var unknown []string
	for _, k := range ctyconv.SortedKeys(kwargs) {
		if _, ok := s.index[k]; !ok {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		if !st.lenient {
			return nil, &FieldError{Type: s.name, Field: strings.Join(unknown, ", "), Err: ErrUnknownField}
		}
		st.logger.Warn("Ignoring unknown fields.", "type", s.name, "fields", unknown)
	}

	c := &Config{spec: s, values: make([]any, len(s.fields))}
	for i, f := range s.fields {
		raw, given := kwargs[f.Name]
		v, err := s.resolve(f, raw, given, st)
		if err != nil {
			if !st.lenient {
				return nil, err
			}
			st.logger.Warn("Leaving field unset.", "type", s.name, "field", f.Name, "error", err)
			v = nil
		}
		c.values[i] = v
	}
	return c, nil
}

func (s *Spec) resolve(f FieldDef, raw any, given bool, st newSettings) (any, error) {
	if !given || (raw == nil && !f.nullable()) {
		if f.hasDefault {
			v, err := f.DefaultValue()
			if err != nil {
				return nil, s.fieldError(f, err)
			}
			return v, nil
		}
		if f.nullable() {
			return nil, nil
		}
		return nil, &FieldError{Type: s.name, Field: f.Name, Err: ErrMissingRequired}
	}
	if raw == nil {
		return nil, nil
	}

	raw, err := s.overDefault(f, raw)
	if err != nil {
		return nil, err
	}
	return s.coerce(f, raw, st)
}

// overDefault lays a partial mapping given for a composite field over the
// tree of the field default. Instances and non-mapping values are returned
// as is.
func (s *Spec) overDefault(f FieldDef, raw any) (any, error) {
	if _, isConfig := raw.(*Config); isConfig || !f.hasDefault || !isComposite(f.Type) {
		return raw, nil
	}
	m, ok := asMapping(raw)
	if !ok {
		return raw, nil
	}
	def, err := f.DefaultValue()
	if err != nil {
		return nil, s.fieldError(f, err)
	}
	base, ok := asMapping(treeValue(def))
	if !ok {
		return m, nil
	}
	return overlay(f.Type, base, m), nil
}

// overlay returns base with the entries of m written over it. Entries for
// nested configuration fields that are mappings on both sides are merged
// recursively; every other entry, including dicts and lists, replaces the
// base entry whole.
func overlay(t Type, base, m map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(m))
	for k, v := range base {
		out[k] = v
	}
	nested, _ := unwrapOptional(t).(*Spec)
	for k, v := range m {
		out[k] = v
		if nested == nil {
			continue
		}
		f, ok := nested.Field(k)
		if !ok || !isComposite(f.Type) {
			continue
		}
		if _, isConfig := v.(*Config); isConfig {
			continue
		}
		bm, bok := asMapping(base[k])
		vm, vok := asMapping(v)
		if bok && vok {
			out[k] = overlay(f.Type, bm, vm)
		}
	}
	return out
}

func (s *Spec) coerce(f FieldDef, raw any, st newSettings) (any, error) {
	var (
		v   any
		err error
	)
	if nested, ok := unwrapOptional(f.Type).(*Spec); ok {
		if m, isMap := raw.(map[string]any); isMap {
			v, err = nested.build(m, st)
		} else {
			v, err = f.Type.Coerce(raw)
		}
	} else {
		v, err = f.Type.Coerce(raw)
	}
	if err != nil {
		return nil, s.fieldError(f, err)
	}
	return v, nil
}

// fieldError attributes err to field f. Errors from a nested configuration
// have their field path prefixed.
func (s *Spec) fieldError(f FieldDef, err error) error {
	if fe, ok := err.(*FieldError); ok {
		return &FieldError{Type: s.name, Field: fieldpath.Join(f.Name, fe.Field), Err: fe.Err}
	}
	return &FieldError{Type: s.name, Field: f.Name, Err: err}
}

// Coerce makes Spec usable as a field type. An instance of the same type is
// copied; a mapping or an instance of another type is constructed through
// New.
func (s *Spec) Coerce(v any) (any, error) {
	switch x := v.(type) {
	case nil:
		return nil, coercionError(v, s, nil)
	case *Config:
		if x == nil {
			return nil, coercionError(v, s, nil)
		}
		if x.spec == s {
			return x.Clone(), nil
		}
		return s.New(x.ToTree())
	}
	m, ok := asMapping(v)
	if !ok {
		return nil, coercionError(v, s, nil)
	}
	return s.New(m)
}

func (s *Spec) String() string {
	return s.name
}

// isComposite reports whether a mapping given for a field of type t should be
// merged over the field default.
func isComposite(t Type) bool {
	switch unwrapOptional(t).(type) {
	case *Spec, objectType:
		return true
	}
	return false
}

// asMapping returns v as a fresh map[string]any when it is a string-keyed map
// or an instance. Nested instances inside the map are converted to trees.
func asMapping(v any) (map[string]any, bool) {
	if v == nil {
		return nil, false
	}
	if c, ok := v.(*Config); ok {
		if c == nil {
			return nil, false
		}
		return c.ToTree(), true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = treeValue(iter.Value().Interface())
	}
	return out, true
}
