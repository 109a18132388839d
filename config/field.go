package config

// Kind classifies a field for fingerprinting purposes.
type Kind int

const (
	// KindNormal fields take part in the fingerprint.
	KindNormal Kind = iota
	// KindStateless fields are excluded from the fingerprint. Use them for
	// values that do not change the experiment outcome, such as a device
	// name or a log directory.
	KindStateless
	// KindDerived fields are computed from other fields. They are never
	// required and are excluded from the fingerprint.
	KindDerived
)

func (k Kind) String() string {
	switch k {
	case KindStateless:
		return "stateless"
	case KindDerived:
		return "derived"
	default:
		return "normal"
	}
}

// FieldDef describes one declared field.
type FieldDef struct {
	Name        string
	Type        Type
	Kind        Kind
	Description string

	def        any
	hasDefault bool
	factory    func() any
}

// FieldOption customizes a FieldDef.
type FieldOption func(*FieldDef)

// Field declares a field of the given type.
func Field(name string, t Type, opts ...FieldOption) FieldDef {
	f := FieldDef{Name: name, Type: t}
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

// Default sets the default value. It is coerced to the field type when the
// configuration type is defined and copied into every new instance.
func Default(v any) FieldOption {
	return func(f *FieldDef) {
		f.def, f.hasDefault, f.factory = v, true, nil
	}
}

// DefaultFunc sets a factory invoked once per new instance.
func DefaultFunc(fn func() any) FieldOption {
	return func(f *FieldDef) {
		f.factory, f.hasDefault, f.def = fn, true, nil
	}
}

// Stateless marks the field as excluded from the fingerprint.
func Stateless() FieldOption {
	return func(f *FieldDef) { f.Kind = KindStateless }
}

// Derived marks the field as derived: never required and excluded from the
// fingerprint.
func Derived() FieldOption {
	return func(f *FieldDef) { f.Kind = KindDerived }
}

// Describe attaches a human readable description.
func Describe(text string) FieldOption {
	return func(f *FieldDef) { f.Description = text }
}

// HasDefault reports whether the field carries a default value or factory.
func (f FieldDef) HasDefault() bool {
	return f.hasDefault
}

// Required reports whether a value must be supplied at construction.
func (f FieldDef) Required() bool {
	return !f.hasDefault && f.Kind != KindDerived && !acceptsNull(f.Type)
}

// DefaultValue returns a fresh copy of the default value, invoking the
// factory if one is set.
func (f FieldDef) DefaultValue() (any, error) {
	if f.factory != nil {
		v := f.factory()
		if v == nil {
			return nil, nil
		}
		return f.Type.Coerce(v)
	}
	return copyValue(f.def), nil
}

func (f FieldDef) nullable() bool {
	return f.Kind == KindDerived || acceptsNull(f.Type)
}
