package registry

import (
	"fmt"
	"log/slog"

	"github.com/specialistvlad/expconf/config"
)

// Registry holds configuration types for a single application instance.
type Registry struct {
	specs map[string]*config.Spec
	order []string
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{specs: make(map[string]*config.Spec)}
}

// Register adds a configuration type. Names must be unique.
func (r *Registry) Register(s *config.Spec) error {
	if s == nil {
		return fmt.Errorf("cannot register a nil config type")
	}
	if _, exists := r.specs[s.Name()]; exists {
		return fmt.Errorf("config type with name '%s' already registered", s.Name())
	}
	slog.Debug("Registering config type.", "name", s.Name(), "fields", len(s.Keys()))
	r.specs[s.Name()] = s
	r.order = append(r.order, s.Name())
	return nil
}

// MustRegister is like Register but panics on error. Use it for types
// declared in Go code, where a clash is a programmer error.
func (r *Registry) MustRegister(specs ...*config.Spec) {
	for _, s := range specs {
		if err := r.Register(s); err != nil {
			panic(err)
		}
	}
}

// Lookup returns the type registered under name.
func (r *Registry) Lookup(name string) (*config.Spec, bool) {
	s, ok := r.specs[name]
	return s, ok
}

// Get is like Lookup but returns an error naming the known types.
func (r *Registry) Get(name string) (*config.Spec, error) {
	s, ok := r.specs[name]
	if !ok {
		return nil, fmt.Errorf("unknown config type '%s' (known: %v)", name, r.order)
	}
	return s, nil
}

// Names returns the registered type names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Len returns the number of registered types.
func (r *Registry) Len() int {
	return len(r.order)
}
