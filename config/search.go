package config

import (
	"fmt"

	"github.com/specialistvlad/expconf/internal/fieldpath"
	"github.com/specialistvlad/expconf/searchspace"
)

// ResolvePath returns the descriptor a dotted path points at. Every segment
// but the last must name a nested configuration field.
func (s *Spec) ResolvePath(path string) (FieldDef, error) {
	p, err := fieldpath.Parse(path)
	if err != nil {
		return FieldDef{}, fmt.Errorf("%w: %v", ErrInvalidSearchPath, err)
	}
	cur := s
	for i, seg := range p {
		f, ok := cur.Field(seg)
		if !ok {
			return FieldDef{}, fmt.Errorf("%w: '%s' has no field '%s'", ErrInvalidSearchPath, cur.name, seg)
		}
		if i == len(p)-1 {
			return f, nil
		}
		nested, ok := unwrapOptional(f.Type).(*Spec)
		if !ok {
			return FieldDef{}, fmt.Errorf("%w: '%s' in '%s' is not a nested config", ErrInvalidSearchPath, p[:i+1], path)
		}
		cur = nested
	}
	return FieldDef{}, fmt.Errorf("%w: empty path", ErrInvalidSearchPath)
}

// ValidateSpace checks that every dimension of space resolves to a field.
func (s *Spec) ValidateSpace(space *searchspace.Space) error {
	for _, d := range space.Dimensions() {
		if _, err := s.ResolvePath(d.Path); err != nil {
			return err
		}
	}
	return nil
}

// Apply returns an unfrozen copy of c with every assignment of p written
// through SetPath. c is not modified.
func (c *Config) Apply(p searchspace.Point) (*Config, error) {
	out := c.Clone()
	for _, a := range p {
		if err := out.SetPath(a.Path, a.Value); err != nil {
			return nil, fmt.Errorf("applying %s: %w", a.Path, err)
		}
	}
	return out, nil
}

// Sample draws one point from space with fn and applies it to a copy of c.
// A nil fn samples uniformly.
func (c *Config) Sample(space *searchspace.Space, fn searchspace.SampleFunc) (*Config, error) {
	if err := c.spec.ValidateSpace(space); err != nil {
		return nil, err
	}
	return c.Apply(space.Sample(fn))
}

// Expand applies every point of space's canonical enumeration to copies of
// c, in enumeration order.
func (c *Config) Expand(space *searchspace.Space) ([]*Config, error) {
	if err := c.spec.ValidateSpace(space); err != nil {
		return nil, err
	}
	points := space.Expand()
	out := make([]*Config, 0, len(points))
	for _, p := range points {
		derived, err := c.Apply(p)
		if err != nil {
			return nil, err
		}
		out = append(out, derived)
	}
	return out, nil
}
