package searchspace

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// Categorical is an ordered list of alternative branches. Branch order is
// part of the contract: it fixes both expansion order and the partition used
// by sampling.
type Categorical struct {
	branches []Domain
}

// NewCategorical builds a Categorical from at least one branch.
func NewCategorical(branches ...Domain) (*Categorical, error) {
	if len(branches) == 0 {
		return nil, fmt.Errorf("%w: categorical distribution needs at least one branch", ErrInvalidDistribution)
	}
	for i, b := range branches {
		if b == nil {
			return nil, fmt.Errorf("%w: categorical branch %d is nil", ErrInvalidDistribution, i)
		}
	}
	return &Categorical{branches: append([]Domain(nil), branches...)}, nil
}

// MustCategorical is like NewCategorical but panics on error.
func MustCategorical(branches ...Domain) *Categorical {
	c, err := NewCategorical(branches...)
	if err != nil {
		panic(err)
	}
	return c
}

// Choices builds a Categorical whose branches are the given constants.
func Choices(values ...any) (*Categorical, error) {
	branches := make([]Domain, len(values))
	for i, v := range values {
		branches[i] = Value(v)
	}
	return NewCategorical(branches...)
}

// Branches returns a copy of the branch list.
func (c *Categorical) Branches() []Domain {
	return append([]Domain(nil), c.branches...)
}

// Expand concatenates the branch expansions in branch order.
func (c *Categorical) Expand() []any {
	var out []any
	for _, b := range c.branches {
		out = append(out, b.Expand()...)
	}
	return out
}

// Sample picks a branch uniformly, then samples that branch.
func (c *Categorical) Sample(r *rand.Rand) any {
	return c.branches[intN(r, len(c.branches))].Sample(r)
}

// Contains reports whether any branch contains v.
func (c *Categorical) Contains(v any) bool {
	for _, b := range c.branches {
		if b.Contains(v) {
			return true
		}
	}
	return false
}

func (c *Categorical) String() string {
	parts := make([]string, len(c.branches))
	for i, b := range c.branches {
		parts[i] = fmt.Sprint(b)
	}
	return "Categorical(" + strings.Join(parts, ", ") + ")"
}
