package searchspace

import (
	"fmt"
	"math/rand/v2"
	"reflect"
)

// Domain is the set of values a search dimension can take.
type Domain interface {
	// Expand returns every candidate value in canonical order.
	Expand() []any
	// Sample draws one value. A nil r uses the global random source.
	Sample(r *rand.Rand) any
	// Contains reports whether v lies inside the domain.
	Contains(v any) bool
}

// Const is a domain holding a single fixed value.
type Const struct {
	V any
}

// Value returns a Const domain for v.
func Value(v any) Const {
	return Const{V: v}
}

func (c Const) Expand() []any {
	return []any{c.V}
}

func (c Const) Sample(*rand.Rand) any {
	return c.V
}

func (c Const) Contains(v any) bool {
	return reflect.DeepEqual(c.V, v)
}

func (c Const) String() string {
	return fmt.Sprintf("Value(%v)", c.V)
}

// intN returns a uniform index in [0, n).
func intN(r *rand.Rand, n int) int {
	if r == nil {
		return rand.IntN(n)
	}
	return r.IntN(n)
}
