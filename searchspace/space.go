package searchspace

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/specialistvlad/expconf/internal/fieldpath"
)

// Dimension binds a dotted field path to a domain.
type Dimension struct {
	Path   string
	Domain Domain
}

// Dim is shorthand for a Dimension literal.
func Dim(path string, d Domain) Dimension {
	return Dimension{Path: path, Domain: d}
}

// Assignment is one value chosen for one dimension.
type Assignment struct {
	Path  string
	Value any
}

// Point is one value per dimension, in dimension order.
type Point []Assignment

// Map returns the point as a path to value map.
func (p Point) Map() map[string]any {
	m := make(map[string]any, len(p))
	for _, a := range p {
		m[a.Path] = a.Value
	}
	return m
}

func (p Point) String() string {
	parts := make([]string, len(p))
	for i, a := range p {
		parts[i] = fmt.Sprintf("%s=%v", a.Path, a.Value)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Space is an ordered set of dimensions. Insertion order is significant for
// both sampling and expansion.
type Space struct {
	dims  []Dimension
	index map[string]int
}

// New builds a Space from the given dimensions.
func New(dims ...Dimension) (*Space, error) {
	s := &Space{index: make(map[string]int, len(dims))}
	for _, d := range dims {
		if err := s.Add(d.Path, d.Domain); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// MustNew is like New but panics on error.
func MustNew(dims ...Dimension) *Space {
	s, err := New(dims...)
	if err != nil {
		panic(err)
	}
	return s
}

// Add appends a dimension. The path must be a well-formed dotted path not
// already present in the space.
func (s *Space) Add(path string, d Domain) error {
	if _, err := fieldpath.Parse(path); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSearchPath, err)
	}
	if d == nil {
		return fmt.Errorf("%w: dimension '%s' has no domain", ErrInvalidSearchPath, path)
	}
	if _, dup := s.index[path]; dup {
		return fmt.Errorf("%w: duplicate dimension '%s'", ErrInvalidSearchPath, path)
	}
	if s.index == nil {
		s.index = make(map[string]int)
	}
	s.index[path] = len(s.dims)
	s.dims = append(s.dims, Dimension{Path: path, Domain: d})
	return nil
}

// Dimensions returns a copy of the dimensions in insertion order.
func (s *Space) Dimensions() []Dimension {
	return append([]Dimension(nil), s.dims...)
}

// Paths returns the dimension paths in insertion order.
func (s *Space) Paths() []string {
	out := make([]string, len(s.dims))
	for i, d := range s.dims {
		out[i] = d.Path
	}
	return out
}

// Len returns the number of dimensions.
func (s *Space) Len() int {
	return len(s.dims)
}

// Domain returns the domain registered for path.
func (s *Space) Domain(path string) (Domain, bool) {
	i, ok := s.index[path]
	if !ok {
		return nil, false
	}
	return s.dims[i].Domain, true
}

// SampleFunc chooses a value for one dimension.
type SampleFunc func(path string, d Domain) any

// RandomSampler samples each domain with r. A nil r uses the global source.
func RandomSampler(r *rand.Rand) SampleFunc {
	return func(_ string, d Domain) any {
		return d.Sample(r)
	}
}

// Sample draws one point, calling fn once per dimension in order. A nil fn
// samples uniformly from the global source.
func (s *Space) Sample(fn SampleFunc) Point {
	if fn == nil {
		fn = RandomSampler(nil)
	}
	p := make(Point, len(s.dims))
	for i, d := range s.dims {
		p[i] = Assignment{Path: d.Path, Value: fn(d.Path, d.Domain)}
	}
	return p
}

// Expand enumerates every point of the space. Each combination of categorical
// branch choices forms one block, first categorical dimension varying
// slowest. Inside a block the Cartesian product of the dimensions' value sets
// is listed with the first dimension varying slowest. Blocks are concatenated
// in combination order.
func (s *Space) Expand() []Point {
	var out []Point
	s.eachBlock(func(sets [][]any) {
		out = append(out, product(s.dims, sets)...)
	})
	return out
}

// Size returns len(Expand()) without materializing the points. The empty
// space has size 1: its single point assigns nothing.
func (s *Space) Size() int {
	total := 0
	s.eachBlock(func(sets [][]any) {
		n := 1
		for _, set := range sets {
			n *= len(set)
		}
		total += n
	})
	return total
}

// eachBlock calls fn with the per-dimension value sets of every categorical
// branch combination, in odometer order. A space without categorical
// dimensions, the empty space included, has exactly one block.
func (s *Space) eachBlock(fn func(sets [][]any)) {
	var catDims []int
	for i, d := range s.dims {
		if _, ok := d.Domain.(*Categorical); ok {
			catDims = append(catDims, i)
		}
	}

	base := make([][]any, len(s.dims))
	for i, d := range s.dims {
		if _, ok := d.Domain.(*Categorical); !ok {
			base[i] = d.Domain.Expand()
		}
	}

	choice := make([]int, len(catDims))
	for {
		sets := append([][]any(nil), base...)
		for k, di := range catDims {
			sets[di] = s.dims[di].Domain.(*Categorical).branches[choice[k]].Expand()
		}
		fn(sets)

		// Advance the odometer, last categorical fastest.
		k := len(choice) - 1
		for ; k >= 0; k-- {
			choice[k]++
			if choice[k] < len(s.dims[catDims[k]].Domain.(*Categorical).branches) {
				break
			}
			choice[k] = 0
		}
		if k < 0 {
			return
		}
	}
}

func product(dims []Dimension, sets [][]any) []Point {
	n := 1
	for _, set := range sets {
		n *= len(set)
	}
	if n == 0 {
		return nil
	}

	out := make([]Point, 0, n)
	idx := make([]int, len(sets))
	for {
		p := make(Point, len(sets))
		for i, set := range sets {
			p[i] = Assignment{Path: dims[i].Path, Value: set[idx[i]]}
		}
		out = append(out, p)

		i := len(idx) - 1
		for ; i >= 0; i-- {
			idx[i]++
			if idx[i] < len(sets[i]) {
				break
			}
			idx[i] = 0
		}
		if i < 0 {
			return out
		}
	}
}
