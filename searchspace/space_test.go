package searchspace

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nestedExampleSpace(t *testing.T) *Space {
	t.Helper()
	s, err := New(
		Dim("a.d", MustDistribution(0, 1, 4)),
		Dim("d", MustCategorical(
			MustDistribution(0, 0.1, 4),
			MustDistribution(0.9, 1, 4),
		)),
	)
	require.NoError(t, err)
	return s
}

func TestNew_RejectsBadPaths(t *testing.T) {
	testCases := []struct {
		name string
		dims []Dimension
	}{
		{name: "empty path", dims: []Dimension{Dim("", Value(1))}},
		{name: "empty segment", dims: []Dimension{Dim("a..b", Value(1))}},
		{name: "bad identifier", dims: []Dimension{Dim("a.1b", Value(1))}},
		{name: "nil domain", dims: []Dimension{Dim("a", nil)}},
		{name: "duplicate", dims: []Dimension{Dim("a", Value(1)), Dim("a", Value(2))}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.dims...)
			require.ErrorIs(t, err, ErrInvalidSearchPath)
		})
	}
}

func TestSpace_Accessors(t *testing.T) {
	s := nestedExampleSpace(t)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"a.d", "d"}, s.Paths())

	d, ok := s.Domain("d")
	require.True(t, ok)
	assert.IsType(t, &Categorical{}, d)

	_, ok = s.Domain("missing")
	assert.False(t, ok)

	var empty Space
	require.NoError(t, empty.Add("x", Value(1)))
	assert.Equal(t, 1, empty.Len())
}

func TestSpace_ExpandNestedCategorical(t *testing.T) {
	s := nestedExampleSpace(t)
	points := s.Expand()

	require.Len(t, points, 50)
	assert.Equal(t, 50, s.Size())

	assert.Equal(t, Point{{Path: "a.d", Value: 0.0}, {Path: "d", Value: 0.0}}, points[0])
	assert.Equal(t, Point{{Path: "a.d", Value: 0.0}, {Path: "d", Value: 0.9}}, points[25])

	// Within the first block the second dimension varies fastest.
	assert.Equal(t, 0.0, points[1].Map()["a.d"])
	assert.InDelta(t, 0.025, points[1].Map()["d"], 1e-12)
	assert.Equal(t, 0.25, points[5].Map()["a.d"])
	assert.Equal(t, 1.0, points[24].Map()["a.d"])
	assert.Equal(t, 0.1, points[24].Map()["d"])
	assert.Equal(t, Point{{Path: "a.d", Value: 1.0}, {Path: "d", Value: 1.0}}, points[49])
}

func TestSpace_ExpandCategoricalCombinationOrder(t *testing.T) {
	s := MustNew(
		Dim("opt", MustCategorical(Value("adam"), Value("sgd"))),
		Dim("lr", MustDistribution(1, 2, 1)),
		Dim("act", MustCategorical(Value("relu"), Value("tanh"))),
	)

	var got []string
	for _, p := range s.Expand() {
		got = append(got, p.String())
	}
	assert.Equal(t, []string{
		"{opt=adam, lr=1, act=relu}",
		"{opt=adam, lr=2, act=relu}",
		"{opt=adam, lr=1, act=tanh}",
		"{opt=adam, lr=2, act=tanh}",
		"{opt=sgd, lr=1, act=relu}",
		"{opt=sgd, lr=2, act=relu}",
		"{opt=sgd, lr=1, act=tanh}",
		"{opt=sgd, lr=2, act=tanh}",
	}, got)
	assert.Equal(t, 8, s.Size())
}

func TestSpace_ExpandWithoutCategoricals(t *testing.T) {
	s := MustNew(
		Dim("a", MustDistribution(0, 1, 1)),
		Dim("b", Value("x")),
	)
	points := s.Expand()
	require.Len(t, points, 2)
	assert.Equal(t, map[string]any{"a": 0.0, "b": "x"}, points[0].Map())
	assert.Equal(t, map[string]any{"a": 1.0, "b": "x"}, points[1].Map())
}

func TestSpace_ExpandEmpty(t *testing.T) {
	s := MustNew()
	points := s.Expand()
	require.Len(t, points, 1)
	assert.Empty(t, points[0])
	assert.Equal(t, 1, s.Size())

	var zero Space
	assert.Len(t, zero.Expand(), 1)
}

func TestSpace_ExpandIsDeterministic(t *testing.T) {
	s := nestedExampleSpace(t)
	assert.Equal(t, s.Expand(), s.Expand())
}

func TestSpace_Sample(t *testing.T) {
	s := nestedExampleSpace(t)

	t.Run("custom sampler sees every dimension in order", func(t *testing.T) {
		var seen []string
		p := s.Sample(func(path string, d Domain) any {
			seen = append(seen, path)
			return d.Expand()[0]
		})
		assert.Equal(t, []string{"a.d", "d"}, seen)
		assert.Equal(t, Point{{Path: "a.d", Value: 0.0}, {Path: "d", Value: 0.0}}, p)
	})

	t.Run("random sampler stays in domain", func(t *testing.T) {
		fn := RandomSampler(rand.New(rand.NewPCG(3, 4)))
		for range 50 {
			p := s.Sample(fn)
			require.Len(t, p, 2)
			for i, a := range p {
				assert.True(t, s.dims[i].Domain.Contains(a.Value), "%s=%v", a.Path, a.Value)
			}
		}
	})

	t.Run("seeded sampling is reproducible", func(t *testing.T) {
		a := s.Sample(RandomSampler(rand.New(rand.NewPCG(9, 9))))
		b := s.Sample(RandomSampler(rand.New(rand.NewPCG(9, 9))))
		assert.Equal(t, a, b)
	})

	t.Run("nil sampler", func(t *testing.T) {
		assert.Len(t, s.Sample(nil), 2)
	})
}
