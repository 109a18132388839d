package config

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/expconf/searchspace"
)

// nestedSearchFixture declares A(d float = 0) and Master(a A, d float = 0,
// n int = 1) with the space a.d in Distribution(0, 1, 4) and d in
// Categorical[Distribution(0, 0.1, 4), Distribution(0.9, 1, 4)].
func nestedSearchFixture(t *testing.T) (*Config, *searchspace.Space) {
	t.Helper()
	a := MustDefine("A", Field("d", Float, Default(0)))
	master := MustDefine("Master",
		Field("a", a),
		Field("d", Float, Default(0)),
		Field("n", Int, Default(1)),
	)
	space, err := searchspace.New(
		searchspace.Dim("a.d", searchspace.MustDistribution(0, 1, 4)),
		searchspace.Dim("d", searchspace.MustCategorical(
			searchspace.MustDistribution(0, 0.1, 4),
			searchspace.MustDistribution(0.9, 1, 4),
		)),
	)
	require.NoError(t, err)
	return master.MustNew(nil), space
}

func TestExpand_NestedCategorical(t *testing.T) {
	base, space := nestedSearchFixture(t)
	before := base.ToTree()

	configs, err := base.Expand(space)
	require.NoError(t, err)
	require.Len(t, configs, 50)

	first := configs[0]
	ad, err := first.GetFloat("a.d")
	require.NoError(t, err)
	d, err := first.GetFloat("d")
	require.NoError(t, err)
	assert.Equal(t, 0.0, ad)
	assert.Equal(t, 0.0, d)

	twentySixth := configs[25]
	ad, err = twentySixth.GetFloat("a.d")
	require.NoError(t, err)
	d, err = twentySixth.GetFloat("d")
	require.NoError(t, err)
	assert.Equal(t, 0.0, ad)
	assert.Equal(t, 0.9, d)

	uids := make(map[string]bool, len(configs))
	for _, c := range configs {
		assert.False(t, c.Frozen())
		uids[c.UID()] = true
	}
	assert.Len(t, uids, 50)
	assert.Equal(t, before, base.ToTree(), "expansion does not mutate the base instance")
}

func TestExpand_EmptySpaceYieldsOneCopy(t *testing.T) {
	base, _ := nestedSearchFixture(t)
	base.Freeze()

	configs, err := base.Expand(searchspace.MustNew())
	require.NoError(t, err)
	require.Len(t, configs, 1)
	assert.True(t, base.Equal(configs[0]))
	assert.False(t, configs[0].Frozen())
	assert.NotSame(t, base, configs[0])
}

func TestExpand_CoercesToFieldType(t *testing.T) {
	base, _ := nestedSearchFixture(t)
	space := searchspace.MustNew(searchspace.Dim("n", searchspace.MustDistribution(1, 2, 2)))

	configs, err := base.Expand(space)
	require.NoError(t, err)

	var got []int
	for _, c := range configs {
		n, err := c.GetInt("n")
		require.NoError(t, err)
		got = append(got, n)
	}
	assert.Equal(t, []int{1, 1, 2}, got)
}

func TestExpand_InvalidPaths(t *testing.T) {
	base, _ := nestedSearchFixture(t)

	testCases := []struct {
		name string
		path string
	}{
		{name: "unknown leaf", path: "a.zz"},
		{name: "unknown root", path: "zz"},
		{name: "through a scalar", path: "d.x"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			space := searchspace.MustNew(searchspace.Dim(tc.path, searchspace.Value(1)))
			_, err := base.Expand(space)
			require.ErrorIs(t, err, ErrInvalidSearchPath)

			_, err = base.Sample(space, nil)
			require.ErrorIs(t, err, ErrInvalidSearchPath)
		})
	}
}

func TestExpand_UncoercibleValue(t *testing.T) {
	base, _ := nestedSearchFixture(t)
	space := searchspace.MustNew(searchspace.Dim("d", searchspace.Value("high")))
	_, err := base.Expand(space)
	require.ErrorIs(t, err, ErrTypeCoercion)
}

func TestSample(t *testing.T) {
	base, space := nestedSearchFixture(t)

	t.Run("seeded", func(t *testing.T) {
		a, err := base.Sample(space, searchspace.RandomSampler(rand.New(rand.NewPCG(1, 1))))
		require.NoError(t, err)
		b, err := base.Sample(space, searchspace.RandomSampler(rand.New(rand.NewPCG(1, 1))))
		require.NoError(t, err)
		assert.True(t, a.Equal(b))
	})

	t.Run("values come from the space", func(t *testing.T) {
		fn := searchspace.RandomSampler(rand.New(rand.NewPCG(5, 6)))
		for range 20 {
			c, err := base.Sample(space, fn)
			require.NoError(t, err)
			for _, dim := range space.Dimensions() {
				v, err := c.Lookup(dim.Path)
				require.NoError(t, err)
				assert.True(t, dim.Domain.Contains(v), "%s=%v", dim.Path, v)
			}
		}
	})

	t.Run("custom sampler", func(t *testing.T) {
		c, err := base.Sample(space, func(path string, d searchspace.Domain) any {
			vals := d.Expand()
			return vals[len(vals)-1]
		})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"a": map[string]any{"d": 1.0}, "d": 1.0, "n": 1}, c.ToTree())
	})

	t.Run("frozen base", func(t *testing.T) {
		frozen := base.Clone().Freeze()
		c, err := frozen.Sample(space, nil)
		require.NoError(t, err)
		assert.False(t, c.Frozen())
		assert.True(t, frozen.Frozen())
	})
}
