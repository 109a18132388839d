package searchspace

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCategorical_Empty(t *testing.T) {
	_, err := NewCategorical()
	require.ErrorIs(t, err, ErrInvalidDistribution)

	_, err = NewCategorical(Value(1), nil)
	require.ErrorIs(t, err, ErrInvalidDistribution)
}

func TestCategorical_ExpandConcatenatesInOrder(t *testing.T) {
	c := MustCategorical(
		MustDistribution(0, 1, 2),
		Value("x"),
		MustCategorical(Value(7), Value(8)),
	)
	assert.Equal(t, []any{0.0, 0.5, 1.0, "x", 7, 8}, c.Expand())
	assert.Len(t, c.Branches(), 3)
}

func TestChoices(t *testing.T) {
	c, err := Choices("adam", "sgd")
	require.NoError(t, err)
	assert.Equal(t, []any{"adam", "sgd"}, c.Expand())
	assert.True(t, c.Contains("sgd"))
	assert.False(t, c.Contains("rmsprop"))
}

func TestCategorical_SampleHitsEveryBranch(t *testing.T) {
	c := MustCategorical(
		MustDistribution(0, 0.1, 4),
		MustDistribution(0.9, 1, 4),
	)
	r := rand.New(rand.NewPCG(7, 7))

	var low, high int
	for range 200 {
		v := c.Sample(r).(float64)
		require.True(t, c.Contains(v))
		if v <= 0.1 {
			low++
		} else {
			high++
		}
	}
	assert.Positive(t, low)
	assert.Positive(t, high)
}

func TestCategorical_String(t *testing.T) {
	c := MustCategorical(Value("a"), MustDistribution(0, 1, 1))
	assert.Equal(t, "Categorical(Value(a), Distribution(low=0, high=1, n_bins=1))", c.String())
}
