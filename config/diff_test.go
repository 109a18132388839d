package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiff(t *testing.T) {
	fx := newFixture(t)
	left := fx.master.MustNew(nil)
	right := fx.master.MustNew(map[string]any{"d": 0.25, "seed": 5, "inner": map[string]any{"b": 4}})

	assert.Equal(t, []string{
		"inner.b:(int)3->(int)4",
		"d:(float)0.5->(float)0.25",
		"seed:(int)1->(int)5",
	}, left.DiffStrings(right, false))

	assert.Equal(t, []string{
		"inner.b:(int)3->(int)4",
		"d:(float)0.5->(float)0.25",
	}, left.DiffStrings(right, true))

	assert.Empty(t, left.Diff(left.Clone(), false))
}

func TestDiff_TypeMismatchAndMissing(t *testing.T) {
	a := MustDefine("A", Field("a10", Int, Default(2)), Field("only_left", Bool, Default(true)))
	b := MustDefine("B", Field("a10", String, Default("10")), Field("only_right", Float, Default(1.5)))

	diffs := a.MustNew(nil).Diff(b.MustNew(nil), false)
	assert.Equal(t, []Difference{
		{Path: "a10", Left: Side{Type: "int", Value: 2}, Right: Side{Type: "string", Value: "10"}},
		{Path: "only_left", Left: Side{Type: "bool", Value: true}, Right: Side{Missing: true}},
		{Path: "only_right", Left: Side{Missing: true}, Right: Side{Type: "float", Value: 1.5}},
	}, diffs)

	assert.Equal(t, []string{
		"a10:(int)2->(string)10",
		"only_left:(bool)true->(missing)",
		"only_right:(missing)->(float)1.5",
	}, a.MustNew(nil).DiffStrings(b.MustNew(nil), false))
}

func TestDiff_SameValueDifferentNumericType(t *testing.T) {
	a := MustDefine("A", Field("v", Any, Default(1)))
	b := MustDefine("A", Field("v", Any, Default(1.0)))
	assert.Equal(t, []string{"v:(int)1->(float)1"}, a.MustNew(nil).DiffStrings(b.MustNew(nil), false))
}
