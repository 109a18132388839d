package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type optimizer struct {
	Name string  `cty:"name"`
	LR   float64 `cty:"lr"`
}

type fixture struct {
	inner  *Spec
	master *Spec
}

// newFixture declares:
//
//	Inner(a int = 3, b int = 3)
//	Master(inner Inner, d float = 0.5, seed int = 1 stateless,
//	       opt enum = "adam", tags list(string) = [], note optional(string),
//	       run_dir string derived)
func newFixture(t *testing.T) fixture {
	t.Helper()
	inner, err := Define("Inner",
		Field("a", Int, Default(3)),
		Field("b", Int, Default(3)),
	)
	require.NoError(t, err)

	master, err := Define("Master",
		Field("inner", inner),
		Field("d", Float, Default(0.5)),
		Field("seed", Int, Default(1), Stateless()),
		Field("opt", Enum("adam", "sgd"), Default("adam")),
		Field("tags", List(String), Default([]any{})),
		Field("note", Optional(String)),
		Field("run_dir", String, Derived()),
	)
	require.NoError(t, err)
	return fixture{inner: inner, master: master}
}
