package fieldpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name         string
		raw          string
		expectErr    bool
		expectedPath Path
	}{
		{name: "single segment", raw: "lr", expectedPath: Path{"lr"}},
		{name: "nested path", raw: "a.b.c", expectedPath: Path{"a", "b", "c"}},
		{name: "underscores and digits", raw: "model_1.n_layers", expectedPath: Path{"model_1", "n_layers"}},
		{name: "error - empty string", raw: "", expectErr: true},
		{name: "error - empty segment", raw: "a..b", expectErr: true},
		{name: "error - trailing dot", raw: "a.", expectErr: true},
		{name: "error - leading digit", raw: "a.1b", expectErr: true},
		{name: "error - hyphen", raw: "a.b-c", expectErr: true},
		{name: "error - index syntax", raw: "a.b[0]", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := Parse(tc.raw)
			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectedPath, p)
			assert.Equal(t, tc.raw, p.String())
		})
	}
}

func TestPath_ParentLeaf(t *testing.T) {
	p := MustParse("a.b.c")
	assert.Equal(t, Path{"a", "b"}, p.Parent())
	assert.Equal(t, "c", p.Leaf())

	single := MustParse("a")
	assert.Nil(t, single.Parent())
	assert.Equal(t, "a", single.Leaf())
	assert.Equal(t, "", Path(nil).Leaf())
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "a", Join("", "a"))
	assert.Equal(t, "a.b", Join("a", "b"))
}

func TestMustParse_Panics(t *testing.T) {
	assert.Panics(t, func() { MustParse("a..b") })
}
