package config

import (
	"fmt"
	"reflect"

	"github.com/google/go-cmp/cmp"
)

// Side is one side of a Difference.
type Side struct {
	Type    string
	Value   any
	Missing bool
}

func (s Side) String() string {
	if s.Missing {
		return "(missing)"
	}
	return fmt.Sprintf("(%s)%v", s.Type, s.Value)
}

// Difference is a flattened path whose values differ between two instances.
type Difference struct {
	Path  string
	Left  Side
	Right Side
}

func (d Difference) String() string {
	return fmt.Sprintf("%s:%s->%s", d.Path, d.Left, d.Right)
}

// Diff compares the flattened values of c and other. Paths present on one
// side only and values of different types are differences. With
// ignoreStateless, Stateless fields at any depth are skipped. Differences are
// listed in the order of c's fields, followed by paths only other has.
func (c *Config) Diff(other *Config, ignoreStateless bool) []Difference {
	left := c.leaves("", false, nil)
	right := other.leaves("", false, nil)

	rightByPath := make(map[string]leaf, len(right))
	for _, l := range right {
		rightByPath[l.path] = l
	}
	seen := make(map[string]bool, len(left))

	var diffs []Difference
	for _, l := range left {
		seen[l.path] = true
		r, ok := rightByPath[l.path]
		if ignoreStateless && (l.stateless || (ok && r.stateless)) {
			continue
		}
		if !ok {
			diffs = append(diffs, Difference{Path: l.path, Left: sideOf(l.value), Right: Side{Missing: true}})
			continue
		}
		ls, rs := sideOf(l.value), sideOf(r.value)
		if ls.Type != rs.Type || !cmp.Equal(l.value, r.value) {
			diffs = append(diffs, Difference{Path: l.path, Left: ls, Right: rs})
		}
	}
	for _, r := range right {
		if seen[r.path] || (ignoreStateless && r.stateless) {
			continue
		}
		diffs = append(diffs, Difference{Path: r.path, Left: Side{Missing: true}, Right: sideOf(r.value)})
	}
	return diffs
}

// DiffStrings renders Diff as lines such as "lr:(float)0.1->(float)0.2".
func (c *Config) DiffStrings(other *Config, ignoreStateless bool) []string {
	diffs := c.Diff(other, ignoreStateless)
	out := make([]string, len(diffs))
	for i, d := range diffs {
		out[i] = d.String()
	}
	return out
}

func sideOf(v any) Side {
	return Side{Type: valueTypeName(v), Value: v}
}

func valueTypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case int:
		return "int"
	case float64:
		return "float"
	case string:
		return "string"
	case bool:
		return "bool"
	case []any:
		return "list"
	case map[string]any:
		return "dict"
	}
	return reflect.TypeOf(v).String()
}
