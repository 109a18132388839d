package fieldpath

import (
	"fmt"
	"regexp"
	"strings"
)

// segmentRegex matches a single identifier segment, e.g. `lr` or `n_layers`.
var segmentRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Path is the structured form of a dotted field path.
type Path []string

// Parse creates a Path by parsing its canonical dotted representation.
func Parse(raw string) (Path, error) {
	if raw == "" {
		return nil, fmt.Errorf("field path cannot be empty")
	}
	segments := strings.Split(raw, ".")
	for _, segment := range segments {
		if segment == "" {
			return nil, fmt.Errorf("field path %q contains empty segment", raw)
		}
		if !segmentRegex.MatchString(segment) {
			return nil, fmt.Errorf("invalid field path segment %q in %q", segment, raw)
		}
	}
	return Path(segments), nil
}

// MustParse is like Parse but panics on error.
func MustParse(raw string) Path {
	p, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return p
}

// String serializes the Path into its canonical dotted representation.
func (p Path) String() string {
	return strings.Join(p, ".")
}

// Parent returns the path without its final segment, or nil for a
// single-segment path.
func (p Path) Parent() Path {
	if len(p) <= 1 {
		return nil
	}
	return p[:len(p)-1]
}

// Leaf returns the final segment of the path.
func (p Path) Leaf() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// Join appends a segment to a dotted prefix. An empty prefix yields the
// segment unchanged.
func Join(prefix, segment string) string {
	if prefix == "" {
		return segment
	}
	return prefix + "." + segment
}
