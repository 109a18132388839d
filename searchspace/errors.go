package searchspace

import "errors"

var (
	// ErrInvalidDistribution reports malformed bounds, bin counts or an empty
	// branch list.
	ErrInvalidDistribution = errors.New("invalid distribution")

	// ErrInvalidSearchPath reports a dimension path that is malformed,
	// duplicated, or does not resolve on a configuration type.
	ErrInvalidSearchPath = errors.New("invalid search path")
)
