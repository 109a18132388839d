// Package searchspace describes hyperparameter search spaces: ordered
// mappings from dotted field paths to value domains.
//
// Three domain kinds exist:
//
//   - Distribution: a bounded numeric range split into n_bins intervals,
//     yielding n_bins+1 candidate values (linear or log spaced, float or int).
//
//   - Categorical: an ordered list of branches, each itself a domain.
//     Sampling picks a branch uniformly and samples it; expansion
//     concatenates branch expansions in declaration order.
//
//   - Const (built with Value): a single fixed value, typically used as a
//     categorical branch such as an optimizer name.
//
// A Space either samples one point (one value per dimension) or expands into
// the exhaustive, deterministic list of points. Expansion enumerates every
// combination of categorical branches (first declared categorical dimension
// slowest) and, within each combination, the Cartesian product of the
// dimensions' value sets in declaration order (first dimension slowest).
//
// Applying points to configuration instances is done by the config package.
package searchspace
