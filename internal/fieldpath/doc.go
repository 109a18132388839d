/*
Package fieldpath provides a structured representation for dotted field paths
such as `model.optimizer.lr`, used to address a leaf field inside a tree of
nested configuration instances.

The format is a dot-separated sequence of identifiers. This package
centralizes all formatting and parsing of such paths.
*/
package fieldpath
