// Package registry stores configuration types by name.
//
// Schema files refer to earlier declared types by name, and the CLI selects
// the type to instantiate by name, so both go through a Registry. Types are
// kept in registration order.
package registry
