// Package testutil holds helpers shared by tests across packages: fixture
// files written to temporary directories, indented source literals and a
// concurrency-safe log buffer.
package testutil
