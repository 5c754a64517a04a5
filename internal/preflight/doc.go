// Package preflight provides readiness checks for the paths, store and
// listener that contactbook depends on.
//
// The CLI "contactbook status" command runs RunAll and renders one line per
// result. Checks never modify state: the store check opens the database only
// when it already exists and releases it immediately.
package preflight
