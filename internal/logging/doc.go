// Package logging assembles structured slog loggers and formatting helpers used
// across contactbook.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes typed attribute helpers so every component tags log
// lines with the same keys (component, contact_id, event_type). A no-op logger
// is provided for tests and for library code whose caller did not supply one.
//
// Prefer these constructors over hand-rolled slog setup so new components emit
// data with the same shape as the rest of the tool.
package logging
