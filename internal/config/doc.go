// Package config loads, normalizes, and validates contactbook configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// XDG_DATA_HOME and CONTACTBOOK_IMPORT_DIR. The Config type centralizes every
// knob the CLI and HTTP view need so storage and import locations are
// discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// expanded paths, canonical log formats, and clear validation errors.
package config
