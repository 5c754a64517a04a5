// Package store persists address book snapshots in SQLite.
//
// The engine only needs "load every record" and "store every record"; this
// package supplies both on top of modernc.org/sqlite, keeping contact order
// and per-field value order intact. Writers across processes are serialized
// with an advisory file lock held for the lifetime of an open Store.
//
// Schema changes bump schemaVersion in schema.go; users move the old database
// aside to adopt a new schema.
package store
