// Package main hosts the contactbook CLI entrypoint and command graph.
//
// Every command that touches contacts opens the address book through
// internal/book, which holds the store lock for the duration of the command
// and persists the snapshot after mutations. Output meant for scripts goes to
// stdout (optionally as JSON); logs go to stderr.
package main
