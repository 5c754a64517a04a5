// Package book ties the contact directory to its persistent store.
//
// A Book opens the store (taking the writer lock), loads the saved snapshot
// into a directory.Directory and writes the snapshot back after each
// mutating operation. CLI commands and the HTTP view go through a Book
// rather than touching the store directly.
package book
