package testsupport

import (
	"context"
	"testing"

	"contactbook/internal/config"
	"contactbook/internal/contact"
	"contactbook/internal/store"
)

// MustOpenStore opens a store.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

// MustRecord builds a record from field/value pairs and fails the test on
// an unknown field.
func MustRecord(t testing.TB, values map[string]any) *contact.Record {
	t.Helper()

	r, err := contact.FromMap(values)
	if err != nil {
		t.Fatalf("contact.FromMap: %v", err)
	}
	return r
}

// Seed stores records through a short-lived store so later opens see them.
func Seed(t testing.TB, cfg *config.Config, records ...*contact.Record) {
	t.Helper()

	st, err := store.Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	defer st.Close()
	if err := st.Store(context.Background(), records); err != nil {
		t.Fatalf("store.Store: %v", err)
	}
}
