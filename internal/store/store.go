package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"contactbook/internal/config"
	"contactbook/internal/contact"
)

// ErrLocked indicates another process holds the address book.
var ErrLocked = errors.New("address book is locked by another process")

const lockRetryDelay = 100 * time.Millisecond

// Store manages address book persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

// Open locks and opens the address book database described by cfg, creating
// the data directory and schema as needed. It waits up to the configured
// lock timeout for a concurrent writer to finish.
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	if cfg == nil {
		return nil, errors.New("configuration is required")
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	return OpenPath(ctx, cfg.DatabasePath(), cfg.LockTimeout())
}

// OpenPath opens the database at dbPath directly.
func OpenPath(ctx context.Context, dbPath string, lockTimeout time.Duration) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	lock := flock.New(dbPath + ".lock")
	lockCtx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()
	locked, err := lock.TryLockContext(lockCtx, lockRetryDelay)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: %s", ErrLocked, lock.Path())
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath, lock: lock}
	if err := store.initSchema(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database and releases the lock.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var errs []error
	if s.db != nil {
		errs = append(errs, s.db.Close())
	}
	if s.lock != nil {
		errs = append(errs, s.lock.Unlock())
	}
	return errors.Join(errs...)
}

// Load returns every stored record in directory order.
func (s *Store) Load(ctx context.Context) ([]*contact.Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM contacts ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	var records []*contact.Record
	byID := make(map[string]*contact.Record)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		r := &contact.Record{ID: id}
		records = append(records, r)
		byID[id] = r
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("iterate contacts: %w", err)
	}
	_ = rows.Close()

	values, err := s.db.QueryContext(ctx,
		`SELECT contact_id, field, value FROM contact_values ORDER BY contact_id, field, ordinal`)
	if err != nil {
		return nil, fmt.Errorf("list contact values: %w", err)
	}
	defer values.Close()
	for values.Next() {
		var id, fieldName, value string
		if err := values.Scan(&id, &fieldName, &value); err != nil {
			return nil, fmt.Errorf("scan contact value: %w", err)
		}
		r, ok := byID[id]
		if !ok {
			continue
		}
		f, err := contact.ParseField(fieldName)
		if err != nil {
			return nil, fmt.Errorf("load contact %s: %w", id, err)
		}
		r.Set(f, append(r.Values(f), value))
	}
	if err := values.Err(); err != nil {
		return nil, fmt.Errorf("iterate contact values: %w", err)
	}
	return records, nil
}

// Store consolidates records and replaces the stored snapshot with them in a
// single transaction. Records without an ID are rejected.
func (s *Store) Store(ctx context.Context, records []*contact.Record) error {
	createdAt, err := s.createdTimes(ctx)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin store tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM contacts`); err != nil {
		return fmt.Errorf("clear contacts: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	for position, r := range records {
		if r == nil {
			continue
		}
		if r.ID == "" {
			return fmt.Errorf("store contact at position %d: missing id", position)
		}
		r.Consolidate()

		created := createdAt[r.ID]
		if created == "" {
			created = now
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO contacts (id, position, created_at, updated_at) VALUES (?, ?, ?, ?)`,
			r.ID, position, created, now,
		); err != nil {
			return fmt.Errorf("insert contact %s: %w", r.ID, err)
		}
		for _, f := range r.FilledFields() {
			for ordinal, value := range r.Values(f) {
				if _, err := tx.ExecContext(ctx,
					`INSERT INTO contact_values (contact_id, field, ordinal, value) VALUES (?, ?, ?, ?)`,
					r.ID, f.String(), ordinal, value,
				); err != nil {
					return fmt.Errorf("insert %s value for %s: %w", f, r.ID, err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit store: %w", err)
	}
	return nil
}

// Clear deletes every stored record.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM contacts`); err != nil {
		return fmt.Errorf("clear contacts: %w", err)
	}
	return nil
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM contacts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count contacts: %w", err)
	}
	return n, nil
}

// Checkpoint flushes the WAL into the main database file so the file can be
// copied on its own.
func (s *Store) Checkpoint(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `PRAGMA wal_checkpoint(TRUNCATE)`); err != nil {
		return fmt.Errorf("checkpoint wal: %w", err)
	}
	return nil
}

func (s *Store) createdTimes(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, created_at FROM contacts`)
	if err != nil {
		return nil, fmt.Errorf("read created times: %w", err)
	}
	defer rows.Close()
	out := make(map[string]string)
	for rows.Next() {
		var id, created string
		if err := rows.Scan(&id, &created); err != nil {
			return nil, fmt.Errorf("scan created time: %w", err)
		}
		out[id] = created
	}
	return out, rows.Err()
}
