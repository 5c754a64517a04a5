package book

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"contactbook/internal/config"
	"contactbook/internal/contact"
	"contactbook/internal/directory"
	"contactbook/internal/fileutil"
	"contactbook/internal/logging"
	"contactbook/internal/store"
	"contactbook/internal/vcard"
)

var (
	// ErrNotFound indicates no contact matched a lookup.
	ErrNotFound = errors.New("contact not found")
	// ErrAmbiguous indicates an ID prefix matched more than one contact.
	ErrAmbiguous = errors.New("contact reference is ambiguous")
)

// Book is an opened, locked address book.
type Book struct {
	cfg    *config.Config
	store  *store.Store
	dir    *directory.Directory
	logger *slog.Logger
	order  []contact.Field
	now    func() time.Time
}

// Open locks the store described by cfg and loads its snapshot.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Book, error) {
	if cfg == nil {
		return nil, errors.New("configuration is required")
	}
	st, err := store.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	records, err := st.Load(ctx)
	if err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("load contacts: %w", err)
	}

	b := &Book{
		cfg:    cfg,
		store:  st,
		dir:    directory.Load(records, logger),
		logger: logging.NewComponentLogger(logger, "book"),
		order:  ShortNameOrder(cfg),
		now:    time.Now,
	}
	b.logger.Debug("address book opened",
		logging.String("path", st.Path()),
		logging.Int("contacts", b.dir.Len()),
	)
	return b, nil
}

// ShortNameOrder returns the field priority selected by display.short_name_order.
func ShortNameOrder(cfg *config.Config) []contact.Field {
	if cfg != nil && cfg.Display.ShortNameOrder == config.ShortNameOrderAlphabetical {
		return contact.AlphabeticalOrder()
	}
	return contact.Fields()
}

// Directory returns the loaded directory. Changes reach disk on Save.
func (b *Book) Directory() *directory.Directory {
	return b.dir
}

// ShortName renders r using the configured field priority.
func (b *Book) ShortName(r *contact.Record) string {
	return contact.ShortNameOrdered(r, b.order)
}

// Save writes the directory snapshot to the store.
func (b *Book) Save(ctx context.Context) error {
	if err := b.store.Store(ctx, b.dir.Contacts()); err != nil {
		return fmt.Errorf("save contacts: %w", err)
	}
	return nil
}

// Close releases the store and its lock.
func (b *Book) Close() error {
	if b == nil {
		return nil
	}
	return b.store.Close()
}

// Add inserts record and saves.
func (b *Book) Add(ctx context.Context, record *contact.Record, autoMerge bool) (directory.AddResult, error) {
	result := b.dir.Add(record, autoMerge)
	if result.Entry == nil || result.Held {
		return result, nil
	}
	if err := b.Save(ctx); err != nil {
		return result, err
	}
	if result.Merged {
		b.logger.Info("contact merged",
			logging.ContactID(result.Entry.ID),
			logging.EventType("contact_merged"),
			logging.Int("score", result.Score),
		)
	} else {
		b.logger.Info("contact added",
			logging.ContactID(result.Entry.ID),
			logging.EventType("contact_added"),
			logging.Bool("auto_merge", autoMerge),
		)
	}
	return result, nil
}

// ImportDir bulk imports every vCard in dir and saves. An empty dir uses
// paths.import_dir.
func (b *Book) ImportDir(ctx context.Context, dir string) (directory.ImportSummary, error) {
	if strings.TrimSpace(dir) == "" {
		dir = b.cfg.Paths.ImportDir
	}
	started := b.now()
	records, err := vcard.ReadDir(dir)
	if err != nil {
		return directory.ImportSummary{}, fmt.Errorf("read vcards: %w", err)
	}
	if len(records) == 0 {
		logging.WarnWithContext(b.logger, "no vcards found", "import_empty",
			logging.String("dir", dir),
			logging.String(logging.FieldErrorHint, "place .vcf files in the import directory"),
			logging.String(logging.FieldImpact, "address book unchanged"),
		)
	}
	summary := b.dir.BulkImport(records)
	if err := b.Save(ctx); err != nil {
		return summary, err
	}
	b.logger.Info("vcard import complete",
		logging.EventType("import_complete"),
		logging.String("dir", dir),
		logging.Int("added", summary.Added),
		logging.Int("merged", summary.Merged),
		logging.Int("skipped", summary.Skipped),
		logging.Duration("elapsed", b.now().Sub(started)),
	)
	return summary, nil
}

// Reset empties the book and saves immediately. When store.backup_on_reset
// is set the database is copied aside first; the backup path is returned.
func (b *Book) Reset(ctx context.Context) (string, error) {
	var backup string
	if b.cfg.Store.BackupOnReset && b.dir.Len() > 0 {
		if err := b.store.Checkpoint(ctx); err != nil {
			return "", err
		}
		path, err := fileutil.BackupFile(b.store.Path(), b.now())
		if err != nil {
			return "", fmt.Errorf("backup before reset: %w", err)
		}
		backup = path
	}

	removed := b.dir.Len()
	b.dir.Reset()
	if err := b.Save(ctx); err != nil {
		return backup, err
	}
	b.logger.Info("address book reset",
		logging.EventType("book_reset"),
		logging.Int("removed", removed),
		logging.String("backup", backup),
	)
	return backup, nil
}

// Lookup resolves a full contact ID or a unique ID prefix.
func (b *Book) Lookup(ref string) (*contact.Record, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, ErrNotFound
	}
	if r, ok := b.dir.Get(ref); ok {
		return r, nil
	}
	var found *contact.Record
	for _, r := range b.dir.Contacts() {
		if !strings.HasPrefix(r.ID, ref) {
			continue
		}
		if found != nil {
			return nil, fmt.Errorf("%w: %q", ErrAmbiguous, ref)
		}
		found = r
	}
	if found == nil {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, ref)
	}
	return found, nil
}
