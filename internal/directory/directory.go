package directory

import (
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"contactbook/internal/contact"
	"contactbook/internal/logging"
)

// Match pairs an existing entry with its score against a candidate.
type Match struct {
	Score  int
	Record *contact.Record
}

// AddResult describes what Add did with a record.
type AddResult struct {
	// Entry is the directory entry now holding the record's data: the
	// record itself when appended, or the existing entry it was merged into.
	Entry  *contact.Record
	Merged bool
	Score  int

	// Held is set when the record already was an entry; nothing changed.
	Held bool
}

// ImportSummary counts the outcomes of a BulkImport.
type ImportSummary struct {
	Added   int
	Merged  int
	Skipped int
}

// Total returns the number of records processed.
func (s ImportSummary) Total() int {
	return s.Added + s.Merged + s.Skipped
}

// Directory is an ordered collection of contacts, unique by identity.
type Directory struct {
	contacts []*contact.Record
	logger   *slog.Logger
}

// New returns an empty directory. A nil logger disables logging.
func New(logger *slog.Logger) *Directory {
	return &Directory{logger: logging.NewComponentLogger(logger, "directory")}
}

// Load returns a directory holding records in the given order, as read from
// a store snapshot. Records are adopted, not copied.
func Load(records []*contact.Record, logger *slog.Logger) *Directory {
	d := New(logger)
	for _, r := range records {
		if r != nil {
			d.appendEntry(r)
		}
	}
	return d
}

// Contacts returns the current entries in insertion order. The slice is a
// copy; the records are live.
func (d *Directory) Contacts() []*contact.Record {
	out := make([]*contact.Record, len(d.contacts))
	copy(out, d.contacts)
	return out
}

// Len returns the number of entries.
func (d *Directory) Len() int {
	return len(d.contacts)
}

// Get returns the entry with the given ID.
func (d *Directory) Get(id string) (*contact.Record, bool) {
	if id == "" {
		return nil, false
	}
	for _, c := range d.contacts {
		if c.ID == id {
			return c, true
		}
	}
	return nil, false
}

// ContactsWith returns the entries whose field f is filled.
func (d *Directory) ContactsWith(f contact.Field) []*contact.Record {
	var out []*contact.Record
	for _, c := range d.contacts {
		if c.Filled(f) {
			out = append(out, c)
		}
	}
	return out
}

// FindDuplicates scores candidate against every entry. The result holds one
// match per entry, highest score first; ties keep insertion order. An empty
// directory yields an empty slice.
func (d *Directory) FindDuplicates(candidate *contact.Record) []Match {
	matches := make([]Match, 0, len(d.contacts))
	for _, c := range d.contacts {
		matches = append(matches, Match{Score: contact.MatchScore(c, candidate), Record: c})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}

// FindBestDuplicate returns the top-scoring entry when its score is above
// zero.
func (d *Directory) FindBestDuplicate(candidate *contact.Record) (Match, bool) {
	matches := d.FindDuplicates(candidate)
	if len(matches) == 0 || matches[0].Score <= 0 {
		return Match{}, false
	}
	return matches[0], true
}

// Find looks up the best entry for loosely typed field values, e.g.
// Find(map[string]any{"name": "john"}).
func (d *Directory) Find(values map[string]any) (*contact.Record, bool, error) {
	query, err := contact.FromMap(values)
	if err != nil {
		return nil, false, err
	}
	match, ok := d.FindBestDuplicate(query)
	return match.Record, ok, nil
}

// Add inserts record. With autoMerge the record is folded into its best
// scoring entry when one exists; otherwise, or when the directory is empty,
// it is appended as a new entry.
func (d *Directory) Add(record *contact.Record, autoMerge bool) AddResult {
	if record == nil {
		return AddResult{}
	}
	if d.holds(record) {
		return AddResult{Entry: record, Held: true}
	}
	if !autoMerge || len(d.contacts) == 0 {
		d.appendEntry(record)
		return AddResult{Entry: record}
	}

	match, ok := d.FindBestDuplicate(record)
	if !ok {
		d.appendEntry(record)
		return AddResult{Entry: record}
	}

	contact.Merge(match.Record, record)
	d.logger.Debug("merged contact into existing entry",
		logging.ContactID(match.Record.ID),
		logging.EventType("contact_merged"),
		logging.Int("score", match.Score),
		logging.String("short_name", contact.ShortName(match.Record)),
		logging.Any("fields", record.FilledFields()),
	)
	return AddResult{Entry: match.Record, Merged: true, Score: match.Score}
}

// BulkImport feeds records through Add with auto-merge, in order. A record
// exactly equal to a current entry is skipped and the batch continues.
func (d *Directory) BulkImport(records []*contact.Record) ImportSummary {
	var summary ImportSummary
	for _, r := range records {
		if r == nil {
			continue
		}
		if d.containsEqual(r) {
			summary.Skipped++
			d.logger.Debug("skipped known contact",
				logging.EventType("contact_skipped"),
				logging.String("short_name", contact.ShortName(r)),
			)
			continue
		}
		if d.Add(r, true).Merged {
			summary.Merged++
		} else {
			summary.Added++
		}
	}
	return summary
}

// Reset removes every entry.
func (d *Directory) Reset() {
	d.contacts = nil
}

func (d *Directory) holds(r *contact.Record) bool {
	for _, c := range d.contacts {
		if c == r {
			return true
		}
	}
	return false
}

func (d *Directory) containsEqual(r *contact.Record) bool {
	for _, c := range d.contacts {
		if contact.Equal(c, r) {
			return true
		}
	}
	return false
}

func (d *Directory) appendEntry(r *contact.Record) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	d.contacts = append(d.contacts, r)
}
