package contact

import (
	"fmt"
	"sort"
)

// Record is one contact. Each schema field holds zero or more values; order
// inside a field carries no meaning once the record has been consolidated.
type Record struct {
	// ID is storage identity. It never takes part in equality or scoring.
	ID string `json:"id,omitempty" yaml:"id,omitempty"`

	Name      []string `json:"name,omitempty" yaml:"name,omitempty"`
	Address   []string `json:"address,omitempty" yaml:"address,omitempty"`
	Telephone []string `json:"telephone,omitempty" yaml:"telephone,omitempty"`
	Email     []string `json:"email,omitempty" yaml:"email,omitempty"`
	URL       []string `json:"url,omitempty" yaml:"url,omitempty"`
	Note      []string `json:"note,omitempty" yaml:"note,omitempty"`
	Org       []string `json:"org,omitempty" yaml:"org,omitempty"`
	Photo     []string `json:"photo,omitempty" yaml:"photo,omitempty"`
	Title     []string `json:"title,omitempty" yaml:"title,omitempty"`
}

func (r *Record) slot(f Field) *[]string {
	switch f {
	case Name:
		return &r.Name
	case Address:
		return &r.Address
	case Telephone:
		return &r.Telephone
	case Email:
		return &r.Email
	case URL:
		return &r.URL
	case Note:
		return &r.Note
	case Org:
		return &r.Org
	case Photo:
		return &r.Photo
	case Title:
		return &r.Title
	}
	return nil
}

// Values returns the live values of f. Invalid fields yield nil.
func (r *Record) Values(f Field) []string {
	if r == nil {
		return nil
	}
	if slot := r.slot(f); slot != nil {
		return *slot
	}
	return nil
}

// Set replaces the values of f. It panics on a field outside the schema,
// which can only come from a programming error since Field values are
// produced by this package.
func (r *Record) Set(f Field, values []string) {
	slot := r.slot(f)
	if slot == nil {
		panic(fmt.Sprintf("contact: set on invalid %s", f))
	}
	*slot = values
}

// Filled reports whether f holds at least one value.
func (r *Record) Filled(f Field) bool {
	return len(r.Values(f)) > 0
}

// FilledFields returns the non-empty fields in declaration order.
func (r *Record) FilledFields() []Field {
	if r == nil {
		return nil
	}
	var filled []Field
	for _, f := range Fields() {
		if r.Filled(f) {
			filled = append(filled, f)
		}
	}
	return filled
}

// IsEmpty reports whether no field is filled.
func (r *Record) IsEmpty() bool {
	return len(r.FilledFields()) == 0
}

// Consolidate normalizes every filled field in place. Running it twice is a
// no-op.
func (r *Record) Consolidate() {
	for _, f := range r.FilledFields() {
		r.Set(f, Consolidate(r.Values(f)))
	}
}

// Clone returns a deep copy of r.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	out := &Record{ID: r.ID}
	for _, f := range Fields() {
		if values := r.Values(f); values != nil {
			out.Set(f, append([]string(nil), values...))
		}
	}
	return out
}

// FromMap builds a record from loosely typed values keyed by field name.
// Each value may be a string, a []string or an arbitrarily nested []any;
// nested sequences are flattened and non-string elements dropped. Keys
// outside the schema return a *SchemaViolation.
func FromMap(values map[string]any) (*Record, error) {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	r := &Record{}
	for _, key := range keys {
		f, err := ParseField(key)
		if err != nil {
			return nil, err
		}
		var flat []string
		flatten(values[key], &flat)
		r.Set(f, append(r.Values(f), flat...))
	}
	return r, nil
}

// Equal reports whether every field of a and b holds the same set of values.
// Comparison is exact and ignores order, duplicates and IDs.
func Equal(a, b *Record) bool {
	if a == nil || b == nil {
		return a == b
	}
	for _, f := range Fields() {
		if !sameSet(a.Values(f), b.Values(f)) {
			return false
		}
	}
	return true
}

func sameSet(a, b []string) bool {
	left := make(map[string]struct{}, len(a))
	for _, v := range a {
		left[v] = struct{}{}
	}
	right := make(map[string]struct{}, len(b))
	for _, v := range b {
		if _, ok := left[v]; !ok {
			return false
		}
		right[v] = struct{}{}
	}
	return len(left) == len(right)
}

const unknownShortName = "unknown"

// ShortName returns the first value of the first filled field, scanning in
// schema order, or "unknown" for an empty record.
func ShortName(r *Record) string {
	return ShortNameOrdered(r, Fields())
}

// ShortNameOrdered is ShortName with an explicit field priority.
func ShortNameOrdered(r *Record, order []Field) string {
	for _, f := range order {
		if values := r.Values(f); len(values) > 0 {
			return values[0]
		}
	}
	return unknownShortName
}
