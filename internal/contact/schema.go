package contact

import (
	"errors"
	"fmt"
	"strings"
)

// Field identifies one entry of the fixed record schema.
type Field int

const (
	Name Field = iota
	Address
	Telephone
	Email
	URL
	Note
	Org
	Photo
	Title
)

var fieldNames = [...]string{
	Name:      "name",
	Address:   "address",
	Telephone: "telephone",
	Email:     "email",
	URL:       "url",
	Note:      "note",
	Org:       "org",
	Photo:     "photo",
	Title:     "title",
}

// Fields returns the schema in declaration order.
func Fields() []Field {
	return []Field{Name, Address, Telephone, Email, URL, Note, Org, Photo, Title}
}

// AlphabeticalOrder returns the schema sorted by field name. Older address
// books picked display names in this order, which lets address win over name.
func AlphabeticalOrder() []Field {
	return []Field{Address, Email, Name, Note, Org, Photo, Telephone, Title, URL}
}

func (f Field) String() string {
	if f < 0 || int(f) >= len(fieldNames) {
		return fmt.Sprintf("field(%d)", int(f))
	}
	return fieldNames[f]
}

// MarshalText renders the field by name in JSON and log output.
func (f Field) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// Valid reports whether f belongs to the schema.
func (f Field) Valid() bool {
	return f >= 0 && int(f) < len(fieldNames)
}

// ErrSchemaViolation is matched by every *SchemaViolation via errors.Is.
var ErrSchemaViolation = errors.New("schema violation")

// SchemaViolation reports a field name outside the fixed schema.
type SchemaViolation struct {
	Field string
}

func (e *SchemaViolation) Error() string {
	return fmt.Sprintf("%s: unknown contact field %q", ErrSchemaViolation, e.Field)
}

func (e *SchemaViolation) Is(target error) bool {
	return target == ErrSchemaViolation
}

// ParseField resolves a schema field by name. Matching ignores case and
// surrounding whitespace.
func ParseField(name string) (Field, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for i, candidate := range fieldNames {
		if candidate == normalized {
			return Field(i), nil
		}
	}
	return 0, &SchemaViolation{Field: name}
}
