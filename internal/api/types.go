package api

import "contactbook/internal/contact"

// Contact is the wire form of a contact. Only filled fields are present.
type Contact struct {
	ID        string              `json:"id"`
	ShortName string              `json:"short_name"`
	Fields    map[string][]string `json:"fields"`
}

// DuplicateMatch is one scored candidate.
type DuplicateMatch struct {
	Score   int     `json:"score"`
	Contact Contact `json:"contact"`
}

// ContactListResponse wraps GET /contacts.
type ContactListResponse struct {
	Contacts []Contact `json:"contacts"`
}

// DuplicatesResponse wraps GET /duplicates.
type DuplicatesResponse struct {
	Matches []DuplicateMatch `json:"matches"`
}

// HealthResponse is the JSON response for GET /health.
type HealthResponse struct {
	Status   string `json:"status"`
	Contacts int    `json:"contacts"`
}

// FromRecord converts r, naming it with the given field priority.
func FromRecord(r *contact.Record, order []contact.Field) Contact {
	out := Contact{
		ID:        r.ID,
		ShortName: contact.ShortNameOrdered(r, order),
		Fields:    make(map[string][]string),
	}
	for _, f := range r.FilledFields() {
		out.Fields[f.String()] = append([]string(nil), r.Values(f)...)
	}
	return out
}
