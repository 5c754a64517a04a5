package vcard

import (
	"strings"

	govcard "github.com/emersion/go-vcard"
	"golang.org/x/text/unicode/norm"

	"contactbook/internal/contact"
)

// textProperties map one-to-one onto a contact field.
var textProperties = []struct {
	name  string
	field contact.Field
}{
	{govcard.FieldTelephone, contact.Telephone},
	{govcard.FieldEmail, contact.Email},
	{govcard.FieldURL, contact.URL},
	{govcard.FieldNote, contact.Note},
	{govcard.FieldTitle, contact.Title},
}

// toRecord maps a decoded card onto the contact schema. FN and N both feed
// name, N rendered as "Given Additional Family". Unknown properties are
// ignored.
func toRecord(card govcard.Card) *contact.Record {
	r := &contact.Record{}
	add := func(f contact.Field, value string) {
		if value != "" {
			r.Set(f, append(r.Values(f), value))
		}
	}

	for _, v := range card.Values(govcard.FieldFormattedName) {
		add(contact.Name, clean(v))
	}
	for _, n := range card.Names() {
		add(contact.Name, joinNonEmpty(" ", n.GivenName, n.AdditionalName, n.FamilyName))
	}
	for _, a := range card.Addresses() {
		add(contact.Address, joinNonEmpty(", ",
			a.PostOfficeBox, a.ExtendedAddress, a.StreetAddress,
			a.Locality, a.Region, a.PostalCode, a.Country))
	}
	for _, v := range card.Values(govcard.FieldOrganization) {
		add(contact.Org, joinNonEmpty(", ", splitUnescaped(v, ';')...))
	}
	for _, p := range textProperties {
		for _, v := range card.Values(p.name) {
			add(p.field, clean(v))
		}
	}
	// URIs and inline base64 alike are kept verbatim.
	for _, v := range card.Values(govcard.FieldPhoto) {
		add(contact.Photo, strings.TrimSpace(v))
	}

	r.Consolidate()
	return r
}

// residual undoes the escapes the decoder leaves in place.
var residual = strings.NewReplacer(`\n`, "\n", `\N`, "\n", `\,`, ",", `\;`, ";", `\:`, ":")

func clean(value string) string {
	return norm.NFC.String(strings.TrimSpace(residual.Replace(value)))
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = clean(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

// splitUnescaped splits a structured value on sep, leaving \sep inside a
// component.
func splitUnescaped(value string, sep byte) []string {
	var (
		out   []string
		start int
	)
	for i := 0; i < len(value); i++ {
		switch value[i] {
		case '\\':
			i++
		case sep:
			out = append(out, value[start:i])
			start = i + 1
		}
	}
	return append(out, value[start:])
}
