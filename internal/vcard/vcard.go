package vcard

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	govcard "github.com/emersion/go-vcard"

	"contactbook/internal/contact"
)

// ErrUnterminatedCard is returned when input ends inside a card.
var ErrUnterminatedCard = errors.New("vcard: missing END:VCARD")

// Extension is the file suffix ReadDir picks up, compared case-insensitively.
const Extension = ".vcf"

// Parse decodes every card in r. Each record comes back consolidated, so a
// card whose FN repeats its N carries a single name.
func Parse(r io.Reader) ([]*contact.Record, error) {
	text, err := normalize(r)
	if err != nil {
		return nil, err
	}

	var records []*contact.Record
	dec := govcard.NewDecoder(strings.NewReader(text))
	for {
		card, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode card %d: %w", len(records)+1, err)
		}
		records = append(records, toRecord(card))
	}
	return records, nil
}

// ParseFile decodes every card in the file at path.
func ParseFile(path string) ([]*contact.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	records, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return records, nil
}

// ReadDir decodes every .vcf file in dir, in filename order. A missing
// directory is created and yields no records.
func ReadDir(dir string) ([]*contact.Record, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create vcard directory: %w", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read vcard directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), Extension) {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	var records []*contact.Record
	for _, name := range names {
		parsed, err := ParseFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		records = append(records, parsed...)
	}
	return records, nil
}
