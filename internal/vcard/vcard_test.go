package vcard_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"contactbook/internal/contact"
	"contactbook/internal/testsupport"
	"contactbook/internal/vcard"
)

func TestParseMapsProperties(t *testing.T) {
	input := strings.Join([]string{
		"BEGIN:VCARD",
		"VERSION:3.0",
		"FN:Jane Q. Doe",
		"N:Doe;Jane;Q.;;",
		"item1.ADR;TYPE=home:;;1 Main St;Springfield;;12345;USA",
		"TEL;TYPE=cell:+1 555 0100",
		"EMAIL:jane@example.org",
		"URL:https://example.org",
		"NOTE:first line\\nsecond\\, with comma",
		"ORG:Acme;Research",
		"TITLE:Engineer",
		"PHOTO;VALUE=uri:https://example.org/jane.png",
		"X-CUSTOM:ignored",
		"END:VCARD",
		"",
	}, "\r\n")

	records, err := vcard.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	r := records[0]

	checks := []struct {
		field contact.Field
		want  []string
	}{
		{contact.Name, []string{"Jane Q. Doe"}},
		{contact.Address, []string{"1 Main St, Springfield, 12345, USA"}},
		{contact.Telephone, []string{"+1 555 0100"}},
		{contact.Email, []string{"jane@example.org"}},
		{contact.URL, []string{"https://example.org"}},
		{contact.Note, []string{"first line\nsecond, with comma"}},
		{contact.Org, []string{"Acme, Research"}},
		{contact.Title, []string{"Engineer"}},
		{contact.Photo, []string{"https://example.org/jane.png"}},
	}
	for _, tc := range checks {
		got := r.Values(tc.field)
		if strings.Join(got, "|") != strings.Join(tc.want, "|") {
			t.Errorf("%s = %q, want %q", tc.field, got, tc.want)
		}
	}
}

func TestParseUnfoldsContinuationLines(t *testing.T) {
	input := "BEGIN:VCARD\r\nNOTE:a long\r\n  note\r\n\tcontinued\r\nEND:VCARD\r\n"
	records, err := vcard.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if got := records[0].Note; len(got) != 1 || got[0] != "a long notecontinued" {
		t.Fatalf("unexpected unfolded note %q", got)
	}
}

func TestParseNormalizesToNFC(t *testing.T) {
	input := "BEGIN:VCARD\nFN:Rene\u0301\nEND:VCARD\n"
	records, err := vcard.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if got := records[0].Name[0]; got != "Ren\u00e9" {
		t.Fatalf("expected composed form, got %q", got)
	}
}

func TestParseDecodesQuotedPrintable(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{
			name:  "single line",
			lines: []string{"NOTE;ENCODING=QUOTED-PRINTABLE:caf=C3=A9"},
			want:  "café",
		},
		{
			name:  "soft line break",
			lines: []string{"NOTE;ENCODING=QUOTED-PRINTABLE:line one =", "continued"},
			want:  "line one continued",
		},
		{
			name:  "soft break before leading space",
			lines: []string{"NOTE;CHARSET=UTF-8;ENCODING=QUOTED-PRINTABLE:first=", " half"},
			want:  "first half",
		},
		{
			name:  "bare encoding and encoded newline",
			lines: []string{"NOTE;QUOTED-PRINTABLE:one=0D=0Atwo"},
			want:  "one\ntwo",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := "BEGIN:VCARD\r\nVERSION:2.1\r\n" + strings.Join(tt.lines, "\r\n") + "\r\nTEL;CELL:911\r\nEND:VCARD\r\n"
			records, err := vcard.Parse(strings.NewReader(input))
			if err != nil {
				t.Fatalf("Parse returned error: %v", err)
			}
			if len(records) != 1 {
				t.Fatalf("expected 1 record, got %d", len(records))
			}
			if got := records[0].Note; len(got) != 1 || got[0] != tt.want {
				t.Fatalf("note = %q, want %q", got, tt.want)
			}
			if got := records[0].Telephone; len(got) != 1 || got[0] != "911" {
				t.Fatalf("telephone = %q", got)
			}
		})
	}
}

func TestParseConsolidatesNameVariants(t *testing.T) {
	input := "BEGIN:VCARD\nVERSION:3.0\nFN:Dr. John Doe\nN:Doe;John;;Dr.;\nEND:VCARD\n"
	records, err := vcard.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if got := records[0].Name; len(got) != 1 || got[0] != "Dr. John Doe" {
		t.Fatalf("name = %q, want the most specific variant only", got)
	}
}

func TestParseIgnoresTextOutsideCards(t *testing.T) {
	input := "garbage before\n\nBEGIN:VCARD\nFN:Kept\nnot a property\nEND:VCARD\ntrailing:noise\n"
	records, err := vcard.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(records) != 1 || records[0].Name[0] != "Kept" {
		t.Fatalf("unexpected records %#v", records)
	}
}

func TestParseMultipleCards(t *testing.T) {
	input := "BEGIN:VCARD\nFN:One\nEND:VCARD\nBEGIN:VCARD\nFN:Two\nEND:VCARD\n"
	records, err := vcard.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(records) != 2 || records[0].Name[0] != "One" || records[1].Name[0] != "Two" {
		t.Fatalf("unexpected records %#v", records)
	}
}

func TestParseRejectsUnterminatedCard(t *testing.T) {
	_, err := vcard.Parse(strings.NewReader("BEGIN:VCARD\nFN:Lost\n"))
	if !errors.Is(err, vcard.ErrUnterminatedCard) {
		t.Fatalf("expected ErrUnterminatedCard, got %v", err)
	}
}

func TestReadDirCreatesMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing", "vcards")
	records, err := vcard.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir returned error: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Fatalf("expected directory to be created: %v", err)
	}
}

func TestReadDirReadsVCFFilesInOrder(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteVCard(t, filepath.Join(dir, "b.VCF"), []string{"FN:Bravo"})
	testsupport.WriteVCard(t, filepath.Join(dir, "a.vcf"), []string{"FN:Alpha"}, []string{"FN:Another"})
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("BEGIN:VCARD\nFN:Nope\nEND:VCARD\n"), 0o644); err != nil {
		t.Fatalf("write notes: %v", err)
	}

	records, err := vcard.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir returned error: %v", err)
	}
	var names []string
	for _, r := range records {
		names = append(names, contact.ShortName(r))
	}
	if got := strings.Join(names, ","); got != "Alpha,Another,Bravo" {
		t.Fatalf("unexpected import order %q", got)
	}
}

func TestReadDirReportsBrokenFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "broken.vcf"), []byte("BEGIN:VCARD\nFN:x\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := vcard.ReadDir(dir)
	if err == nil || !strings.Contains(err.Error(), "broken.vcf") {
		t.Fatalf("expected error naming file, got %v", err)
	}
}
