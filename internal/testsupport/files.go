package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteVCard writes a vCard file containing the given cards. Each card is a
// list of content lines without BEGIN/END wrappers.
func WriteVCard(t testing.TB, path string, cards ...[]string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	var b strings.Builder
	for _, card := range cards {
		b.WriteString("BEGIN:VCARD\r\nVERSION:3.0\r\n")
		for _, line := range card {
			b.WriteString(line)
			b.WriteString("\r\n")
		}
		b.WriteString("END:VCARD\r\n")
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
