package preflight

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"contactbook/internal/contact"
	"contactbook/internal/store"
	"contactbook/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckImportDirectory(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "later")
	if result := CheckImportDirectory(missing); !result.Passed {
		t.Fatalf("missing import dir should pass, got: %s", result.Detail)
	}

	dir := t.TempDir()
	testsupport.WriteVCard(t, filepath.Join(dir, "a.vcf"), []string{"FN:A"})
	testsupport.WriteVCard(t, filepath.Join(dir, "b.VCF"), []string{"FN:B"})
	result := CheckImportDirectory(dir)
	if !result.Passed || !strings.Contains(result.Detail, "2 vcard files") {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestCheckStore(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	ctx := context.Background()

	if result := CheckStore(ctx, cfg); !result.Passed || !strings.Contains(result.Detail, "not created yet") {
		t.Fatalf("unexpected result before creation: %+v", result)
	}

	testsupport.Seed(t, cfg, &contact.Record{ID: "1", Name: []string{"One"}})
	if result := CheckStore(ctx, cfg); !result.Passed || !strings.Contains(result.Detail, "1 contacts") {
		t.Fatalf("unexpected result after seed: %+v", result)
	}

	st, err := store.Open(ctx, cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	defer st.Close()
	if result := CheckStore(ctx, cfg); result.Passed || !strings.Contains(result.Detail, "locked") {
		t.Fatalf("expected locked failure, got %+v", result)
	}
}

func TestCheckBind(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	if result := CheckBind(context.Background(), ln.Addr().String()); result.Passed {
		t.Fatalf("expected busy address to fail, got %+v", result)
	}
	if result := CheckBind(context.Background(), "127.0.0.1:0"); !result.Passed {
		t.Fatalf("expected ephemeral port to pass, got %+v", result)
	}
}

func TestRunAll(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	results := RunAll(context.Background(), cfg)
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	for _, r := range results {
		if !r.Passed {
			t.Fatalf("expected %s to pass: %s", r.Name, r.Detail)
		}
	}
	if RunAll(context.Background(), nil) != nil {
		t.Fatal("expected nil results for nil config")
	}
}
