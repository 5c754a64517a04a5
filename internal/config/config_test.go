package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"contactbook/internal/config"
)

func isolateEnv(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("CONTACTBOOK_IMPORT_DIR", "")
	t.Setenv("CONTACTBOOK_API_TOKEN", "")
	t.Chdir(home)
	return home
}

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	home := isolateEnv(t)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved != filepath.Join(home, ".config", "contactbook", "config.toml") {
		t.Fatalf("unexpected resolved path %q", resolved)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	if want := filepath.Join(home, ".local", "share", "contactbook"); cfg.Paths.DataDir != want {
		t.Fatalf("data dir = %q, want %q", cfg.Paths.DataDir, want)
	}
	if want := filepath.Join(home, ".contactbook", "vcards"); cfg.Paths.ImportDir != want {
		t.Fatalf("import dir = %q, want %q", cfg.Paths.ImportDir, want)
	}
	if cfg.DatabasePath() != filepath.Join(cfg.Paths.DataDir, "contacts.db") {
		t.Fatalf("unexpected database path %q", cfg.DatabasePath())
	}
	if cfg.Display.ShortNameOrder != config.ShortNameOrderSchema {
		t.Fatalf("short name order = %q", cfg.Display.ShortNameOrder)
	}
	if cfg.API.Bind != "127.0.0.1:7488" {
		t.Fatalf("api bind = %q", cfg.API.Bind)
	}
	if !cfg.Store.BackupOnReset {
		t.Fatal("expected backup on reset by default")
	}
	if cfg.LockTimeout().Seconds() != 10 {
		t.Fatalf("lock timeout = %v", cfg.LockTimeout())
	}
}

func TestLoadHonoursEnvironmentOverrides(t *testing.T) {
	home := isolateEnv(t)
	dataHome := filepath.Join(home, "xdg")
	importDir := filepath.Join(home, "cards")
	t.Setenv("XDG_DATA_HOME", dataHome)
	t.Setenv("CONTACTBOOK_IMPORT_DIR", importDir)
	t.Setenv("CONTACTBOOK_API_TOKEN", " secret ")

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if want := filepath.Join(dataHome, "contactbook"); cfg.Paths.DataDir != want {
		t.Fatalf("data dir = %q, want %q", cfg.Paths.DataDir, want)
	}
	if cfg.Paths.ImportDir != importDir {
		t.Fatalf("import dir = %q, want %q", cfg.Paths.ImportDir, importDir)
	}
	if cfg.API.Token != "secret" {
		t.Fatalf("api token = %q", cfg.API.Token)
	}
}

func TestLoadReadsFileAndNormalizes(t *testing.T) {
	home := isolateEnv(t)
	path := filepath.Join(home, "custom.toml")
	content := `
[paths]
data_dir = "~/book"

[display]
short_name_order = " Alphabetical "

[logging]
format = "JSON"
level = "Debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected %q to be used, got %q (exists=%v)", path, resolved, exists)
	}
	if cfg.Paths.DataDir != filepath.Join(home, "book") {
		t.Fatalf("data dir = %q", cfg.Paths.DataDir)
	}
	if cfg.Display.ShortNameOrder != config.ShortNameOrderAlphabetical {
		t.Fatalf("short name order = %q", cfg.Display.ShortNameOrder)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("logging = %+v", cfg.Logging)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"short name order", "[display]\nshort_name_order = \"random\"\n", "display.short_name_order"},
		{"log format", "[logging]\nformat = \"xml\"\n", "logging.format"},
		{"log level", "[logging]\nlevel = \"loud\"\n", "logging.level"},
		{"api bind", "[api]\nbind = \"localhost\"\n", "api.bind"},
		{"unknown key", "[paths]\nstaging_dir = \"/tmp\"\n", "parse config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home := isolateEnv(t)
			path := filepath.Join(home, "bad.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			_, _, _, err := config.Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestSampleConfigParsesAndValidates(t *testing.T) {
	home := isolateEnv(t)
	path := filepath.Join(home, "sample", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	var raw config.Config
	if err := toml.Unmarshal(data, &raw); err != nil {
		t.Fatalf("sample is not valid TOML: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load(sample) returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected sample file to exist")
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	if info, err := os.Stat(cfg.Paths.DataDir); err != nil || !info.IsDir() {
		t.Fatalf("data dir not created: %v", err)
	}
}
