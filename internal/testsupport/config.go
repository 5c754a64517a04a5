package testsupport

import (
	"path/filepath"
	"testing"

	"contactbook/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.ImportDir = filepath.Join(base, "vcards")
	cfgVal.Store.LockTimeoutSeconds = 1
	cfgVal.API.Bind = "127.0.0.1:0"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithShortNameOrder overrides the display ordering used for short names.
func WithShortNameOrder(order string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Display.ShortNameOrder = order
	}
}

// WithoutBackups disables the pre-reset database backup.
func WithoutBackups() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Store.BackupOnReset = false
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
