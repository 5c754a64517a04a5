package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeStore()
	c.normalizeDisplay()
	c.normalizeAPI()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir()
	}
	if c.Paths.DataDir, err = expandPath(strings.TrimSpace(c.Paths.DataDir)); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if value, ok := os.LookupEnv("CONTACTBOOK_IMPORT_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Paths.ImportDir = value
	}
	if strings.TrimSpace(c.Paths.ImportDir) == "" {
		c.Paths.ImportDir = defaultImportDir
	}
	if c.Paths.ImportDir, err = expandPath(strings.TrimSpace(c.Paths.ImportDir)); err != nil {
		return fmt.Errorf("paths.import_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeStore() {
	if c.Store.LockTimeoutSeconds <= 0 {
		c.Store.LockTimeoutSeconds = defaultLockTimeoutSeconds
	}
}

func (c *Config) normalizeDisplay() {
	c.Display.ShortNameOrder = strings.ToLower(strings.TrimSpace(c.Display.ShortNameOrder))
	if c.Display.ShortNameOrder == "" {
		c.Display.ShortNameOrder = defaultShortNameOrder
	}
}

func (c *Config) normalizeAPI() {
	c.API.Bind = strings.TrimSpace(c.API.Bind)
	c.API.Token = strings.TrimSpace(c.API.Token)
	if value, ok := os.LookupEnv("CONTACTBOOK_API_TOKEN"); ok && strings.TrimSpace(value) != "" {
		c.API.Token = strings.TrimSpace(value)
	}
	if c.API.Bind == "" {
		c.API.Bind = defaultAPIBind
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
