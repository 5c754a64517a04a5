package config

const (
	databaseFileName          = "contacts.db"
	defaultDataDirFallback    = "~/.local/share/contactbook"
	defaultImportDir          = "~/.contactbook/vcards"
	defaultLockTimeoutSeconds = 10
	defaultShortNameOrder     = ShortNameOrderSchema
	defaultAPIBind            = "127.0.0.1:7488"
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
)

// Short name orders accepted by display.short_name_order.
const (
	ShortNameOrderSchema       = "schema"
	ShortNameOrderAlphabetical = "alphabetical"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:   defaultDataDir(),
			ImportDir: defaultImportDir,
		},
		Store: Store{
			LockTimeoutSeconds: defaultLockTimeoutSeconds,
			BackupOnReset:      true,
		},
		Display: Display{
			ShortNameOrder: defaultShortNameOrder,
		},
		API: API{
			Bind: defaultAPIBind,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
