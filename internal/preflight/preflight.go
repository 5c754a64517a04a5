package preflight

import (
	"context"

	"contactbook/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every preflight check for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	return []Result{
		CheckDirectoryAccess("Data directory", cfg.Paths.DataDir),
		CheckImportDirectory(cfg.Paths.ImportDir),
		CheckStore(ctx, cfg),
		CheckBind(ctx, cfg.API.Bind),
	}
}
