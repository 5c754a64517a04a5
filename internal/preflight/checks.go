package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"contactbook/internal/config"
	"contactbook/internal/store"
	"contactbook/internal/vcard"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckImportDirectory passes for a missing directory since import creates
// it on first use.
func CheckImportDirectory(path string) Result {
	const name = "Import directory"
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (created on first import)", path)}
	}
	result := CheckDirectoryAccess(name, path)
	if !result.Passed {
		return result
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	cards := 0
	for _, entry := range entries {
		if !entry.IsDir() && strings.EqualFold(filepath.Ext(entry.Name()), vcard.Extension) {
			cards++
		}
	}
	result.Detail = fmt.Sprintf("%s (%d vcard files)", path, cards)
	return result
}

// CheckStore opens an existing database briefly to confirm the schema
// matches and no other process holds the lock.
func CheckStore(ctx context.Context, cfg *config.Config) Result {
	const name = "Address book"
	path := cfg.DatabasePath()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (not created yet)", path)}
	}

	st, err := store.OpenPath(ctx, path, 500*time.Millisecond)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrLocked):
			return Result{Name: name, Detail: fmt.Sprintf("%s (locked by another process)", path)}
		case errors.Is(err, store.ErrSchemaMismatch):
			return Result{Name: name, Detail: fmt.Sprintf("%s (schema mismatch; move the file aside)", path)}
		default:
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
		}
	}
	defer st.Close()

	count, err := st.Count(ctx)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%d contacts)", path, count)}
}

// CheckBind verifies the API bind address can be listened on.
func CheckBind(ctx context.Context, bind string) Result {
	const name = "API bind"
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", bind)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", bind, summarizeListenError(err))}
	}
	_ = ln.Close()
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (available)", bind)}
}

func summarizeListenError(err error) string {
	if errors.Is(err, unix.EADDRINUSE) {
		return "address in use (is `contactbook serve` already running?)"
	}
	if errors.Is(err, unix.EACCES) {
		return "permission denied"
	}
	return err.Error()
}
