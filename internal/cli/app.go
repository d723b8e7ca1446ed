package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"garage/internal/backend"
	"garage/internal/config"
	"garage/internal/prefs"
	"garage/internal/records"
	"garage/internal/services"
	ports "garage/internal/sheets"
)

// app carries what every command needs once configuration is loaded.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	factory backend.Factory
	now     func() time.Time
}

func (a *app) policy() records.RecencyPolicy {
	return records.RecencyPolicy{NewDays: a.cfg.RecencyNewDays, OldDays: a.cfg.RecencyOldDays}
}

func (a *app) tableStore(ctx context.Context) (ports.TableStore, error) {
	bc, err := backend.FromAppConfig(a.cfg)
	if err != nil {
		return nil, err
	}
	res, err := a.factory.CreateTableStore(ctx, bc)
	if err != nil {
		return nil, err
	}
	return res.Store, nil
}

func (a *app) openSession(ctx context.Context) (*services.TableSession, error) {
	store, err := a.tableStore(ctx)
	if err != nil {
		return nil, err
	}
	return services.OpenSession(ctx, store, a.policy())
}

// openLog opens the relational log. Callers must run the returned Cleanup.
func (a *app) openLog(ctx context.Context) (*backend.LogResult, error) {
	bc, err := backend.FromAppConfig(a.cfg)
	if err != nil {
		return nil, err
	}
	return a.factory.CreateLog(ctx, bc)
}

func (a *app) openPrefs() (*prefs.Store, error) {
	if err := os.MkdirAll(filepath.Dir(a.cfg.PrefsPath), 0755); err != nil {
		return nil, fmt.Errorf("create prefs directory: %w", err)
	}
	return prefs.Open(a.cfg.PrefsPath)
}

// palette resolves the saved theme. Preference errors only cost colour.
func (a *app) palette() palette {
	store, err := a.openPrefs()
	if err != nil {
		a.logger.Warn("Preferences unavailable, using default theme", "component", "cli", "error", err)
		return paletteFor(prefs.ThemeDefault)
	}
	defer store.Close()
	theme, err := store.Theme()
	if err != nil {
		a.logger.Warn("Failed to read theme, using default", "component", "cli", "error", err)
	}
	return paletteFor(theme)
}

func (a *app) closeLog(res *backend.LogResult) {
	if err := res.Cleanup(); err != nil {
		a.logger.Warn("Failed to close maintenance log", "component", "cli", "error", err)
	}
}

func parseID(s, what string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a positive integer", what, s)
	}
	return id, nil
}

// parseRowNumber converts a 1-based row number as shown by "sheet show" to
// a store index.
func parseRowNumber(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid row number %q: must be a positive integer", s)
	}
	return n - 1, nil
}
