// Package testutil provides shared test helpers for setting up vaults,
// registries and history databases.
package testutil

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/starford/quicktask/internal/history"
	"github.com/starford/quicktask/internal/platform"
)

// Today is the pinned date used by Env.
var Today = time.Date(2024, 1, 17, 9, 0, 0, 0, time.Local)

// Env returns an environment whose home is a temp dir and whose clock is Today.
func Env(t *testing.T) platform.Fixed {
	t.Helper()
	return platform.Fixed{Home: t.TempDir(), Time: Today}
}

// Logger returns a logger that discards output.
func Logger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// TestVault creates a temporary vault directory, optionally with a
// daily-notes.json holding settings.
func TestVault(t *testing.T, settings string) string {
	t.Helper()
	dir := t.TempDir()
	if settings != "" {
		cfgDir := filepath.Join(dir, ".obsidian")
		if err := os.MkdirAll(cfgDir, 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(cfgDir, "daily-notes.json"), []byte(settings), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

// TestRegistry writes an obsidian.json listing vaults (id → path) and
// returns its path.
func TestRegistry(t *testing.T, vaults map[string]string) string {
	t.Helper()
	entries := make(map[string]any, len(vaults))
	for id, p := range vaults {
		entries[id] = map[string]any{"path": p, "ts": 1705478400000}
	}
	data, err := json.Marshal(map[string]any{"vaults": entries})
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "obsidian.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestHistory creates a temporary history database that is automatically
// cleaned up.
func TestHistory(t *testing.T) *history.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "quicktask-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := history.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}
