package dailynote

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/starford/quicktask/internal/models"
)

// SettingsPath returns the location of a vault's daily notes settings.
func SettingsPath(vaultPath string) string {
	return filepath.Join(vaultPath, ".obsidian", "daily-notes.json")
}

// LoadSettings reads the vault's daily notes settings. A missing file gives
// the zero config; an unreadable or malformed one is logged and also gives
// the zero config, since a broken settings file must not block note creation.
func LoadSettings(vaultPath string, logger *slog.Logger) models.DailyNotesConfig {
	var cfg models.DailyNotesConfig

	path := SettingsPath(vaultPath)
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Warn("daily notes settings unreadable, using defaults",
				slog.String("path", path), slog.String("error", err.Error()))
		}
		return cfg
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		logger.Warn("daily notes settings malformed, using defaults",
			slog.String("path", path), slog.String("error", err.Error()))
		return models.DailyNotesConfig{}
	}
	return cfg
}
