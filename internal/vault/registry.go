// Package vault discovers Obsidian vaults from the global registry file.
package vault

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/starford/quicktask/internal/apperr"
	"github.com/starford/quicktask/internal/models"
	"github.com/starford/quicktask/internal/platform"
)

// registryFile is the shape of obsidian.json. Unknown fields are ignored.
type registryFile struct {
	Vaults map[string]registryEntry `json:"vaults"`
}

type registryEntry struct {
	Path string `json:"path"`
}

// RegistryPath returns where Obsidian keeps obsidian.json for goos.
func RegistryPath(env platform.Environment, goos string) (string, error) {
	home, err := env.HomeDir()
	if err != nil {
		return "", fmt.Errorf("%w: %w", apperr.ErrHomeDirectoryUnresolvable, err)
	}
	if home == "" {
		return "", apperr.ErrHomeDirectoryUnresolvable
	}

	switch goos {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "obsidian", "obsidian.json"), nil
	case "windows":
		return filepath.Join(home, "AppData", "Roaming", "obsidian", "obsidian.json"), nil
	default:
		return filepath.Join(home, ".config", "obsidian", "obsidian.json"), nil
	}
}

// Discover reads the registry at path and returns the vaults whose
// directories still exist. Stale entries are dropped without error.
func Discover(path string) ([]models.Vault, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperr.ErrConfigNotFound
		}
		return nil, fmt.Errorf("%w obsidian.json: %w", apperr.ErrFileRead, err)
	}

	var reg registryFile
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("%w obsidian.json: %w", apperr.ErrConfigParse, err)
	}

	vaults := make([]models.Vault, 0, len(reg.Vaults))
	for id, entry := range reg.Vaults {
		if entry.Path == "" {
			continue
		}
		if _, err := os.Stat(entry.Path); err != nil {
			continue
		}
		vaults = append(vaults, models.Vault{
			ID:   id,
			Path: entry.Path,
			Name: Name(entry.Path),
		})
	}

	sort.Slice(vaults, func(i, j int) bool {
		if vaults[i].Name != vaults[j].Name {
			return vaults[i].Name < vaults[j].Name
		}
		return vaults[i].ID < vaults[j].ID
	})
	return vaults, nil
}

// Name derives a display name from the last segment of path, falling back to
// path itself when there is no usable segment.
func Name(path string) string {
	base := filepath.Base(path)
	switch base {
	case ".", "..", string(filepath.Separator), "":
		return path
	}
	return base
}
