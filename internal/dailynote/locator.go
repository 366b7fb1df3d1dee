package dailynote

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/starford/quicktask/internal/models"
)

// Locate returns the absolute path of the daily note for today in the vault
// at vaultPath. Templates that fail to render fall back to defaults instead
// of failing.
func Locate(vaultPath string, cfg models.DailyNotesConfig, today time.Time) string {
	path := vaultPath
	if folder := renderFolder(cfg.Folder, today); folder != "" {
		path = filepath.Join(path, folder)
	}
	return filepath.Join(path, Filename(cfg.Format, today))
}

// Filename returns the note filename for today under format.
func Filename(format string, today time.Time) string {
	if strings.TrimSpace(format) == "" {
		format = DefaultFormat
	}
	name, err := Render(format, today)
	if err != nil || name == "" {
		name, _ = Render(DefaultFormat, today)
	}
	return name + ".md"
}

// renderFolder only runs the folder through the date template when it holds
// one of the numeric tokens YYYY, MM or DD. Anything else is a literal path.
func renderFolder(folder string, today time.Time) string {
	if !hasDateToken(folder) {
		return folder
	}
	rendered, err := Render(folder, today)
	if err != nil {
		return folder
	}
	return rendered
}

func hasDateToken(s string) bool {
	return strings.Contains(s, "YYYY") || strings.Contains(s, "MM") || strings.Contains(s, "DD")
}
