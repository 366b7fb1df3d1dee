// Package models defines the domain types for quicktask.
package models

import "time"

// Vault is an Obsidian vault listed in the global registry.
type Vault struct {
	ID   string `json:"id"`
	Path string `json:"path"`
	Name string `json:"name"`
}

// DailyNotesConfig mirrors <vault>/.obsidian/daily-notes.json.
// Template is read but not used when inserting tasks.
type DailyNotesConfig struct {
	Folder   string `json:"folder,omitempty"`
	Format   string `json:"format,omitempty"`
	Template string `json:"template,omitempty"`
}

// TaskEntry records one task appended to a daily note.
type TaskEntry struct {
	ID        string    `json:"id"`
	VaultPath string    `json:"vault_path"`
	NotePath  string    `json:"note_path"`
	Line      string    `json:"line"`
	DueDate   string    `json:"due_date,omitempty"`
	Checksum  string    `json:"checksum"`
	CreatedAt time.Time `json:"created_at"`
}
