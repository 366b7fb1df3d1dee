package api

import "github.com/starford/quicktask/internal/models"

// AddTaskRequest is the request body for appending a task. Vault is a
// registry id, name or path; it may be empty when one vault is registered.
type AddTaskRequest struct {
	Vault     string `json:"vault" example:"Notes"`
	Content   string `json:"content" example:"Buy milk" validate:"required"`
	DueDate   string `json:"due_date,omitempty" example:"2024-01-18"`
	ParseDate bool   `json:"parse_date,omitempty" example:"false"`
}

// AddTaskResponse is returned after a task is written.
type AddTaskResponse struct {
	Path     string `json:"path" example:"/Users/ana/Notes/2024-01-17.md" validate:"required"`
	Line     string `json:"line" example:"- [ ] Buy milk ⏳ 2024-01-18" validate:"required"`
	Checksum string `json:"checksum" example:"sha256:9f86d08..." validate:"required"`
}

// VaultListResponse wraps the registered vaults.
type VaultListResponse struct {
	Vaults []models.Vault `json:"vaults" validate:"required"`
}

// RecentTasksResponse wraps history entries, newest first.
type RecentTasksResponse struct {
	Tasks []models.TaskEntry `json:"tasks" validate:"required"`
}
