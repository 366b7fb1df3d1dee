package history

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/starford/quicktask/internal/models"
)

const (
	defaultLimit = 20
	maxLimit     = 500
)

// Record stores e. ID and CreatedAt are filled in when empty.
func (db *DB) Record(ctx context.Context, e models.TaskEntry) (models.TaskEntry, error) {
	if e.ID == "" {
		e.ID = ulid.Make().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	e.CreatedAt = e.CreatedAt.UTC()

	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO tasks (id, vault_path, note_path, line, due_date, checksum, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, e.ID, e.VaultPath, e.NotePath, e.Line, e.DueDate, e.Checksum, e.CreatedAt)
	if err != nil {
		return e, fmt.Errorf("history: record: %w", err)
	}
	return e, nil
}

// Recent returns the newest entries first. An empty vaultPath matches every
// vault. limit <= 0 selects the default page size.
func (db *DB) Recent(ctx context.Context, vaultPath string, limit int) ([]models.TaskEntry, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, vault_path, note_path, line, due_date, checksum, created_at
		FROM tasks
		WHERE ? = '' OR vault_path = ?
		ORDER BY id DESC
		LIMIT ?
	`, vaultPath, vaultPath, limit)
	if err != nil {
		return nil, fmt.Errorf("history: recent: %w", err)
	}
	defer rows.Close()

	var out []models.TaskEntry
	for rows.Next() {
		var e models.TaskEntry
		if err := rows.Scan(&e.ID, &e.VaultPath, &e.NotePath, &e.Line, &e.DueDate, &e.Checksum, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
