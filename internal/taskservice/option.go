package taskservice

import (
	"context"
	"log/slog"

	"github.com/starford/quicktask/internal/models"
)

// Recorder persists appended tasks. It is satisfied by *history.DB.
type Recorder interface {
	Record(ctx context.Context, e models.TaskEntry) (models.TaskEntry, error)
	Recent(ctx context.Context, vaultPath string, limit int) ([]models.TaskEntry, error)
}

// Notifier is told about every task written to a note.
type Notifier interface {
	PublishTaskAdded(vaultPath, notePath, line string)
}

// Option configures a Service.
type Option func(*Service)

// WithRegistryPath pins the obsidian.json location instead of deriving it
// from the home directory.
func WithRegistryPath(path string) Option {
	return func(s *Service) {
		s.registryPath = path
	}
}

// WithGOOS overrides the platform used to pick the registry location.
func WithGOOS(goos string) Option {
	return func(s *Service) {
		s.goos = goos
	}
}

// WithHistory records every appended task in r.
func WithHistory(r Recorder) Option {
	return func(s *Service) {
		s.history = r
	}
}

// WithNotifier publishes appended tasks to n.
func WithNotifier(n Notifier) Option {
	return func(s *Service) {
		s.notifier = n
	}
}

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}
