// Package taskservice exposes the two operations the host shell needs:
// listing vaults and appending a task to today's daily note.
package taskservice

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/quicktask/internal/apperr"
	"github.com/starford/quicktask/internal/checksum"
	"github.com/starford/quicktask/internal/dailynote"
	"github.com/starford/quicktask/internal/duedate"
	"github.com/starford/quicktask/internal/models"
	"github.com/starford/quicktask/internal/platform"
	"github.com/starford/quicktask/internal/storage"
	"github.com/starford/quicktask/internal/tasknote"
	"github.com/starford/quicktask/internal/vault"
)

// Service coordinates vault discovery and daily note edits.
type Service struct {
	env          platform.Environment
	registryPath string
	goos         string
	history      Recorder
	notifier     Notifier
	logger       *slog.Logger
}

// New creates a Service reading ambient facts from env.
func New(env platform.Environment, opts ...Option) *Service {
	s := &Service{
		env:    env,
		goos:   runtime.GOOS,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddTaskRequest is the input to AddTask. An empty DueDate means no due date.
// With ParseDate set, a date phrase in Content ("call Bob tom") becomes the
// due date and is removed from the description.
type AddTaskRequest struct {
	VaultPath string `json:"vault_path"`
	Content   string `json:"content"`
	DueDate   string `json:"due_date,omitempty"`
	ParseDate bool   `json:"parse_date,omitempty"`
}

// Validate checks that the request names a vault and carries a single-line,
// non-blank task.
func (r AddTaskRequest) Validate() error {
	content := strings.TrimSpace(r.Content)
	return validation.Errors{
		"vault_path": validation.Validate(r.VaultPath, validation.Required),
		"content":    validation.Validate(content, validation.Required, validation.By(singleLine)),
		"due_date": validation.Validate(r.DueDate, validation.By(singleLine),
			validation.When(r.ParseDate, validation.Empty.Error("cannot be combined with parse_date"))),
	}.Filter()
}

func singleLine(v any) error {
	s, _ := v.(string)
	if strings.ContainsAny(s, "\r\n") {
		return errors.New("must be a single line")
	}
	return nil
}

// AddResult describes a completed insertion.
type AddResult struct {
	Path     string `json:"path"`
	Line     string `json:"line"`
	Checksum string `json:"checksum"`
}

// Now is the service clock, the one that decides which daily note is today's.
func (s *Service) Now() time.Time {
	return s.env.Now()
}

// RegistryPath returns the obsidian.json location in use.
func (s *Service) RegistryPath() (string, error) {
	if s.registryPath != "" {
		return s.registryPath, nil
	}
	return vault.RegistryPath(s.env, s.goos)
}

// ListVaults returns the registered vaults that still exist on disk.
func (s *Service) ListVaults(_ context.Context) ([]models.Vault, error) {
	path, err := s.RegistryPath()
	if err != nil {
		return nil, err
	}
	return vault.Discover(path)
}

// ResolveVault finds a vault by registry id, name or path. A ref that is an
// existing directory is accepted even when it is not registered. An empty ref
// resolves only when exactly one vault is registered.
func (s *Service) ResolveVault(ctx context.Context, ref string) (models.Vault, error) {
	v, err := s.RegisteredVault(ctx, ref)
	if err == nil || ref == "" || errors.Is(err, apperr.ErrInvalidInput) {
		return v, err
	}
	if info, statErr := os.Stat(ref); statErr == nil && info.IsDir() {
		abs, absErr := filepath.Abs(ref)
		if absErr != nil {
			abs = ref
		}
		return models.Vault{Path: abs, Name: vault.Name(abs)}, nil
	}
	return models.Vault{}, err
}

// RegisteredVault is ResolveVault restricted to vaults listed in the
// registry. Unregistered directories are ErrVaultNotFound.
func (s *Service) RegisteredVault(ctx context.Context, ref string) (models.Vault, error) {
	vaults, err := s.ListVaults(ctx)
	if err != nil {
		return models.Vault{}, err
	}

	if ref == "" {
		if len(vaults) == 1 {
			return vaults[0], nil
		}
		return models.Vault{}, fmt.Errorf("%w: vault is required when %d vaults are registered", apperr.ErrInvalidInput, len(vaults))
	}

	var matches []models.Vault
	for _, v := range vaults {
		if v.ID == ref || v.Path == ref {
			return v, nil
		}
		if v.Name == ref {
			matches = append(matches, v)
		}
	}
	switch len(matches) {
	case 0:
		return models.Vault{}, fmt.Errorf("%w: %s", apperr.ErrVaultNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return models.Vault{}, fmt.Errorf("%w: vault name %q is ambiguous, use its path or id", apperr.ErrInvalidInput, ref)
	}
}

// AddTask appends a task line to today's daily note in the vault and returns
// the note's absolute path. The new content is computed in full before the
// note is rewritten.
func (s *Service) AddTask(ctx context.Context, req AddTaskRequest) (*AddResult, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", apperr.ErrInvalidInput, err)
	}

	today := s.env.Now()
	content, due := req.Content, req.DueDate
	if req.ParseDate {
		if cleaned, parsed, ok := duedate.Extract(content, today); ok {
			if cleaned == "" {
				return nil, fmt.Errorf("%w: content: nothing left besides the date %q", apperr.ErrInvalidInput, parsed)
			}
			content, due = cleaned, parsed
		}
	}

	store, err := storage.NewFS(req.VaultPath)
	if err != nil {
		return nil, err
	}
	root := store.Root()

	cfg := dailynote.LoadSettings(root, s.logger)
	notePath := dailynote.Locate(root, cfg, today)

	rel, err := filepath.Rel(root, notePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperr.ErrPathEscape, err)
	}

	if err := store.EnsureParent(rel); err != nil {
		return nil, err
	}
	existing, err := store.Read(rel)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	line := tasknote.FormatTask(content, due)
	updated := []byte(tasknote.Insert(string(existing), line, today))

	if err := store.Write(rel, updated); err != nil {
		return nil, err
	}

	res := &AddResult{
		Path:     notePath,
		Line:     line,
		Checksum: checksum.Sum(updated),
	}
	s.logger.Info("task added",
		slog.String("vault", root),
		slog.String("note", notePath),
		slog.String("shape", tasknote.Classify(string(existing)).String()))

	if s.history != nil {
		if _, err := s.history.Record(ctx, models.TaskEntry{
			VaultPath: root,
			NotePath:  notePath,
			Line:      line,
			DueDate:   due,
			Checksum:  res.Checksum,
		}); err != nil {
			s.logger.Warn("history record failed", slog.String("note", notePath), slog.String("error", err.Error()))
		}
	}
	if s.notifier != nil {
		s.notifier.PublishTaskAdded(root, notePath, line)
	}
	return res, nil
}

// RecentTasks lists the newest recorded tasks, optionally for one vault.
// It returns an empty list when history is disabled.
func (s *Service) RecentTasks(ctx context.Context, vaultPath string, limit int) ([]models.TaskEntry, error) {
	if s.history == nil {
		return []models.TaskEntry{}, nil
	}
	entries, err := s.history.Recent(ctx, vaultPath, limit)
	if err != nil {
		return nil, err
	}
	return nonNilSlice(entries), nil
}

func nonNilSlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
