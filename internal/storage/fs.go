package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/starford/quicktask/internal/apperr"
)

// FS implements Provider backed by the local file system.
type FS struct {
	root string // absolute path to vault directory
}

// NewFS creates a new FS provider rooted at the given directory. A missing
// root is created by the first Write; a root that is a file is rejected.
func NewFS(root string) (*FS, error) {
	if root == "" {
		return nil, fmt.Errorf("%w: vault path is empty", apperr.ErrInvalidInput)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("storage: resolve root: %w", err)
	}
	info, err := os.Stat(abs)
	if err == nil && !info.IsDir() {
		return nil, fmt.Errorf("%w: vault is not a directory: %s", apperr.ErrInvalidInput, abs)
	}
	return &FS{root: abs}, nil
}

// Root returns the absolute vault directory.
func (f *FS) Root() string {
	return f.root
}

// safePath resolves a relative path against the vault root and rejects
// any result that escapes it (directory traversal).
func (f *FS) safePath(rel string) (string, error) {
	if rel == "" {
		return f.root, nil
	}
	cleaned := filepath.Clean(rel)
	if filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("%w: absolute paths not allowed: %s", apperr.ErrPathEscape, rel)
	}
	joined := filepath.Join(f.root, cleaned)
	abs, err := filepath.Abs(joined)
	if err != nil {
		return "", fmt.Errorf("storage: resolve path: %w", err)
	}
	// Ensure the resolved path is still under root.
	if !strings.HasPrefix(abs, f.root+string(os.PathSeparator)) && abs != f.root {
		return "", fmt.Errorf("%w: %s", apperr.ErrPathEscape, rel)
	}
	return abs, nil
}

// EnsureParent creates every missing directory above path. Existing
// directories are not an error.
func (f *FS) EnsureParent(path string) error {
	abs, err := f.safePath(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(abs)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w %s: %w", apperr.ErrDirectoryCreate, dir, err)
	}
	return nil
}

// Read returns the raw bytes of a vault file. A missing file yields an error
// matching fs.ErrNotExist; other failures match apperr.ErrFileRead.
func (f *FS) Read(path string) ([]byte, error) {
	abs, err := f.safePath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("storage: read %s: %w", path, err)
		}
		return nil, fmt.Errorf("%w %s: %w", apperr.ErrFileRead, path, err)
	}
	return data, nil
}

// Write atomically writes content: tmp file → fsync → rename.
func (f *FS) Write(path string, content []byte) error {
	abs, err := f.safePath(path)
	if err != nil {
		return err
	}
	if err := f.EnsureParent(path); err != nil {
		return err
	}
	dir := filepath.Dir(abs)

	tmp, err := os.CreateTemp(dir, ".quicktask-tmp-*")
	if err != nil {
		return fmt.Errorf("%w: create temp: %w", apperr.ErrFileWrite, err)
	}
	tmpName := tmp.Name()

	// Clean up on any failure path.
	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("%w: write temp: %w", apperr.ErrFileWrite, err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("%w: fsync: %w", apperr.ErrFileWrite, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close temp: %w", apperr.ErrFileWrite, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("%w: chmod: %w", apperr.ErrFileWrite, err)
	}
	if err := os.Rename(tmpName, abs); err != nil {
		return fmt.Errorf("%w %s: %w", apperr.ErrFileWrite, path, err)
	}
	success = true
	return nil
}
