// Package storage defines the vault file-system abstraction used to read
// and rewrite daily notes.
package storage

// Provider is the interface for vault file operations.
type Provider interface {
	// Root returns the absolute vault directory.
	Root() string
	// EnsureParent creates the directories leading to path (relative to vault root).
	EnsureParent(path string) error
	// Read returns the raw bytes of the file at path (relative to vault root).
	Read(path string) ([]byte, error)
	// Write atomically replaces path (relative to vault root) with content,
	// creating parent directories as needed.
	Write(path string, content []byte) error
}
