// Package platform supplies the process-wide facts that discovery and
// note location depend on, so both can be driven from tests.
package platform

import (
	"time"

	"github.com/mitchellh/go-homedir"
)

// Environment provides the user's home directory and the current time.
type Environment interface {
	HomeDir() (string, error)
	Now() time.Time
}

// System is the Environment of the running process.
type System struct{}

// HomeDir returns the current user's home directory.
func (System) HomeDir() (string, error) {
	return homedir.Dir()
}

// Now returns the local wall-clock time.
func (System) Now() time.Time {
	return time.Now()
}

// Fixed is an Environment with a pinned home directory and clock.
type Fixed struct {
	Home string
	Time time.Time
}

// HomeDir returns the pinned home directory.
func (f Fixed) HomeDir() (string, error) {
	return f.Home, nil
}

// Now returns the pinned time.
func (f Fixed) Now() time.Time {
	return f.Time
}
