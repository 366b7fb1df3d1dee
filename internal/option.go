package internal

import (
	"io"

	"github.com/starford/quicktask/internal/platform"
)

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config    *Config
	env       platform.Environment
	logOutput io.Writer
	version   string
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithEnvironment replaces the host environment (home directory and clock).
func WithEnvironment(env platform.Environment) Option {
	return func(a *application) {
		a.env = env
	}
}

// WithLogOutput sends structured logs to w.
func WithLogOutput(w io.Writer) Option {
	return func(a *application) {
		a.logOutput = w
	}
}

// WithVersion sets the version reported to MCP clients.
func WithVersion(v string) Option {
	return func(a *application) {
		a.version = v
	}
}
