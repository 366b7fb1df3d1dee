// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/starford/quicktask/internal/api"
	"github.com/starford/quicktask/internal/history"
	"github.com/starford/quicktask/internal/mcpserver"
	"github.com/starford/quicktask/internal/models"
	"github.com/starford/quicktask/internal/platform"
	"github.com/starford/quicktask/internal/sse"
	"github.com/starford/quicktask/internal/taskservice"
	"github.com/starford/quicktask/internal/vault"
)

// App holds the wired service for one CLI invocation.
type App struct {
	Config  *Config
	Logger  *slog.Logger
	Service *taskservice.Service

	history *history.DB
}

// Close releases the history database, if open.
func (a *App) Close() error {
	if a.history == nil {
		return nil
	}
	return a.history.Close()
}

// Open builds the application without starting any server. Logs go to
// stderr unless WithLogOutput says otherwise.
func Open(opts ...Option) (*App, error) {
	a, err := newApplication(opts)
	if err != nil {
		return nil, err
	}
	return a.open(nil)
}

func newApplication(opts []Option) (*application, error) {
	a := &application{
		env:       platform.System{},
		logOutput: os.Stderr,
		version:   "dev",
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.config == nil {
		return nil, fmt.Errorf("config is required")
	}
	return a, nil
}

func (a *application) open(notifier taskservice.Notifier) (*App, error) {
	cfg := a.config

	logger := slog.New(slog.NewJSONHandler(a.logOutput, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	svcOpts := []taskservice.Option{
		taskservice.WithLogger(logger),
		taskservice.WithRegistryPath(cfg.Obsidian.RegistryPath),
	}
	if notifier != nil {
		svcOpts = append(svcOpts, taskservice.WithNotifier(notifier))
	}

	app := &App{Config: cfg, Logger: logger}
	if cfg.History.Enabled {
		if err := os.MkdirAll(filepath.Dir(cfg.History.Path), 0o755); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
		db, err := history.Open(cfg.History.Path)
		if err != nil {
			return nil, fmt.Errorf("init history: %w", err)
		}
		app.history = db
		svcOpts = append(svcOpts, taskservice.WithHistory(db))
	}

	app.Service = taskservice.New(a.env, svcOpts...)
	return app, nil
}

// ServeMCP runs the MCP server on stdin/stdout until the client disconnects.
func ServeMCP(_ context.Context, opts ...Option) error {
	a, err := newApplication(opts)
	if err != nil {
		return err
	}
	app, err := a.open(nil)
	if err != nil {
		return err
	}
	defer app.Close()

	app.Logger.Info("MCP server starting", slog.String("version", a.version))
	return mcpserver.New(app.Service, a.version).ServeStdio()
}

// Run starts the HTTP server with the given options.
func Run(ctx context.Context, opts ...Option) error {
	a, err := newApplication(append([]Option{WithLogOutput(os.Stdout)}, opts...))
	if err != nil {
		return err
	}

	// SSE broker.
	broker := sse.NewBroker(2 * time.Second)
	defer broker.Close()

	app, err := a.open(broker)
	if err != nil {
		return err
	}
	defer app.Close()

	cfg := app.Config
	logger := app.Logger
	svc := app.Service

	registryPath, regErr := svc.RegistryPath()
	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("registry_path", registryPath),
		slog.Bool("history", cfg.History.Enabled),
		slog.String("log_level", cfg.App.LogLevel.String()))

	apiRouter := api.NewRouter(svc, cfg.Auth.AuthEnabled(), cfg.Auth.Token, broker)

	// Build chi router.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		writeStatus(w, http.StatusOK, "ok")
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		if _, err := svc.RegistryPath(); err != nil {
			writeStatus(w, http.StatusServiceUnavailable, "registry unresolvable")
			return
		}
		writeStatus(w, http.StatusOK, "ok")
	})

	// Mount API routes under /api.
	r.Mount("/api", apiRouter)

	httpServer := &http.Server{
		Addr:              cfg.App.HTTP.Address(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	// Republish the vault list whenever Obsidian rewrites its registry.
	if regErr != nil {
		logger.Warn("registry watcher disabled", slog.String("error", regErr.Error()))
	} else {
		g.Go(func() error {
			err := vault.Watch(gCtx, registryPath, logger, func() {
				vaults, err := svc.ListVaults(gCtx)
				if err != nil {
					logger.Warn("vault list refresh failed", slog.String("error", err.Error()))
					vaults = []models.Vault{}
				}
				broker.PublishVaultsChanged(vaults)
			})
			if err != nil {
				logger.Warn("registry watcher stopped", slog.String("error", err.Error()))
			}
			return nil
		})
	}

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}
		return errShutdown
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errShutdown) {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// errShutdown cancels the group so the watcher exits once the server stops.
var errShutdown = errors.New("shutdown")

func writeStatus(w http.ResponseWriter, code int, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = fmt.Fprintf(w, `{"status":%q}`, status)
}
