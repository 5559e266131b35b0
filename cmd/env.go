package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/vizlearn/internal/config"
	"github.com/abhisek/vizlearn/internal/logging"
	"github.com/abhisek/vizlearn/internal/progress"
	"github.com/abhisek/vizlearn/internal/storage"
	"github.com/abhisek/vizlearn/internal/store"
	"github.com/abhisek/vizlearn/internal/store/rediskv"
)

// env holds the dependencies shared by every command.
type env struct {
	cfg      config.Config
	logger   *slog.Logger
	storage  *storage.Adapter
	progress *progress.Store
	closers  []func() error
}

// openEnv resolves the configuration, then opens the logger, the storage
// backend and the progress store. Callers must Close the result.
func openEnv(cmd *cobra.Command) (*env, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Resolve(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	var o config.Overrides
	o.Backend, _ = cmd.Flags().GetString("backend")
	o.DBPath, _ = cmd.Flags().GetString("db")
	cfg.Apply(o)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger, closeLog, err := logging.Open(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	e := &env{cfg: cfg, logger: logger, closers: []func() error{closeLog}}

	// A nil backend leaves the adapter on its memory fallback.
	backend, err := e.openBackend()
	if err != nil {
		// Progress still works for this run, it just is not saved.
		logger.Warn("durable storage unavailable", "backend", cfg.Backend, "err", err)
		fmt.Fprintln(cmd.ErrOrStderr(), "Storage unavailable:", err)
		fmt.Fprintln(cmd.ErrOrStderr(), "Progress will not be saved.")
	}

	loc, err := cfg.Location()
	if err != nil {
		e.Close()
		return nil, err
	}

	e.storage = storage.New(backend, nil,
		storage.WithRetry(cfg.StorageRetry()), storage.WithLogger(logger))
	e.progress = progress.New(e.storage,
		progress.WithLocation(loc), progress.WithLogger(logger))
	return e, nil
}

// openBackend opens the configured backend. The memory backend is a
// healthy durable store that lives only as long as the process.
func (e *env) openBackend() (storage.Backend, error) {
	switch e.cfg.Backend {
	case config.BackendMemory:
		return storage.NewMemory(), nil

	case config.BackendRedis:
		rc := e.cfg.Redis
		s := rediskv.Dial(rc.Addr, rc.Password, rc.DB, rc.Prefix)
		e.closers = append(e.closers, s.Close)
		return s, nil

	default:
		dbPath, err := resolveDBPath(e.cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
		s, err := store.Open(dbPath)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		e.closers = append(e.closers, s.Close)
		return s, nil
	}
}

// resolveDBPath returns the configured database path, or the default XDG
// path when none is set.
func resolveDBPath(p string) (string, error) {
	if p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// Close releases the backend and the log file, last opened first.
func (e *env) Close() error {
	var errs []error
	for i := len(e.closers) - 1; i >= 0; i-- {
		errs = append(errs, e.closers[i]())
	}
	return errors.Join(errs...)
}
