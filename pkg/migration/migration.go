// Package migration applies the SQL files under migrations/ with golang-migrate.
package migration

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Config holds migration configuration
type Config struct {
	MigrationsPath string
	DatabaseURL    string
	Logger         *slog.Logger
}

// Runner wraps a golang-migrate instance that is opened per call.
type Runner struct {
	config Config
	logger *slog.Logger
}

func NewRunner(config Config) *Runner {
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}
	return &Runner{config: config, logger: logger.With("component", "migration")}
}

// Up applies all pending migrations. ErrNoChange is not an error.
func (r *Runner) Up() error {
	return r.run("up", func(m *migrate.Migrate) error { return m.Up() })
}

// Down rolls back a single step.
func (r *Runner) Down() error {
	return r.run("down", func(m *migrate.Migrate) error { return m.Steps(-1) })
}

// Force sets the recorded version without running anything. It is the
// manual way out of a dirty state.
func (r *Runner) Force(version int) error {
	r.logger.Warn("forcing migration version", "version", version)
	return r.run("force", func(m *migrate.Migrate) error { return m.Force(version) })
}

// Version returns the applied version; (0, false, nil) on a fresh database.
func (r *Runner) Version() (version uint, dirty bool, err error) {
	err = r.with(func(m *migrate.Migrate) error {
		var verr error
		version, dirty, verr = m.Version()
		if errors.Is(verr, migrate.ErrNilVersion) {
			return nil
		}
		return verr
	})
	if err != nil {
		return 0, false, fmt.Errorf("failed to get version: %w", err)
	}
	return version, dirty, nil
}

func (r *Runner) run(op string, fn func(*migrate.Migrate) error) error {
	err := r.with(fn)
	if errors.Is(err, migrate.ErrNoChange) {
		r.logger.Info("no migration changes", "op", op)
		return nil
	}
	if err != nil {
		return fmt.Errorf("migration %s failed: %w", op, err)
	}
	r.logger.Info("migration applied", "op", op)
	return nil
}

func (r *Runner) with(fn func(*migrate.Migrate) error) error {
	m, err := migrate.New("file://"+r.config.MigrationsPath, r.config.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialize migrate: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil || dbErr != nil {
			r.logger.Warn("failed to close migrate", "source_error", srcErr, "db_error", dbErr)
		}
	}()
	return fn(m)
}

// AutoMigrate runs pending migrations at startup and refuses to continue
// from a dirty state.
func AutoMigrate(dbURL, migrationsPath string, logger *slog.Logger) error {
	runner := NewRunner(Config{
		MigrationsPath: migrationsPath,
		DatabaseURL:    dbURL,
		Logger:         logger,
	})

	from, dirty, err := runner.Version()
	if err != nil {
		return err
	}
	if dirty {
		return fmt.Errorf("database in dirty state at version %d", from)
	}

	if err := runner.Up(); err != nil {
		return err
	}

	to, _, err := runner.Version()
	if err != nil {
		return err
	}
	runner.logger.Info("migrations complete", "from_version", from, "to_version", to)
	return nil
}
