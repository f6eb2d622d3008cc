package database

import (
	"errors"
	"fmt"
	"strings"

	"trimmers-api/migrations"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog"
)

// Direction selects which way migrations are applied.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// migrationLogger adapts zerolog to the migrate.Logger interface.
type migrationLogger struct {
	logger zerolog.Logger
}

func (l migrationLogger) Printf(format string, v ...any) {
	l.logger.Info().Msg(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l migrationLogger) Verbose() bool {
	return l.logger.GetLevel() <= zerolog.DebugLevel
}

// Migrate applies the embedded schema migrations to the PostgreSQL database at connString.
func Migrate(connString string, logger zerolog.Logger) error {
	return RunMigrations(connString, Up, logger)
}

// RunMigrations applies the embedded migrations in the given direction.
// An already up-to-date schema is not an error.
func RunMigrations(connString string, direction Direction, logger zerolog.Logger) error {
	if direction != Up && direction != Down {
		return fmt.Errorf("unknown migration direction: %s", direction)
	}

	logger = logger.With().Str("component", "migrate").Logger()

	m, err := newMigrate(connString)
	if err != nil {
		return err
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil || dbErr != nil {
			logger.Warn().AnErr("source_error", srcErr).AnErr("database_error", dbErr).Msg("failed to close migrator")
		}
	}()

	m.Log = migrationLogger{logger: logger}

	if direction == Up {
		err = m.Up()
	} else {
		err = m.Down()
	}

	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info().Str("direction", string(direction)).Msg("no migrations to apply")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to migrate %s: %w", direction, err)
	}

	logger.Info().Str("direction", string(direction)).Msg("migrations applied")

	return nil
}

func newMigrate(connString string) (*migrate.Migrate, error) {
	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, migrationURL(connString))
	if err != nil {
		return nil, fmt.Errorf("failed to create migrator: %w", err)
	}

	return m, nil
}

// migrationURL rewrites a postgres:// URL to the scheme registered by the pgx/v5 migrate driver.
func migrationURL(connString string) string {
	for _, scheme := range []string{"postgres://", "postgresql://"} {
		if rest, ok := strings.CutPrefix(connString, scheme); ok {
			return "pgx5://" + rest
		}
	}
	return connString
}
