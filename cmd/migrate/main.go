package main

import (
	"fmt"
	"os"

	"trimmers-api/internal/config"
	"trimmers-api/internal/database"

	"github.com/spf13/pflag"
)

const (
	directionFlag = "direction"
	dsnFlag       = "dsn"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	direction := pflag.StringP(directionFlag, "d", string(database.Up), "migration direction: up or down")
	dsn := pflag.String(dsnFlag, "", "PostgreSQL connection string (defaults to DB_* environment)")
	pflag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger := config.NewLogger(cfg.Logger)

	connString := *dsn
	if connString == "" {
		connString = cfg.Database.ConnectionString()
	}

	if err := database.RunMigrations(connString, database.Direction(*direction), logger); err != nil {
		return err
	}

	logger.Info().Str("direction", *direction).Msg("migrations applied")
	return nil
}
