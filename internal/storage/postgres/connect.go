package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratep "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file" // nolint:golint
	_ "github.com/lib/pq"                                // nolint:golint
)

// Options ...
// nolint:lll
type Options struct {
	Postgres                   string `long:"postgres" env:"POSTGRES" default:"host=localhost port=5432 user=postgres password=root sslmode=disable" description:"postgres dsn"`
	PostgresMaxOpenConnections int    `long:"postgres.max_open_connections" env:"POSTGRES_MAX_OPEN_CONNECTIONS" default:"0" description:"postgres maximal open connections count, 0 means unlimited"`
	PostgresMaxIdleConnections int    `long:"postgres.max_idle_connections" env:"POSTGRES_MAX_IDLE_CONNECTIONS" default:"5" description:"postgres maximal idle connections count"`
	PostgresMigrations         string `long:"postgres.migrations" env:"POSTGRES_MIGRATIONS" default:"scripts/migrations/postgres" description:"postgres migrations directory"`
}

// Connect opens postgres connection and migrates database up to the latest version.
func Connect(ctx context.Context, o Options) (*sql.DB, error) {
	db, err := sql.Open("postgres", o.Postgres)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres connection: %w", err)
	}
	db.SetMaxOpenConns(o.PostgresMaxOpenConnections)
	db.SetMaxIdleConns(o.PostgresMaxIdleConnections)

	if err := db.PingContext(ctx); err != nil {
		db.Close() // nolint
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	if err := migrateUp(db, o.PostgresMigrations); err != nil {
		db.Close() // nolint
		return nil, err
	}

	return db, nil
}

func migrateUp(db *sql.DB, dir string) error {
	driver, err := migratep.WithInstance(db, &migratep.Config{})
	if err != nil {
		return fmt.Errorf("failed to create database migrate driver: %w", err)
	}

	migrator, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", dir), "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	switch v, d, err := migrator.Version(); {
	case err == nil:
		log.Infof("database version %d with dirty state %t", v, d)
	case errors.Is(err, migrate.ErrNilVersion):
		log.Info("database version: nil")
	default:
		return fmt.Errorf("failed to get version: %w", err)
	}

	switch err := migrator.Up(); {
	case err == nil:
		log.Info("database was migrated")
	case errors.Is(err, migrate.ErrNoChange):
		log.Info("database is up-to-date")
	default:
		return fmt.Errorf("failed to migrate db: %w", err)
	}

	return nil
}
