// Package postgres provides a Postgres-backed implementation of the
// storage.Store interface using the pgx database/sql driver.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
	"github.com/pressly/goose/v3"

	"github.com/mmynk/chamaa/internal/storage"
	"github.com/mmynk/chamaa/internal/storage/sqlkv"
)

// Compile-time contract assertion.
var _ storage.Store = (*PostgresStore)(nil)

const defaultDSN = "postgres://localhost/chamaa?sslmode=disable"

//go:embed migrations/*.sql
var migrations embed.FS

// PostgresStore implements storage.Store on a Postgres database.
type PostgresStore struct {
	*sqlkv.Store
}

// New opens the database at dsn (falls back to a local default), verifies
// the connection and applies migrations.
func New(ctx context.Context, dsn string) (*PostgresStore, error) {
	if dsn == "" {
		dsn = defaultDSN
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &PostgresStore{Store: sqlkv.NewStore(db, sqlkv.Postgres)}, nil
}

func runMigrations(db *sql.DB) error {
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	return nil
}
