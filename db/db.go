// Package db opens the Postgres catalog store and applies its schema.
package db

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"portfolio-photo-sync/config"
	"portfolio-photo-sync/logging"
)

//go:embed schema.sql
var schemaSQL string

// Open connects to Postgres through the pgx stdlib driver and verifies the
// connection with a ping.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	conn, err := sql.Open("pgx", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logging.Info().Msg("✓ Database connection established successfully")
	return conn, nil
}

// Schema returns the catalog DDL.
func Schema() string {
	return schemaSQL
}

// EnsureSchema creates the users and photos tables when missing. Every
// statement is idempotent, so it is safe to run on each deploy.
func EnsureSchema(ctx context.Context, conn *sql.DB) error {
	if _, err := conn.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	logging.Info().Msg("✓ Catalog schema is up to date")
	return nil
}
