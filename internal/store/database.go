// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package store provides database access for OrchardLite: connection setup,
// schema migrations and the queries used by the service layer. MySQL is the
// production engine; SQLite serves local development and tests.
package store

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff"
	_ "github.com/go-sql-driver/mysql" // MySQL driver for database/sql
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite" // SQLite driver for database/sql
)

//go:embed migrations/mysql/*.sql migrations/sqlite/*.sql
var migrations embed.FS

// Driver names accepted by Open.
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// DBConfig holds database configuration options.
type DBConfig struct {
	// MaxOpenConns is the maximum number of open connections to the database.
	MaxOpenConns int
	// MaxIdleConns is the maximum number of connections in the idle connection pool.
	MaxIdleConns int
	// ConnMaxLifetime is the maximum amount of time a connection may be reused.
	ConnMaxLifetime time.Duration
	// ConnMaxIdleTime is the maximum amount of time a connection may be idle.
	ConnMaxIdleTime time.Duration
}

// DefaultDBConfig returns pool defaults for the given driver.
func DefaultDBConfig(driver string) DBConfig {
	if driver == DriverSQLite {
		// WAL allows concurrent readers but a single writer; writers wait on busy_timeout
		return DBConfig{
			MaxOpenConns:    8,
			MaxIdleConns:    4,
			ConnMaxLifetime: 30 * time.Minute,
			ConnMaxIdleTime: 5 * time.Minute,
		}
	}
	return DBConfig{
		MaxOpenConns:    25,
		MaxIdleConns:    10,
		ConnMaxLifetime: 5 * time.Minute,
		ConnMaxIdleTime: 2 * time.Minute,
	}
}

// Open opens a connection pool for driver and verifies it with a ping.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	return OpenWithConfig(ctx, driver, dsn, DefaultDBConfig(driver))
}

// OpenWithConfig opens a connection pool with a custom pool configuration.
func OpenWithConfig(ctx context.Context, driver, dsn string, cfg DBConfig) (*sql.DB, error) {
	if _, err := gooseDialect(driver); err != nil {
		return nil, err
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

// Connect opens the database, retrying at a fixed interval until it answers
// or ctx is cancelled.
func Connect(ctx context.Context, driver, dsn string, retryInterval time.Duration, logger *slog.Logger) (*sql.DB, error) {
	var db *sql.DB
	attempt := 0

	operation := func() error {
		attempt++
		logger.Info("connecting to database", "driver", driver, "attempt", attempt)
		conn, err := Open(ctx, driver, dsn)
		if err != nil {
			return err
		}
		db = conn
		return nil
	}

	notify := func(err error, next time.Duration) {
		logger.Warn("database not reachable, retrying", "driver", driver, "error", err, "retry_in", next)
	}

	b := backoff.WithContext(backoff.NewConstantBackOff(retryInterval), ctx)
	if err := backoff.RetryNotify(operation, b, notify); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("connecting to database: %w", ctxErr)
		}
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	logger.Info("database connected", "driver", driver, "attempts", attempt)
	return db, nil
}

// Migrate runs all pending database migrations for driver.
func Migrate(db *sql.DB, driver string) error {
	dialect, err := gooseDialect(driver)
	if err != nil {
		return err
	}

	goose.SetBaseFS(migrations)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("setting dialect: %w", err)
	}

	if err := goose.Up(db, "migrations/"+driver); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	return nil
}

func gooseDialect(driver string) (string, error) {
	switch driver {
	case DriverMySQL:
		return "mysql", nil
	case DriverSQLite:
		return "sqlite3", nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}
