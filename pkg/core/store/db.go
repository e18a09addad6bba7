// Package store persists computed scenarios and scraped listings in
// PostgreSQL. The pool is a process-wide singleton configured from
// DATABASE_URL.
package store

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	pool    *pgxpool.Pool
	initErr error
	once    sync.Once
)

// poolConfig parses dbURL and sizes the pool for this workload: scenario
// saves and listing upserts are short single-row writes, so a small pool
// with bounded idle time is enough. DATABASE_MAX_CONNS overrides the cap.
func poolConfig(dbURL string) (*pgxpool.Config, error) {
	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	config.MaxConns = 8
	if v := os.Getenv("DATABASE_MAX_CONNS"); v != "" {
		n, convErr := strconv.Atoi(v)
		if convErr != nil || n <= 0 {
			return nil, fmt.Errorf("invalid DATABASE_MAX_CONNS %q", v)
		}
		config.MaxConns = int32(n)
	}
	config.MaxConnIdleTime = 5 * time.Minute

	return config, nil
}

// InitDB initializes the connection pool from the DATABASE_URL environment
// variable. Safe to call more than once; later calls return the first
// attempt's outcome.
func InitDB(ctx context.Context) error {
	once.Do(func() {
		dbURL := os.Getenv("DATABASE_URL")
		if dbURL == "" {
			initErr = fmt.Errorf("DATABASE_URL environment variable not set")
			return
		}

		config, err := poolConfig(dbURL)
		if err != nil {
			initErr = err
			return
		}

		pool, initErr = pgxpool.NewWithConfig(ctx, config)
	})
	return initErr
}

// GetPool returns the shared connection pool, or nil before InitDB.
func GetPool() *pgxpool.Pool {
	return pool
}

// Close closes the shared connection pool.
func Close() {
	if pool != nil {
		pool.Close()
	}
}
