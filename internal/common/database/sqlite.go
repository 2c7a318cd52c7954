// internal/common/database/sqlite.go
package database

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"nlp-dashboard/internal/common/config"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// SQLiteClient wraps a local SQLite database, used when no hosted store is configured.
type SQLiteClient struct {
	DB *sqlx.DB
}

// NewSQLite opens the database file at cfg.Path; ":memory:" is accepted for tests.
func NewSQLite(cfg config.SQLiteConfig) (*SQLiteClient, error) {
	path := strings.TrimSpace(cfg.Path)
	if path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	if path != ":memory:" {
		path = filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}

	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	// a single writer keeps ":memory:" databases on one connection
	db.SetMaxOpenConns(1)

	return &SQLiteClient{DB: db}, nil
}

// Ping tests the database connection
func (c *SQLiteClient) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

// Close closes the database connection
func (c *SQLiteClient) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
