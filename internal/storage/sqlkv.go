package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"hanzirecall/internal/config"
)

// SQLKV is a key-value store backed by a SQL database. The dialect handles
// driver differences (placeholders, upsert form, connection settings).
type SQLKV struct {
	db      *sql.DB
	dialect Dialect
}

// Open creates and configures the store connection based on config and
// ensures the key-value table exists.
func Open(cfg *config.Config) (*SQLKV, error) {
	var dialect Dialect
	var dialectConfig DialectConfig

	switch strings.ToLower(cfg.DatabaseType) {
	case "postgres", "postgresql":
		dialect = NewPostgresDialect()
		dialectConfig = DialectConfig{URL: cfg.DatabaseURL}
	case "mysql":
		dialect = NewMySQLDialect()
		dialectConfig = DialectConfig{URL: cfg.DatabaseURL}
	case "sqlite", "sqlite3", "":
		dialect = NewSQLiteDialect()
		dialectConfig = DialectConfig{Path: cfg.DatabasePath}
	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.DatabaseType)
	}

	db, err := sql.Open(dialect.DriverName(), dialect.DSN(dialectConfig))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Apply dialect-specific configuration
	if err := dialect.ConfigureConnection(db); err != nil {
		return nil, fmt.Errorf("failed to configure connection: %w", err)
	}

	kv := &SQLKV{db: db, dialect: dialect}
	if err := kv.ensureSchema(); err != nil {
		return nil, fmt.Errorf("failed to create key-value table: %w", err)
	}

	return kv, nil
}

// ensureSchema creates the key-value table if it doesn't exist
func (s *SQLKV) ensureSchema() error {
	_, err := s.db.Exec(s.dialect.CreateTableQuery())
	return err
}

// Get returns the value for key and whether the key exists.
func (s *SQLKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	query := s.dialect.RewriteQuery("SELECT entry_value FROM kv_entries WHERE entry_key = ?")

	var value string
	err := s.db.QueryRowContext(ctx, query, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read key %q: %w", key, err)
	}

	return []byte(value), true, nil
}

// Set writes the full value for key, replacing any previous value.
func (s *SQLKV) Set(ctx context.Context, key string, value []byte) error {
	query := s.dialect.RewriteQuery(s.dialect.UpsertQuery())

	if _, err := s.db.ExecContext(ctx, query, key, string(value)); err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (s *SQLKV) Delete(ctx context.Context, key string) error {
	query := s.dialect.RewriteQuery("DELETE FROM kv_entries WHERE entry_key = ?")

	if _, err := s.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("failed to delete key %q: %w", key, err)
	}
	return nil
}

// Close closes the database connection
func (s *SQLKV) Close() error {
	return s.db.Close()
}
