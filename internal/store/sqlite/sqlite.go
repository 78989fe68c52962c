package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite3 driver

	"eog-rate/internal/attrs"
	"eog-rate/internal/logging"
)

// Default timeout for database operations
const defaultTimeout = 5 * time.Second

// schemaVersion is stored in the metadata table.
const schemaVersion = "1"

// Config holds sqlite backend options.
type Config struct {
	// Path is the database file. Its parent directory is created if needed.
	Path string `mapstructure:"path"`
}

// Backend is an attribute store backed by SQLite.
type Backend struct {
	db     *sql.DB
	dbPath string
}

// New opens (and if needed creates) the database at cfg.Path.
func New(ctx context.Context, cfg Config) (*Backend, error) {
	if cfg.Path == "" {
		return nil, errors.New("sqlite store: path is required")
	}
	dbPath := cfg.Path
	logging.Debug("Database path: %s", dbPath)

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// busy_timeout helps prevent "database is locked" errors when two
	// invocations touch the same database
	connStr := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000", dbPath)

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logging.Error("failed to close database after ping failure: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	b := &Backend{
		db:     db,
		dbPath: dbPath,
	}

	if err := b.initialize(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logging.Error("failed to close database after initialization failure: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to initialize database schema: %w", err)
	}

	logging.Debug("Database initialized successfully at %s", dbPath)
	return b, nil
}

func (b *Backend) initialize(ctx context.Context) error {
	schema := `
	-- One row per attribute of a file
	CREATE TABLE IF NOT EXISTS attributes (
		dir TEXT NOT NULL,
		name TEXT NOT NULL,
		key TEXT NOT NULL,
		value TEXT NOT NULL,
		updated_at INTEGER NOT NULL DEFAULT (strftime('%s', 'now')),
		PRIMARY KEY (dir, name, key)
	);

	CREATE INDEX IF NOT EXISTS idx_attributes_dir ON attributes(dir);

	-- Metadata table
	CREATE TABLE IF NOT EXISTS metadata (
		key TEXT PRIMARY KEY,
		value TEXT
	);
	`

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := b.db.ExecContext(ctx, schema); err != nil {
		return err
	}

	return b.runMigrations(ctx)
}

// runMigrations records the schema version on first use and refuses
// databases written by a newer schema.
func (b *Backend) runMigrations(ctx context.Context) error {
	version, err := b.GetMetadata(ctx, "schema_version")
	if errors.Is(err, sql.ErrNoRows) {
		logging.Info("Initializing attribute database schema version %s", schemaVersion)
		return b.SetMetadata(ctx, "schema_version", schemaVersion)
	}
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("unsupported schema version %q (expected %s)", version, schemaVersion)
	}
	return nil
}

// Name implements store.Backend.
func (b *Backend) Name() string {
	return "sqlite"
}

// ReadDir implements store.Backend.
func (b *Backend) ReadDir(ctx context.Context, dir string) (map[string]attrs.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := b.db.QueryContext(ctx,
		"SELECT name, key, value FROM attributes WHERE dir = ? ORDER BY name",
		dir,
	)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logging.Error("error closing rows: %v", err)
		}
	}()

	records := make(map[string]attrs.Record)
	for rows.Next() {
		var name, key, value string
		if err := rows.Scan(&name, &key, &value); err != nil {
			return nil, err
		}
		rec, ok := records[name]
		if !ok {
			rec = make(attrs.Record)
			records[name] = rec
		}
		rec[key] = value
	}

	return records, rows.Err()
}

// WriteFile implements store.Backend. The record is replaced in a single
// transaction.
func (b *Backend) WriteFile(ctx context.Context, dir, name string, rec attrs.Record) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				logging.Error("rollback failed: %v", rbErr)
			}
		}
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM attributes WHERE dir = ? AND name = ?", dir, name); err != nil {
		return err
	}

	for key, value := range rec {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO attributes (dir, name, key, value) VALUES (?, ?, ?, ?)",
			dir, name, key, value,
		); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// Close closes the database connection.
func (b *Backend) Close() error {
	return b.db.Close()
}
