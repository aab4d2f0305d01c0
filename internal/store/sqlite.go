package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"llmrouter/internal/common/fsutil"
)

// DB is the SQLite-backed Store.
type DB struct {
	conn *sql.DB
}

// Open opens (creating if needed) the database at path and initialises the schema.
// A leading ~ is expanded; ":memory:" opens a private in-memory database.
func Open(path string) (*DB, error) {
	if path != ":memory:" {
		p, err := fsutil.ExpandHome(path)
		if err != nil {
			return nil, err
		}
		if err := fsutil.EnsureParentDir(p); err != nil {
			return nil, err
		}
		path = p
	}
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One connection keeps ":memory:" databases shared and serialises writers.
	conn.SetMaxOpenConns(1)

	db := &DB{conn: conn}
	if err := db.initSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return db, nil
}

func (db *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS exchange (
		id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL,
		endpoint TEXT NOT NULL,
		kind TEXT NOT NULL,
		attempts INTEGER NOT NULL,
		ok BOOLEAN NOT NULL,
		status INTEGER,
		error_kind TEXT,
		latency_ms INTEGER,
		reply TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_exchange_created_at ON exchange(created_at);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
