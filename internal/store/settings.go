package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"llmrouter/pkg/types"
)

// LoadServiceConfig reads the configuration blob. ErrNotFound if it was never saved.
func (db *DB) LoadServiceConfig(ctx context.Context) (types.ServiceConfig, error) {
	var cfg types.ServiceConfig
	var raw string
	err := db.conn.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, ServiceConfigKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return cfg, ErrNotFound
	}
	if err != nil {
		return cfg, fmt.Errorf("query service config: %w", err)
	}
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return cfg, fmt.Errorf("decode service config: %w", err)
	}
	return cfg, nil
}

// SaveServiceConfig replaces the configuration blob wholesale.
func (db *DB) SaveServiceConfig(ctx context.Context, cfg types.ServiceConfig) error {
	b, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode service config: %w", err)
	}
	_, err = db.conn.ExecContext(ctx, `
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, ServiceConfigKey, string(b), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save service config: %w", err)
	}
	return nil
}
