package store

import (
	"context"
	"database/sql"
	"fmt"

	"llmrouter/pkg/types"
)

// RecordExchange inserts one exchange.
func (db *DB) RecordExchange(ctx context.Context, ex types.Exchange) error {
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO exchange (id, created_at, endpoint, kind, attempts, ok, status, error_kind, latency_ms, reply)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		ex.ID,
		ex.CreatedAt.UTC(),
		ex.Endpoint,
		string(ex.Kind),
		ex.Attempts,
		ex.OK,
		ex.Status,
		ex.ErrorKind,
		ex.LatencyMS,
		ex.Reply,
	)
	if err != nil {
		return fmt.Errorf("insert exchange: %w", err)
	}
	return nil
}

// ListExchanges returns up to limit exchanges, newest first.
func (db *DB) ListExchanges(ctx context.Context, limit int) ([]types.Exchange, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, created_at, endpoint, kind, attempts, ok, status, error_kind, latency_ms, reply
		FROM exchange
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query exchanges: %w", err)
	}
	defer rows.Close()

	var out []types.Exchange
	for rows.Next() {
		var ex types.Exchange
		var kind string
		var status sql.NullInt64
		var errKind, reply sql.NullString
		var latency sql.NullInt64
		if err := rows.Scan(&ex.ID, &ex.CreatedAt, &ex.Endpoint, &kind, &ex.Attempts, &ex.OK, &status, &errKind, &latency, &reply); err != nil {
			return nil, fmt.Errorf("scan exchange: %w", err)
		}
		ex.Kind = types.BackendKind(kind)
		ex.Status = int(status.Int64)
		ex.ErrorKind = errKind.String
		ex.LatencyMS = latency.Int64
		ex.Reply = reply.String
		out = append(out, ex)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate exchanges: %w", err)
	}
	return out, nil
}

// PruneExchanges deletes all but the newest keep exchanges. keep <= 0 disables pruning.
func (db *DB) PruneExchanges(ctx context.Context, keep int) (int64, error) {
	if keep <= 0 {
		return 0, nil
	}
	res, err := db.conn.ExecContext(ctx, `
		DELETE FROM exchange WHERE rowid NOT IN (
			SELECT rowid FROM exchange ORDER BY created_at DESC, rowid DESC LIMIT ?
		)
	`, keep)
	if err != nil {
		return 0, fmt.Errorf("prune exchanges: %w", err)
	}
	return res.RowsAffected()
}
