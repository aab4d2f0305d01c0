// Package store persists the service configuration blob and the exchange history.
//
// Two implementations satisfy Store: DB (SQLite via mattn/go-sqlite3) and Memory.
package store

import (
	"context"
	"errors"

	"llmrouter/pkg/types"
)

// ServiceConfigKey is the well-known key holding the service configuration JSON blob.
const ServiceConfigKey = "llm-service-config"

// ErrNotFound is returned when no service configuration has been saved yet.
var ErrNotFound = errors.New("not found")

// ConfigStore loads and saves the whole service configuration at once.
type ConfigStore interface {
	LoadServiceConfig(ctx context.Context) (types.ServiceConfig, error)
	SaveServiceConfig(ctx context.Context, cfg types.ServiceConfig) error
}

// ExchangeStore keeps a bounded history of chat dispatches.
type ExchangeStore interface {
	RecordExchange(ctx context.Context, ex types.Exchange) error
	ListExchanges(ctx context.Context, limit int) ([]types.Exchange, error)
	PruneExchanges(ctx context.Context, keep int) (int64, error)
}

// Store is everything the manager persists.
type Store interface {
	ConfigStore
	ExchangeStore
	Close() error
}
