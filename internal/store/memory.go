package store

import (
	"context"
	"sort"
	"sync"

	"llmrouter/pkg/types"
)

// Memory is a process-local Store.
type Memory struct {
	mu        sync.Mutex
	cfg       *types.ServiceConfig
	exchanges []types.Exchange
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory { return &Memory{} }

func (m *Memory) LoadServiceConfig(ctx context.Context) (types.ServiceConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cfg == nil {
		return types.ServiceConfig{}, ErrNotFound
	}
	return *m.cfg, nil
}

func (m *Memory) SaveServiceConfig(ctx context.Context, cfg types.ServiceConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cfg = &cfg
	return nil
}

func (m *Memory) RecordExchange(ctx context.Context, ex types.Exchange) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exchanges = append(m.exchanges, ex)
	return nil
}

func (m *Memory) ListExchanges(ctx context.Context, limit int) ([]types.Exchange, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := newestFirst(m.exchanges)
	if limit <= 0 {
		limit = 50
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *Memory) PruneExchanges(ctx context.Context, keep int) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if keep <= 0 || len(m.exchanges) <= keep {
		return 0, nil
	}
	kept := newestFirst(m.exchanges)[:keep]
	removed := int64(len(m.exchanges) - keep)
	m.exchanges = m.exchanges[:0]
	for i := len(kept) - 1; i >= 0; i-- {
		m.exchanges = append(m.exchanges, kept[i])
	}
	return removed, nil
}

func (m *Memory) Close() error { return nil }

// newestFirst copies and sorts by CreatedAt descending, later insertions first on ties.
func newestFirst(in []types.Exchange) []types.Exchange {
	out := make([]types.Exchange, len(in))
	for i := range in {
		out[i] = in[len(in)-1-i]
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}
