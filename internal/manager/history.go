package manager

import (
	"context"
	"fmt"

	"llmrouter/internal/router"
	"llmrouter/pkg/types"
)

const defaultHistoryPage = 50

// History returns up to limit exchanges, newest first.
func (m *Manager) History(ctx context.Context, limit int) ([]types.Exchange, error) {
	if limit < 0 {
		return nil, ErrInvalidRequest("limit must not be negative")
	}
	if limit == 0 {
		limit = defaultHistoryPage
	}
	out, err := m.store.ListExchanges(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list exchanges: %w", err)
	}
	if out == nil {
		out = []types.Exchange{}
	}
	return out, nil
}

// Discover probes hosts for local inference servers.
func (m *Manager) Discover(ctx context.Context, hosts []string) []types.DiscoveredBackend {
	found := router.Discover(ctx, m.probeClient, hosts)
	m.log.Debug().Int("found", len(found)).Msg("discovery finished")
	if found == nil {
		found = []types.DiscoveredBackend{}
	}
	return found
}
