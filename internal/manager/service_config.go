package manager

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"llmrouter/internal/store"
	"llmrouter/pkg/types"
)

// ServiceConfig returns the persisted configuration, or the seed when nothing was saved.
func (m *Manager) ServiceConfig(ctx context.Context) (types.ServiceConfig, error) {
	cfg, err := m.store.LoadServiceConfig(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return m.seed, nil
	}
	if err != nil {
		return types.ServiceConfig{}, fmt.Errorf("load service config: %w", err)
	}
	return cfg, nil
}

// SeedServiceConfig persists the seed if no configuration has been saved yet.
func (m *Manager) SeedServiceConfig(ctx context.Context) error {
	if m.seed.EndpointURL == "" {
		return nil
	}
	_, err := m.store.LoadServiceConfig(ctx)
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}
	m.log.Info().Str("endpoint", m.seed.EndpointURL).Msg("seeding service configuration")
	return m.store.SaveServiceConfig(ctx, m.seed)
}

// SaveServiceConfig validates and replaces the whole configuration. A key equal to
// types.RedactedSecret, as returned by a redacted read, keeps the current key.
func (m *Manager) SaveServiceConfig(ctx context.Context, cfg types.ServiceConfig) error {
	if cfg.APIKey == types.RedactedSecret {
		cur, err := m.ServiceConfig(ctx)
		if err != nil {
			return err
		}
		cfg.APIKey = cur.APIKey
	}
	cfg.EndpointURL = strings.TrimSpace(cfg.EndpointURL)
	cfg.ImageEndpointURL = strings.TrimSpace(cfg.ImageEndpointURL)
	if err := validateURL("endpointUrl", cfg.EndpointURL, true); err != nil {
		return err
	}
	if err := validateURL("imageEndpointUrl", cfg.ImageEndpointURL, false); err != nil {
		return err
	}
	if err := m.store.SaveServiceConfig(ctx, cfg); err != nil {
		return fmt.Errorf("save service config: %w", err)
	}
	m.log.Info().Str("endpoint", cfg.EndpointURL).Str("model", cfg.ModelName).Msg("service configuration saved")
	return nil
}

func validateURL(field, raw string, required bool) error {
	if raw == "" {
		if required {
			return ErrInvalidRequest(field + " is required")
		}
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidRequest(fmt.Sprintf("%s must be an absolute http(s) URL, got %q", field, raw))
	}
	return nil
}
