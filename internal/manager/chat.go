package manager

import (
	"context"
	"fmt"
	"time"

	"llmrouter/internal/router"
	"llmrouter/pkg/types"
)

// ChatResult is the outcome of one Chat call.
type ChatResult struct {
	router.Result
	ExchangeID string
}

// Response converts the result to its API representation.
func (r ChatResult) Response() types.ChatResponse {
	resp := types.ChatResponse{
		OK:         r.OK(),
		Text:       r.Text,
		Empty:      r.Empty,
		Display:    r.String(),
		Kind:       r.Kind,
		Attempts:   len(r.Attempts),
		ExchangeID: r.ExchangeID,
	}
	if r.Err != nil {
		resp.Error = &types.ResultError{Kind: string(r.Err.Kind), Status: r.Err.Status, Detail: r.Err.Detail}
	}
	return resp
}

// Chat dispatches turns to the configured endpoint and records the exchange. Dispatch
// failures are carried in the result; the returned error is reserved for invalid input
// and failures to load the service configuration. Recording is best-effort: when it
// fails the error is logged and the result has no ExchangeID.
func (m *Manager) Chat(ctx context.Context, turns []types.ChatTurn) (ChatResult, error) {
	if err := validateTurns(turns); err != nil {
		return ChatResult{}, err
	}
	cfg, err := m.ServiceConfig(ctx)
	if err != nil {
		return ChatResult{}, err
	}
	res := m.disp.Send(ctx, turns, cfg)
	m.observe(res)

	ex := exchangeFrom(m.newID(), m.now().UTC(), cfg.EndpointURL, res)
	if err := m.store.RecordExchange(ctx, ex); err != nil {
		m.log.Error().Err(err).Str("exchange_id", ex.ID).Msg("record exchange failed")
		return ChatResult{Result: res}, nil
	}
	if m.historyLimit > 0 {
		if n, err := m.store.PruneExchanges(ctx, m.historyLimit); err != nil {
			m.log.Warn().Err(err).Msg("prune exchanges failed")
		} else if n > 0 {
			m.log.Debug().Int64("pruned", n).Msg("pruned exchange history")
		}
	}
	ev := m.log.Info()
	if !res.OK() {
		ev = m.log.Warn().Str("error_kind", string(res.Err.Kind))
	}
	ev.Str("exchange_id", ex.ID).Str("kind", string(res.Kind)).Int("attempts", len(res.Attempts)).
		Dur("latency", res.Duration).Msg("chat dispatched")
	return ChatResult{Result: res, ExchangeID: ex.ID}, nil
}

// TestConnection sends the canned connection test prompt. When override is non-nil it is
// used instead of the stored configuration and nothing is persisted.
func (m *Manager) TestConnection(ctx context.Context, override *types.ServiceConfig) (router.ConnectionTest, error) {
	var cfg types.ServiceConfig
	if override != nil {
		cfg = *override
	} else {
		var err error
		if cfg, err = m.ServiceConfig(ctx); err != nil {
			return router.ConnectionTest{}, err
		}
	}
	ct := m.disp.TestConnection(ctx, cfg)
	m.log.Info().Str("endpoint", cfg.EndpointURL).Bool("success", ct.Success).Msg("connection test")
	return ct, nil
}

// Classify reports how url would be routed. The completion-only flag refers to the
// currently configured model.
func (m *Manager) Classify(ctx context.Context, url string) types.ClassifyResponse {
	resp := types.ClassifyResponse{URL: url, Kind: router.Classify(url)}
	if steps := router.Plan(url); len(steps) > 1 {
		resp.FallbackURL = steps[1].URL
	}
	if cfg, err := m.ServiceConfig(ctx); err == nil {
		resp.CompletionOnly = m.disp.CompletionOnly(cfg.ModelName)
	}
	return resp
}

func validateTurns(turns []types.ChatTurn) error {
	if len(turns) == 0 {
		return ErrInvalidRequest("turns must not be empty")
	}
	for i, t := range turns {
		if !t.Role.Valid() {
			return ErrInvalidRequest(fmt.Sprintf("turns[%d]: unknown role %q", i, t.Role))
		}
	}
	return nil
}

func exchangeFrom(id string, at time.Time, endpoint string, res router.Result) types.Exchange {
	ex := types.Exchange{
		ID:        id,
		CreatedAt: at,
		Endpoint:  endpoint,
		Kind:      res.Kind,
		Attempts:  len(res.Attempts),
		OK:        res.OK(),
		Status:    res.Status(),
		LatencyMS: res.Duration.Milliseconds(),
		Reply:     res.String(),
	}
	if res.Err != nil {
		ex.ErrorKind = string(res.Err.Kind)
	}
	return ex
}
