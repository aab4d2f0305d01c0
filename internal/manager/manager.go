package manager

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"llmrouter/internal/router"
	"llmrouter/internal/store"
	"llmrouter/pkg/types"
)

// States reported by Status.
const (
	StateReady        = "ready"
	StateUnconfigured = "unconfigured"
)

// Manager serves chat, configuration and history requests for the HTTP and CLI layers.
type Manager struct {
	store        store.Store
	disp         *router.Dispatcher
	log          zerolog.Logger
	historyLimit int
	seed         types.ServiceConfig
	probeClient  *http.Client
	startTime    time.Time
	newID        func() string
	now          func() time.Time

	mu        sync.Mutex
	chats     uint64
	failures  uint64
	fallbacks uint64
	lastErr   string
}

func newManager() *Manager {
	return &Manager{
		log:       zerolog.Nop(),
		startTime: time.Now(),
		newID:     func() string { return uuid.NewString() },
		now:       time.Now,
	}
}

// Ready reports whether an endpoint is configured.
func (m *Manager) Ready() bool {
	cfg, err := m.ServiceConfig(context.Background())
	return err == nil && cfg.EndpointURL != ""
}

// Status summarises the configuration and dispatch counters.
func (m *Manager) Status() types.StatusResponse {
	now := m.now()
	resp := types.StatusResponse{
		State:          StateUnconfigured,
		UptimeSeconds:  int64(now.Sub(m.startTime).Seconds()),
		ServerTimeUnix: now.Unix(),
	}
	if cfg, err := m.ServiceConfig(context.Background()); err == nil && cfg.EndpointURL != "" {
		resp.State = StateReady
		resp.EndpointURL = cfg.EndpointURL
		resp.Kind = router.Classify(cfg.EndpointURL)
		resp.Model = cfg.ModelName
	}
	m.mu.Lock()
	resp.ChatsTotal = m.chats
	resp.FailuresTotal = m.failures
	resp.FallbacksTotal = m.fallbacks
	resp.LastError = m.lastErr
	m.mu.Unlock()
	return resp
}

// Close releases the underlying store.
func (m *Manager) Close() error { return m.store.Close() }

func (m *Manager) observe(res router.Result) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chats++
	if len(res.Attempts) > 1 {
		m.fallbacks++
	}
	if res.Err != nil {
		m.failures++
		m.lastErr = res.Err.Detail
	}
}
