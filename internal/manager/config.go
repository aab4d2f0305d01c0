package manager

import (
	"net/http"

	"github.com/rs/zerolog"

	"llmrouter/internal/router"
	"llmrouter/internal/store"
	"llmrouter/pkg/types"
)

// Defaults applied when corresponding ManagerConfig fields are unset.
const (
	defaultHistoryLimit = 500
)

// ManagerConfig encapsulates all tunables for Manager construction.
type ManagerConfig struct {
	Store      store.Store
	Dispatcher *router.Dispatcher
	Logger     *zerolog.Logger
	// HistoryLimit caps stored exchanges; negative disables pruning.
	HistoryLimit int
	// Seed is saved as the service configuration when none exists yet.
	Seed types.ServiceConfig
	// ProbeClient is used by Discover; nil uses a client with router.DefaultProbeTimeout.
	ProbeClient *http.Client
}

// NewWithConfig constructs a Manager from ManagerConfig.
func NewWithConfig(cfg ManagerConfig) *Manager {
	m := newManager()
	m.store = cfg.Store
	if m.store == nil {
		m.store = store.NewMemory()
	}
	m.disp = cfg.Dispatcher
	if m.disp == nil {
		m.disp = router.New()
	}
	if cfg.Logger != nil {
		m.log = *cfg.Logger
	}
	if cfg.HistoryLimit == 0 {
		m.historyLimit = defaultHistoryLimit
	} else {
		m.historyLimit = cfg.HistoryLimit
	}
	m.seed = cfg.Seed
	m.probeClient = cfg.ProbeClient
	return m
}
