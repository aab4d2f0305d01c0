package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"llmrouter/internal/manager"
	"llmrouter/internal/router"
	"llmrouter/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Chat(ctx context.Context, turns []types.ChatTurn) (manager.ChatResult, error)
	TestConnection(ctx context.Context, override *types.ServiceConfig) (router.ConnectionTest, error)
	ServiceConfig(ctx context.Context) (types.ServiceConfig, error)
	SaveServiceConfig(ctx context.Context, cfg types.ServiceConfig) error
	Classify(ctx context.Context, url string) types.ClassifyResponse
	History(ctx context.Context, limit int) ([]types.Exchange, error)
	Discover(ctx context.Context, hosts []string) []types.DiscoveredBackend
	Status() types.StatusResponse
	Ready() bool
}

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	r.Use(middleware.Compress(5))
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
			ExposedHeaders: []string{"X-Request-Id"},
			MaxAge:         300,
		}))
	}
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	h := &handlers{svc: svc}
	r.Route("/v1", func(r chi.Router) {
		r.Post("/chat", h.chat)
		r.Post("/connection-test", h.connectionTest)
		r.Get("/config", h.getConfig)
		r.Put("/config", h.putConfig)
		r.Get("/classify", h.classify)
		r.Get("/history", h.history)
		r.Get("/discover", h.discover)
	})

	r.Get("/status", h.status)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("unconfigured"))
	})

	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)
	return r
}
