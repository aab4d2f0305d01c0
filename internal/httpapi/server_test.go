package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"llmrouter/internal/manager"
	"llmrouter/internal/router"
	"llmrouter/pkg/types"
)

type mockService struct {
	chatRes  manager.ChatResult
	chatErr  error
	gotTurns []types.ChatTurn
	ct       router.ConnectionTest
	gotOver  *types.ServiceConfig
	cfg      types.ServiceConfig
	saveErr  error
	history  []types.Exchange
	gotLimit int
	gotHosts []string
	discover []types.DiscoveredBackend
	status   types.StatusResponse
	ready    bool
}

func (m *mockService) Chat(ctx context.Context, turns []types.ChatTurn) (manager.ChatResult, error) {
	m.gotTurns = turns
	return m.chatRes, m.chatErr
}

func (m *mockService) TestConnection(ctx context.Context, override *types.ServiceConfig) (router.ConnectionTest, error) {
	m.gotOver = override
	return m.ct, nil
}

func (m *mockService) ServiceConfig(ctx context.Context) (types.ServiceConfig, error) {
	return m.cfg, nil
}

func (m *mockService) SaveServiceConfig(ctx context.Context, cfg types.ServiceConfig) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.cfg = cfg
	return nil
}

func (m *mockService) Classify(ctx context.Context, url string) types.ClassifyResponse {
	return types.ClassifyResponse{URL: url, Kind: router.Classify(url), FallbackURL: router.FallbackURL(url)}
}

func (m *mockService) History(ctx context.Context, limit int) ([]types.Exchange, error) {
	m.gotLimit = limit
	return m.history, nil
}

func (m *mockService) Discover(ctx context.Context, hosts []string) []types.DiscoveredBackend {
	m.gotHosts = hosts
	return m.discover
}

func (m *mockService) Status() types.StatusResponse { return m.status }
func (m *mockService) Ready() bool                  { return m.ready }

func postJSON(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestChat_OK(t *testing.T) {
	svc := &mockService{chatRes: manager.ChatResult{
		Result:     router.Result{Text: "hello there", Kind: types.KindOllama, Attempts: []router.Attempt{{Status: 200}}},
		ExchangeID: "ex-1",
	}}
	w := postJSON(t, NewMux(svc), "/v1/chat", `{"turns":[{"role":"user","content":"hi"}]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var body types.ChatResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if !body.OK || body.Text != "hello there" || body.Display != "hello there" || body.ExchangeID != "ex-1" || body.Attempts != 1 {
		t.Fatalf("unexpected body: %+v", body)
	}
	if got := w.Header().Get("X-Exchange-ID"); got != "ex-1" {
		t.Fatalf("X-Exchange-ID=%q", got)
	}
	if len(svc.gotTurns) != 1 || svc.gotTurns[0].Role != types.RoleUser {
		t.Fatalf("turns not forwarded: %+v", svc.gotTurns)
	}
}

func TestChat_DispatchFailureIs200(t *testing.T) {
	svc := &mockService{chatRes: manager.ChatResult{Result: router.Result{
		Err:  &router.Error{Kind: router.ErrHTTPStatus, Status: 500, Detail: "HTTP 500: boom"},
		Kind: types.KindMistralCloud,
	}}}
	w := postJSON(t, NewMux(svc), "/v1/chat", `{"turns":[{"role":"user","content":"hi"}]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var body types.ChatResponse
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body.OK || body.Error == nil || body.Error.Kind != "http_status" || body.Error.Status != 500 {
		t.Fatalf("unexpected body: %+v", body)
	}
	if body.Display != "Error: HTTP 500: boom" {
		t.Fatalf("display=%q", body.Display)
	}
}

func TestChat_EmptyEnvelope(t *testing.T) {
	svc := &mockService{chatRes: manager.ChatResult{Result: router.Result{Empty: true}}}
	w := postJSON(t, NewMux(svc), "/v1/chat", `{"turns":[{"role":"user","content":"hi"}]}`)
	var body types.ChatResponse
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if !body.OK || !body.Empty || body.Display != router.NoResponseText {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestChat_RequestValidation(t *testing.T) {
	h := NewMux(&mockService{})

	req := httptest.NewRequest(http.MethodPost, "/v1/chat", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("want 415, got %d", w.Code)
	}

	if w := postJSON(t, h, "/v1/chat", `{"turns":[]}`); w.Code != http.StatusBadRequest {
		t.Fatalf("want 400 for missing turns, got %d", w.Code)
	}
	if w := postJSON(t, h, "/v1/chat", `{"turns":`); w.Code != http.StatusBadRequest {
		t.Fatalf("want 400 for bad json, got %d", w.Code)
	}
}

func TestChat_ServiceErrorMapping(t *testing.T) {
	svc := &mockService{chatErr: manager.ErrInvalidRequest("turns[0]: unknown role \"robot\"")}
	w := postJSON(t, NewMux(svc), "/v1/chat", `{"turns":[{"role":"robot","content":"x"}]}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", w.Code)
	}
	var body types.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || body.Code != 400 || !strings.Contains(body.Error, "robot") {
		t.Fatalf("unexpected error body: %s", w.Body.String())
	}
}

func TestChat_BodyTooLarge(t *testing.T) {
	SetMaxBodyBytes(32)
	defer SetMaxBodyBytes(0)
	big := `{"turns":[{"role":"user","content":"` + strings.Repeat("x", 100) + `"}]}`
	if w := postJSON(t, NewMux(&mockService{}), "/v1/chat", big); w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("want 413, got %d", w.Code)
	}
}

func TestConnectionTest(t *testing.T) {
	svc := &mockService{ct: router.ConnectionTest{Success: true, Message: "Hello!"}}
	h := NewMux(svc)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/connection-test", nil))
	if w.Code != http.StatusOK || svc.gotOver != nil {
		t.Fatalf("status=%d override=%+v", w.Code, svc.gotOver)
	}
	var body types.ConnectionTestResponse
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if !body.Success || body.Message != "Hello!" {
		t.Fatalf("unexpected body: %+v", body)
	}

	w = postJSON(t, h, "/v1/connection-test", `{"endpointUrl":"http://localhost:1234/v1/chat/completions"}`)
	if w.Code != http.StatusOK || svc.gotOver == nil || svc.gotOver.EndpointURL != "http://localhost:1234/v1/chat/completions" {
		t.Fatalf("override not forwarded: status=%d %+v", w.Code, svc.gotOver)
	}
}

func TestConfig_GetRedactsAndPutReplaces(t *testing.T) {
	svc := &mockService{cfg: types.ServiceConfig{EndpointURL: "http://a", APIKey: "secret"}}
	h := NewMux(svc)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/config", nil))
	if strings.Contains(w.Body.String(), "secret") {
		t.Fatalf("api key leaked: %s", w.Body.String())
	}

	body := `{"endpointUrl":"https://api.mistral.ai/v1/chat/completions","modelName":"mistral-small","apiKey":"k2"}`
	req := httptest.NewRequest(http.MethodPut, "/v1/config", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if svc.cfg.APIKey != "k2" || svc.cfg.ModelName != "mistral-small" {
		t.Fatalf("config not replaced: %+v", svc.cfg)
	}
	if strings.Contains(w.Body.String(), "k2") {
		t.Fatalf("api key leaked in PUT response: %s", w.Body.String())
	}
}

func TestConfig_PutValidationError(t *testing.T) {
	svc := &mockService{saveErr: manager.ErrInvalidRequest("endpointUrl is required")}
	req := httptest.NewRequest(http.MethodPut, "/v1/config", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	NewMux(svc).ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", w.Code)
	}
}

func TestClassifyHandler(t *testing.T) {
	h := NewMux(&mockService{})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/classify?url=https://api.mistral.ai/v1/chat/completions", nil))
	var body types.ClassifyResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if body.Kind != types.KindMistralCloud || body.FallbackURL != "https://api.mistral.ai/api/generate" {
		t.Fatalf("unexpected body: %+v", body)
	}

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/classify", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("want 400 without url, got %d", w.Code)
	}
}

func TestHistoryHandler(t *testing.T) {
	svc := &mockService{history: []types.Exchange{{ID: "a"}, {ID: "b"}}}
	h := NewMux(svc)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/history?limit=2", nil))
	var body types.HistoryResponse
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if svc.gotLimit != 2 || len(body.Exchanges) != 2 {
		t.Fatalf("limit=%d body=%+v", svc.gotLimit, body)
	}

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/history?limit=x", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", w.Code)
	}
}

func TestDiscoverHandler(t *testing.T) {
	svc := &mockService{discover: []types.DiscoveredBackend{{BaseURL: "http://h1:11434", Kind: types.KindOllama}}}
	w := httptest.NewRecorder()
	NewMux(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/discover?host=h1,%20h2,", nil))
	if len(svc.gotHosts) != 2 || svc.gotHosts[0] != "h1" || svc.gotHosts[1] != "h2" {
		t.Fatalf("hosts=%v", svc.gotHosts)
	}
	var body types.DiscoverResponse
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if len(body.Backends) != 1 {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestStatusHandler(t *testing.T) {
	svc := &mockService{status: types.StatusResponse{State: "ready", ChatsTotal: 3}}
	w := httptest.NewRecorder()
	NewMux(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/status", nil))
	var body types.StatusResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if body.State != "ready" || body.ChatsTotal != 3 {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestHealthAndReady(t *testing.T) {
	svc := &mockService{}
	h := NewMux(svc)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK || w.Body.String() != "ok" {
		t.Fatalf("healthz: %d %q", w.Code, w.Body.String())
	}
	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("readyz unconfigured: %d", w.Code)
	}
	svc.ready = true
	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("readyz: %d", w.Code)
	}
}

func TestSecurityHeader(t *testing.T) {
	w := httptest.NewRecorder()
	NewMux(&mockService{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if got := w.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Fatalf("X-Content-Type-Options=%q", got)
	}
}

func TestCORSPreflight(t *testing.T) {
	SetCORSOptions(true, []string{"http://ui.example"}, nil, nil)
	defer SetCORSOptions(false, nil, nil, nil)
	h := NewMux(&mockService{})

	req := httptest.NewRequest(http.MethodOptions, "/v1/chat", nil)
	req.Header.Set("Origin", "http://ui.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://ui.example" {
		t.Fatalf("Access-Control-Allow-Origin=%q", got)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	h := NewMux(&mockService{})
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK || !bytes.Contains(w.Body.Bytes(), []byte("llmrouter_http_requests_total")) {
		t.Fatalf("metrics missing: %d", w.Code)
	}
}
