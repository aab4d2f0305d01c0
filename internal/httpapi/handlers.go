package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"llmrouter/pkg/types"
)

type handlers struct {
	svc Service
}

// decodeJSON enforces the JSON content type and body size limit. When optional is set
// an empty body leaves v untouched and reports false.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any, optional bool) (bool, bool) {
	if optional && r.ContentLength == 0 {
		return false, true
	}
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mt != "application/json" {
		writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return false, false
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if optional && errors.Is(err, io.EOF) {
			return false, true
		}
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			writeJSONError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false, false
		}
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return false, false
	}
	return true, true
}

// chat godoc
// @Summary      Send a conversation
// @Description  Routes the conversation to the configured backend. Dispatch failures are reported in the body with status 200.
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        request  body      types.ChatRequest  true  "Conversation"
// @Success      200      {object}  types.ChatResponse
// @Failure      400      {object}  types.ErrorResponse
// @Failure      415      {object}  types.ErrorResponse
// @Router       /v1/chat [post]
func (h *handlers) chat(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req types.ChatRequest
	if _, ok := decodeJSON(w, r, &req, false); !ok {
		return
	}
	if len(req.Turns) == 0 {
		writeJSONError(w, http.StatusBadRequest, "turns is required")
		logEnd(r, "chat", http.StatusBadRequest, start, errors.New("turns is required"))
		return
	}
	logDebug(r, "chat request", map[string]any{"turns": len(req.Turns)})

	ctx, cancel := handlerContext(r, true)
	defer cancel()
	res, err := h.svc.Chat(ctx, req.Turns)
	if err != nil {
		status := statusFor(err)
		writeJSONError(w, status, err.Error())
		logEnd(r, "chat", status, start, err)
		return
	}
	resp := res.Response()
	observeChat(chatOutcomeLabel(resp))
	if resp.ExchangeID != "" {
		w.Header().Set("X-Exchange-ID", resp.ExchangeID)
	}
	writeJSON(w, resp)
	var logErr error
	if resp.Error != nil {
		logErr = errors.New(resp.Error.Detail)
	}
	logEnd(r, "chat", http.StatusOK, start, logErr)
}

func chatOutcomeLabel(resp types.ChatResponse) string {
	switch {
	case resp.Error != nil:
		return resp.Error.Kind
	case resp.Empty:
		return "empty"
	}
	return "ok"
}

// connectionTest godoc
// @Summary      Test the backend connection
// @Description  Sends a canned prompt to the stored configuration, or to the configuration in the body when one is given.
// @Tags         config
// @Accept       json
// @Produce      json
// @Param        request  body      types.ServiceConfig  false  "Configuration to test instead of the stored one"
// @Success      200      {object}  types.ConnectionTestResponse
// @Failure      415      {object}  types.ErrorResponse
// @Router       /v1/connection-test [post]
func (h *handlers) connectionTest(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var override types.ServiceConfig
	present, ok := decodeJSON(w, r, &override, true)
	if !ok {
		return
	}
	var cfg *types.ServiceConfig
	if present {
		cfg = &override
	}
	ctx, cancel := handlerContext(r, true)
	defer cancel()
	ct, err := h.svc.TestConnection(ctx, cfg)
	if err != nil {
		status := statusFor(err)
		writeJSONError(w, status, err.Error())
		logEnd(r, "connection-test", status, start, err)
		return
	}
	writeJSON(w, types.ConnectionTestResponse{Success: ct.Success, Message: ct.Message})
	logEnd(r, "connection-test", http.StatusOK, start, nil)
}

// getConfig godoc
// @Summary      Show the service configuration
// @Description  The API key is redacted.
// @Tags         config
// @Produce      json
// @Success      200  {object}  types.ServiceConfig
// @Router       /v1/config [get]
func (h *handlers) getConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.svc.ServiceConfig(r.Context())
	if err != nil {
		writeJSONError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, cfg.Redacted())
}

// putConfig godoc
// @Summary      Replace the service configuration
// @Tags         config
// @Accept       json
// @Produce      json
// @Param        request  body      types.ServiceConfig  true  "New configuration"
// @Success      200      {object}  types.ServiceConfig
// @Failure      400      {object}  types.ErrorResponse
// @Failure      415      {object}  types.ErrorResponse
// @Router       /v1/config [put]
func (h *handlers) putConfig(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var cfg types.ServiceConfig
	if _, ok := decodeJSON(w, r, &cfg, false); !ok {
		return
	}
	if err := h.svc.SaveServiceConfig(r.Context(), cfg); err != nil {
		status := statusFor(err)
		writeJSONError(w, status, err.Error())
		logEnd(r, "config", status, start, err)
		return
	}
	saved, err := h.svc.ServiceConfig(r.Context())
	if err != nil {
		writeJSONError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, saved.Redacted())
	logEnd(r, "config", http.StatusOK, start, nil)
}

// classify godoc
// @Summary      Classify an endpoint URL
// @Tags         router
// @Produce      json
// @Param        url  query     string  true  "Endpoint URL"
// @Success      200  {object}  types.ClassifyResponse
// @Failure      400  {object}  types.ErrorResponse
// @Router       /v1/classify [get]
func (h *handlers) classify(w http.ResponseWriter, r *http.Request) {
	u := r.URL.Query().Get("url")
	if strings.TrimSpace(u) == "" {
		writeJSONError(w, http.StatusBadRequest, "url is required")
		return
	}
	writeJSON(w, h.svc.Classify(r.Context(), u))
}

// history godoc
// @Summary      List recent exchanges
// @Tags         chat
// @Produce      json
// @Param        limit  query     int  false  "Maximum number of exchanges (default 50)"
// @Success      200    {object}  types.HistoryResponse
// @Failure      400    {object}  types.ErrorResponse
// @Router       /v1/history [get]
func (h *handlers) history(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = n
	}
	out, err := h.svc.History(r.Context(), limit)
	if err != nil {
		writeJSONError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, types.HistoryResponse{Exchanges: out})
}

// discover godoc
// @Summary      Probe for local inference servers
// @Tags         router
// @Produce      json
// @Param        host  query     string  false  "Comma-separated hosts to probe (default localhost)"
// @Success      200   {object}  types.DiscoverResponse
// @Router       /v1/discover [get]
func (h *handlers) discover(w http.ResponseWriter, r *http.Request) {
	var hosts []string
	for _, p := range strings.Split(r.URL.Query().Get("host"), ",") {
		if p = strings.TrimSpace(p); p != "" {
			hosts = append(hosts, p)
		}
	}
	ctx, cancel := handlerContext(r, false)
	defer cancel()
	writeJSON(w, types.DiscoverResponse{Backends: h.svc.Discover(ctx, hosts)})
}

// status godoc
// @Summary      Router status
// @Tags         system
// @Produce      json
// @Success      200  {object}  types.StatusResponse
// @Router       /status [get]
func (h *handlers) status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.svc.Status())
}
