package types

import "time"

// ChatRequest is the payload of POST /v1/chat.
type ChatRequest struct {
	// Conversation, oldest turn first. The last turn is the new message.
	Turns []ChatTurn `json:"turns"`
}

// ResultError describes a failed dispatch.
type ResultError struct {
	// Failure class: network, auth, http_status or config.
	// example: http_status
	Kind string `json:"kind" example:"http_status"`
	// HTTP status of the last attempt, when there was one.
	// example: 500
	Status int `json:"status,omitempty" example:"500"`
	// Human readable description.
	// example: HTTP 500: internal error
	Detail string `json:"detail" example:"HTTP 500: internal error"`
}

// ChatResponse is returned by POST /v1/chat. Dispatch failures are reported in the body
// with status 200 so the caller can render them in the conversation.
type ChatResponse struct {
	// True when the backend produced a reply (possibly empty).
	// example: true
	OK bool `json:"ok" example:"true"`
	// Generated text.
	// example: Waves fold into foam
	Text string `json:"text,omitempty" example:"Waves fold into foam"`
	// True when the response envelope carried no recognised text field.
	Empty bool `json:"empty,omitempty"`
	// Failure details when OK is false.
	Error *ResultError `json:"error,omitempty"`
	// Single-string rendering: the reply, "No response generated" or "Error: ...".
	// example: Waves fold into foam
	Display string `json:"display" example:"Waves fold into foam"`
	// Dialect the endpoint was classified as.
	// example: ollama
	Kind BackendKind `json:"kind" example:"ollama"`
	// Number of HTTP attempts made (1 or 2).
	// example: 1
	Attempts int `json:"attempts" example:"1"`
	// Identifier of the recorded exchange.
	// example: 2f1b7c7e-4a7e-4c55-9d0a-8b1f7c0e2a11
	ExchangeID string `json:"exchange_id,omitempty" example:"2f1b7c7e-4a7e-4c55-9d0a-8b1f7c0e2a11"`
}

// ConnectionTestResponse is returned by POST /v1/connection-test.
type ConnectionTestResponse struct {
	// example: true
	Success bool `json:"success" example:"true"`
	// Reply text or error string.
	// example: Hello!
	Message string `json:"message" example:"Hello!"`
}

// ClassifyResponse is returned by GET /v1/classify.
type ClassifyResponse struct {
	// example: http://localhost:1234/v1/chat/completions
	URL string `json:"url" example:"http://localhost:1234/v1/chat/completions"`
	// example: lmstudio
	Kind BackendKind `json:"kind" example:"lmstudio"`
	// Endpoint tried after a non-success status; empty when no fallback applies.
	// example: http://localhost:1234/api/generate
	FallbackURL string `json:"fallback_url,omitempty" example:"http://localhost:1234/api/generate"`
	// Whether the configured model is treated as completion-only.
	CompletionOnly bool `json:"completion_only"`
}

// Exchange is one recorded chat dispatch.
type Exchange struct {
	ID        string      `json:"id"`
	CreatedAt time.Time   `json:"created_at"`
	Endpoint  string      `json:"endpoint"`
	Kind      BackendKind `json:"kind"`
	Attempts  int         `json:"attempts"`
	OK        bool        `json:"ok"`
	Status    int         `json:"status,omitempty"`
	ErrorKind string      `json:"error_kind,omitempty"`
	LatencyMS int64       `json:"latency_ms"`
	Reply     string      `json:"reply"`
}

// HistoryResponse wraps GET /v1/history.
type HistoryResponse struct {
	Exchanges []Exchange `json:"exchanges"`
}

// DiscoveredBackend is a local inference server found by probing well-known ports.
type DiscoveredBackend struct {
	// example: http://localhost:11434
	BaseURL string `json:"base_url" example:"http://localhost:11434"`
	// example: ollama
	Kind BackendKind `json:"kind" example:"ollama"`
	// Suggested chat endpoint for this backend.
	// example: http://localhost:11434/api/chat
	ChatURL string `json:"chat_url" example:"http://localhost:11434/api/chat"`
	// Model names reported by the server, when listed.
	Models []string `json:"models,omitempty"`
}

// DiscoverResponse wraps GET /v1/discover.
type DiscoverResponse struct {
	Backends []DiscoveredBackend `json:"backends"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Overall state: ready when an endpoint is configured, unconfigured otherwise.
	// example: ready
	State string `json:"state" example:"ready"`
	// Configured endpoint and its classification.
	// example: http://localhost:11434/api/chat
	EndpointURL string `json:"endpoint_url,omitempty" example:"http://localhost:11434/api/chat"`
	// example: ollama
	Kind BackendKind `json:"kind,omitempty" example:"ollama"`
	// example: llama3
	Model string `json:"model,omitempty" example:"llama3"`
	// Chats dispatched since start.
	// example: 12
	ChatsTotal uint64 `json:"chats_total" example:"12"`
	// Chats whose result was an error.
	// example: 1
	FailuresTotal uint64 `json:"failures_total" example:"1"`
	// Chats that needed the /api/generate fallback.
	// example: 2
	FallbacksTotal uint64 `json:"fallbacks_total" example:"2"`
	// Last error observed, if any.
	LastError string `json:"last_error,omitempty"`
	// Uptime of the server in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
}
