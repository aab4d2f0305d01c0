package httpapi

import "time"

// maxBodyBytes controls the maximum allowed request body size for JSON endpoints.
var maxBodyBytes int64 = 1 << 20

// SetMaxBodyBytes allows configuring the maximum request body size.
func SetMaxBodyBytes(n int64) {
	if n <= 0 {
		maxBodyBytes = 1 << 20
		return
	}
	maxBodyBytes = n
}

// chatTimeout bounds /v1/chat and /v1/connection-test handlers. Zero leaves the
// dispatcher's own request timeout in charge.
var chatTimeout time.Duration

// SetChatTimeoutSeconds sets the chat handler timeout in seconds (0 disables).
func SetChatTimeoutSeconds(sec int64) {
	if sec < 0 {
		sec = 0
	}
	chatTimeout = time.Duration(sec) * time.Second
}

// CORS configuration (opt-in). If disabled, no CORS middleware is added.
var (
	corsEnabled        bool
	corsAllowedOrigins []string
	corsAllowedMethods []string
	corsAllowedHeaders []string
)

var (
	defaultCORSMethods = []string{"GET", "POST", "PUT", "OPTIONS"}
	defaultCORSHeaders = []string{"Accept", "Content-Type", "X-Request-Id", "X-Log-Level"}
)

// SetCORSOptions configures CORS behavior for the HTTP server. Empty method and header
// lists fall back to the ones the API actually uses.
func SetCORSOptions(enabled bool, origins, methods, headers []string) {
	corsEnabled = enabled
	corsAllowedOrigins = append([]string(nil), origins...)
	corsAllowedMethods = append([]string(nil), methods...)
	corsAllowedHeaders = append([]string(nil), headers...)
	if len(corsAllowedOrigins) == 0 {
		corsAllowedOrigins = []string{"*"}
	}
	if len(corsAllowedMethods) == 0 {
		corsAllowedMethods = append([]string(nil), defaultCORSMethods...)
	}
	if len(corsAllowedHeaders) == 0 {
		corsAllowedHeaders = append([]string(nil), defaultCORSHeaders...)
	}
}
