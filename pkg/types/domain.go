package types

// BackendKind names the chat-completion wire dialect an endpoint URL most likely speaks.
// It is derived from the URL on every request and never stored.
type BackendKind string

const (
	KindMistralCloud     BackendKind = "mistral-cloud"
	KindOllama           BackendKind = "ollama"
	KindLMStudio         BackendKind = "lmstudio"
	KindOpenAICompatible BackendKind = "openai-compatible"
	KindAPIGenerate      BackendKind = "api-generate"
	KindUnknown          BackendKind = "unknown"
)

// AllKinds lists every BackendKind in classifier priority order, unknown last.
var AllKinds = []BackendKind{
	KindMistralCloud,
	KindOllama,
	KindLMStudio,
	KindAPIGenerate,
	KindOpenAICompatible,
	KindUnknown,
}

// Role of a chat turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAssistant, RoleSystem:
		return true
	}
	return false
}

// ChatTurn is one message of a conversation. Slices of turns are ordered oldest first.
type ChatTurn struct {
	// Author of the turn.
	// example: user
	Role Role `json:"role" example:"user"`
	// Message text.
	// example: Write a haiku about the ocean.
	Content string `json:"content" example:"Write a haiku about the ocean."`
}

// ServiceConfig is the persisted text/image generation service configuration.
// It is saved and loaded as one JSON blob; there is no partial update.
type ServiceConfig struct {
	// Base address of the text-generation service.
	// example: http://localhost:11434/api/chat
	EndpointURL string `json:"endpointUrl" yaml:"endpoint_url" toml:"endpoint_url" example:"http://localhost:11434/api/chat"`
	// Model name sent with every request.
	// example: llama3
	ModelName string `json:"modelName" yaml:"model_name" toml:"model_name" example:"llama3"`
	// Optional API key, stored in plaintext.
	APIKey string `json:"apiKey" yaml:"api_key" toml:"api_key"`
	// Image generation endpoint. Stored for the UI, not used by the router.
	ImageEndpointURL string `json:"imageEndpointUrl" yaml:"image_endpoint_url" toml:"image_endpoint_url"`
	// Image generation model name.
	ImageModelName string `json:"imageModelName" yaml:"image_model_name" toml:"image_model_name"`
}

// RedactedSecret replaces a non-empty API key in redacted configurations. Saving a
// configuration whose key equals it keeps the stored key.
const RedactedSecret = "********"

// Redacted returns a copy with the API key masked, for display.
func (c ServiceConfig) Redacted() ServiceConfig {
	if c.APIKey != "" {
		c.APIKey = RedactedSecret
	}
	return c
}
