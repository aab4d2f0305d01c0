package router

import (
	"encoding/json"
	"strings"

	"llmrouter/pkg/types"
)

// DefaultCompletionOnlyMarkers identify model names that only accept a bare prompt.
var DefaultCompletionOnlyMarkers = []string{"-text", ":text", "-base", ":base", "davinci", "babbage"}

// AdaptedRequest is the dialect-specific shape of a conversation. Exactly one of the
// two shapes is populated: Messages when PromptShaped is false, Prompt/System otherwise.
type AdaptedRequest struct {
	Kind         types.BackendKind
	Model        string
	PromptShaped bool
	Messages     []types.ChatTurn
	Prompt       string
	System       string
}

// chatBody is the chat-completions request shared by the chat dialects.
type chatBody struct {
	Model       string           `json:"model"`
	Messages    []types.ChatTurn `json:"messages"`
	Temperature float64          `json:"temperature"`
	MaxTokens   int              `json:"max_tokens,omitempty"`
	Stream      bool             `json:"stream"`
}

// promptBody is the completion request for /api/generate style backends.
type promptBody struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	System string `json:"system,omitempty"`
	Stream bool   `json:"stream"`
}

// Adapt reshapes turns for kind using the default completion-only markers.
func Adapt(turns []types.ChatTurn, kind types.BackendKind, model string) AdaptedRequest {
	return adapt(turns, kind, model, DefaultCompletionOnlyMarkers)
}

func adapt(turns []types.ChatTurn, kind types.BackendKind, model string, markers []string) AdaptedRequest {
	req := AdaptedRequest{Kind: kind, Model: model}
	switch {
	case kind == types.KindOllama && isCompletionOnly(model, markers):
		// History is dropped; only the newest turn survives.
		req.PromptShaped = true
		if n := len(turns); n > 0 {
			req.Prompt = turns[n-1].Content
		}
	case kind == types.KindAPIGenerate:
		req.PromptShaped = true
		req.Prompt = lastUserContent(turns)
		req.System = joinSystem(turns)
	default:
		req.Messages = append([]types.ChatTurn(nil), turns...)
	}
	return req
}

// Body encodes the adapted request with the dispatcher's sampling parameters.
func (r AdaptedRequest) Body(temperature float64, maxTokens int) ([]byte, error) {
	if r.PromptShaped {
		return json.Marshal(promptBody{Model: r.Model, Prompt: r.Prompt, System: r.System})
	}
	msgs := r.Messages
	if msgs == nil {
		msgs = []types.ChatTurn{}
	}
	return json.Marshal(chatBody{
		Model:       r.Model,
		Messages:    msgs,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
}

// IsCompletionOnlyModel reports whether model matches a default completion-only marker.
func IsCompletionOnlyModel(model string) bool {
	return isCompletionOnly(model, DefaultCompletionOnlyMarkers)
}

func isCompletionOnly(model string, markers []string) bool {
	m := strings.ToLower(model)
	if m == "" {
		return false
	}
	for _, mk := range markers {
		if mk != "" && strings.Contains(m, strings.ToLower(mk)) {
			return true
		}
	}
	return false
}

// lastUserContent returns the newest user turn, or the final turn when there is none.
func lastUserContent(turns []types.ChatTurn) string {
	for i := len(turns) - 1; i >= 0; i-- {
		if turns[i].Role == types.RoleUser {
			return turns[i].Content
		}
	}
	if n := len(turns); n > 0 {
		return turns[n-1].Content
	}
	return ""
}

func joinSystem(turns []types.ChatTurn) string {
	var parts []string
	for _, t := range turns {
		if t.Role == types.RoleSystem && strings.TrimSpace(t.Content) != "" {
			parts = append(parts, t.Content)
		}
	}
	return strings.Join(parts, "\n\n")
}
