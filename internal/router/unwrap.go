package router

import (
	"encoding/json"
	"strconv"
	"strings"

	"llmrouter/pkg/types"
)

var genericPaths = []string{"response", "text", "generated_text"}

var chatPaths = append([]string{"choices.0.message.content", "choices.0.text"}, genericPaths...)

// envelopePaths lists, per kind, where the generated text may live, in lookup order.
var envelopePaths = map[types.BackendKind][]string{
	types.KindOpenAICompatible: chatPaths,
	types.KindMistralCloud:     chatPaths,
	types.KindLMStudio:         chatPaths,
	types.KindUnknown:          chatPaths,
	types.KindOllama:           {"message.content", "response", "choices.0.message.content", "choices.0.text"},
	types.KindAPIGenerate:      {"response", "text", "generated_text", "0.generated_text", "choices.0.text"},
}

// Unwrap extracts generated text from a response body according to kind's envelope.
// It returns false when the body is not JSON or carries none of the known fields.
func Unwrap(kind types.BackendKind, body []byte) (string, bool) {
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return "", false
	}
	paths, ok := envelopePaths[kind]
	if !ok {
		paths = chatPaths
	}
	for _, p := range paths {
		if s, ok := lookup(doc, p); ok {
			return s, true
		}
	}
	return "", false
}

// lookup walks a dotted path of object keys and array indices to a non-empty string.
func lookup(v any, path string) (string, bool) {
	for _, seg := range strings.Split(path, ".") {
		switch node := v.(type) {
		case map[string]any:
			v = node[seg]
		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(node) {
				return "", false
			}
			v = node[i]
		default:
			return "", false
		}
	}
	s, ok := v.(string)
	return s, ok && s != ""
}
