package router

import (
	"strings"

	"llmrouter/pkg/types"
)

// classifyRule maps any of its markers (case-insensitive substrings) to a kind.
type classifyRule struct {
	kind    types.BackendKind
	markers []string
}

// classifyRules are evaluated in order; the first rule with a matching marker wins.
// Port markers are checked before path markers, so http://localhost:11434/api/generate
// is classified as ollama, not api-generate.
var classifyRules = []classifyRule{
	{kind: types.KindMistralCloud, markers: []string{"mistral.ai"}},
	{kind: types.KindOllama, markers: []string{"ollama", ":11434"}},
	{kind: types.KindLMStudio, markers: []string{"lmstudio", ":1234"}},
	{kind: types.KindAPIGenerate, markers: []string{"/api/generate"}},
	{kind: types.KindOpenAICompatible, markers: []string{"/v1/", "/chat/completions"}},
}

// Classify infers the wire dialect of endpoint. It is total: every string, including the
// empty one, maps to exactly one kind, with KindUnknown as the catch-all.
func Classify(endpoint string) types.BackendKind {
	u := strings.ToLower(endpoint)
	for _, rule := range classifyRules {
		for _, m := range rule.markers {
			if strings.Contains(u, m) {
				return rule.kind
			}
		}
	}
	return types.KindUnknown
}

// ParseKind parses a kind name as produced by Classify.
func ParseKind(s string) (types.BackendKind, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, k := range types.AllKinds {
		if string(k) == s {
			return k, true
		}
	}
	return types.KindUnknown, false
}
