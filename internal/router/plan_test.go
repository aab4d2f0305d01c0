package router

import (
	"testing"

	"llmrouter/pkg/types"
)

func TestFallbackURL(t *testing.T) {
	cases := map[string]string{
		"http://host:8000/v1/chat/completions": "http://host:8000/api/generate",
		"http://host:8000/v1/":                 "http://host:8000/api/generate",
		"http://host:8000/v1":                  "http://host:8000/api/generate",
		"http://host:8000/":                    "http://host:8000/api/generate",
		"http://host:8000":                     "http://host:8000/api/generate",
		"http://host:8000/api/chat":            "http://host:8000/api/chat/api/generate",
		"https://proxy/llm/V1/chat":            "https://proxy/llm/api/generate",
	}
	for in, want := range cases {
		if got := FallbackURL(in); got != want {
			t.Fatalf("FallbackURL(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPlan(t *testing.T) {
	steps := Plan("https://api.mistral.ai/v1/chat/completions")
	if len(steps) != 2 {
		t.Fatalf("expected primary+fallback, got %+v", steps)
	}
	if steps[0].Kind != types.KindMistralCloud || steps[1].Kind != types.KindAPIGenerate {
		t.Fatalf("unexpected kinds: %+v", steps)
	}
	if steps[1].URL != "https://api.mistral.ai/api/generate" {
		t.Fatalf("fallback url=%s", steps[1].URL)
	}
}

func TestPlan_NoFallbackForGenerateEndpoints(t *testing.T) {
	for _, u := range []string{"http://box:8000/api/generate", "http://localhost:11434/api/generate"} {
		if steps := Plan(u); len(steps) != 1 {
			t.Fatalf("%s: expected single step, got %+v", u, steps)
		}
	}
}
