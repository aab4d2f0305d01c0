package router

import (
	"strings"

	"llmrouter/pkg/types"
)

const generatePath = "/api/generate"

// Step is one HTTP attempt: where to POST and which dialect to speak there.
type Step struct {
	URL  string
	Kind types.BackendKind
}

// Plan returns the ordered attempts for endpoint: the classified primary and, unless the
// primary already targets /api/generate, one api-generate fallback. Never more than two.
func Plan(endpoint string) []Step {
	primary := Step{URL: endpoint, Kind: Classify(endpoint)}
	if !hasFallback(primary) {
		return []Step{primary}
	}
	return []Step{primary, {URL: FallbackURL(endpoint), Kind: types.KindAPIGenerate}}
}

func hasFallback(s Step) bool {
	return s.Kind != types.KindAPIGenerate && !strings.Contains(strings.ToLower(s.URL), generatePath)
}

// FallbackURL replaces a /v1/... suffix of endpoint with /api/generate, or appends
// /api/generate when there is none.
func FallbackURL(endpoint string) string {
	lower := strings.ToLower(endpoint)
	if i := strings.Index(lower, "/v1/"); i >= 0 {
		return endpoint[:i] + generatePath
	}
	if strings.HasSuffix(lower, "/v1") {
		return endpoint[:len(endpoint)-len("/v1")] + generatePath
	}
	return strings.TrimRight(endpoint, "/") + generatePath
}
