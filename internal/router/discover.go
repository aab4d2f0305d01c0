package router

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"llmrouter/pkg/types"
)

// probe describes how to recognise one kind of local inference server.
type probe struct {
	kind     types.BackendKind
	port     int
	listPath string
	chatPath string
}

var localProbes = []probe{
	{kind: types.KindOllama, port: 11434, listPath: "/api/tags", chatPath: "/api/chat"},
	{kind: types.KindLMStudio, port: 1234, listPath: "/v1/models", chatPath: "/v1/chat/completions"},
}

// DefaultProbeTimeout bounds each discovery request.
const DefaultProbeTimeout = 2 * time.Second

// Discover probes the well-known Ollama and LM Studio ports on each host (localhost when
// hosts is empty) and returns the servers that answered 200 on their model listing path.
func Discover(ctx context.Context, client *http.Client, hosts []string) []types.DiscoveredBackend {
	if client == nil {
		client = &http.Client{Timeout: DefaultProbeTimeout}
	}
	if len(hosts) == 0 {
		hosts = []string{"localhost"}
	}
	var found []types.DiscoveredBackend
	for _, host := range hosts {
		for _, p := range localProbes {
			base := fmt.Sprintf("http://%s:%d", host, p.port)
			models, ok := listModels(ctx, client, base+p.listPath)
			if !ok {
				continue
			}
			found = append(found, types.DiscoveredBackend{
				BaseURL: base,
				Kind:    p.kind,
				ChatURL: base + p.chatPath,
				Models:  models,
			})
		}
	}
	return found
}

// modelListing covers both Ollama's {"models":[{"name"}]} and OpenAI's {"data":[{"id"}]}.
type modelListing struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
	Data []struct {
		ID string `json:"id"`
	} `json:"data"`
}

func listModels(ctx context.Context, client *http.Client, u string) ([]string, bool) {
	ctx, cancel := context.WithTimeout(ctx, DefaultProbeTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, false
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, false
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, false
	}
	var l modelListing
	if err := json.NewDecoder(resp.Body).Decode(&l); err != nil {
		return nil, true
	}
	var names []string
	for _, m := range l.Models {
		names = append(names, m.Name)
	}
	for _, m := range l.Data {
		names = append(names, m.ID)
	}
	return names, true
}
