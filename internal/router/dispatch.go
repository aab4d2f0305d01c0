package router

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"llmrouter/pkg/types"
)

const (
	defaultTemperature = 0.7
	defaultMaxTokens   = 1024
	maxErrorBody       = 4096
	maxResponseBody    = 8 << 20
)

// Dispatcher sends conversations to the configured endpoint. The zero value is not usable;
// construct with New.
type Dispatcher struct {
	client      *http.Client
	log         zerolog.Logger
	timeout     time.Duration
	temperature float64
	maxTokens   int
	markers     []string
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(d *Dispatcher) {
		if c != nil {
			d.client = c
		}
	}
}

// WithLogger installs a structured logger. The default discards.
func WithLogger(l zerolog.Logger) Option { return func(d *Dispatcher) { d.log = l } }

// WithRequestTimeout bounds a whole Send, fallback included. Zero disables.
func WithRequestTimeout(t time.Duration) Option {
	return func(d *Dispatcher) {
		if t < 0 {
			t = 0
		}
		d.timeout = t
	}
}

// WithTemperature sets the sampling temperature sent to chat dialects.
func WithTemperature(t float64) Option { return func(d *Dispatcher) { d.temperature = t } }

// WithMaxTokens sets max_tokens for chat dialects. Zero omits the field.
func WithMaxTokens(n int) Option {
	return func(d *Dispatcher) {
		if n < 0 {
			n = 0
		}
		d.maxTokens = n
	}
}

// WithCompletionOnlyMarkers overrides the model-name markers that make Ollama requests
// prompt-shaped. An empty list keeps the defaults.
func WithCompletionOnlyMarkers(markers []string) Option {
	return func(d *Dispatcher) {
		if len(markers) > 0 {
			d.markers = append([]string(nil), markers...)
		}
	}
}

// New constructs a Dispatcher.
func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		log:         zerolog.Nop(),
		temperature: defaultTemperature,
		maxTokens:   defaultMaxTokens,
		markers:     DefaultCompletionOnlyMarkers,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.client == nil {
		d.client = newHTTPClient()
	}
	return d
}

// newHTTPClient leaves Timeout at zero; deadlines come from the request context.
func newHTTPClient() *http.Client {
	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	return &http.Client{Transport: tr}
}

// Adapt reshapes turns using this dispatcher's completion-only markers.
func (d *Dispatcher) Adapt(turns []types.ChatTurn, kind types.BackendKind, model string) AdaptedRequest {
	return adapt(turns, kind, model, d.markers)
}

// CompletionOnly reports whether model matches one of the dispatcher's completion-only markers.
func (d *Dispatcher) CompletionOnly(model string) bool {
	return isCompletionOnly(model, d.markers)
}

// Send classifies cfg.EndpointURL, POSTs the adapted conversation and unwraps the reply.
// A non-success status moves on to the fallback step when the plan has one; transport
// failures are final. The last attempt's outcome is returned.
func (d *Dispatcher) Send(ctx context.Context, turns []types.ChatTurn, cfg types.ServiceConfig) (res Result) {
	start := time.Now()
	endpoint := strings.TrimSpace(cfg.EndpointURL)
	res = Result{Kind: Classify(endpoint)}
	if err := validateEndpoint(endpoint); err != nil {
		res.Err = err
		return res
	}
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}
	defer func() {
		res.Duration = time.Since(start)
		sendDuration.WithLabelValues(string(res.Kind)).Observe(res.Duration.Seconds())
	}()

	// The fallback step is not reclassified: it always speaks api-generate.
	steps := Plan(endpoint)
	for i, step := range steps {
		out := d.attempt(ctx, step, turns, cfg)
		res.Attempts = append(res.Attempts, out.Attempt)
		if out.err == nil {
			res.Text, res.Empty = out.text, out.empty
			return res
		}
		if out.err.Kind != ErrNetwork && i < len(steps)-1 {
			next := steps[i+1]
			fallbacksTotal.WithLabelValues(string(step.Kind)).Inc()
			d.log.Warn().Str("kind", string(step.Kind)).Int("status", out.Status).
				Str("fallback_url", next.URL).Msg("primary endpoint failed, trying fallback")
			continue
		}
		res.Err = out.err
		return res
	}
	return res
}

func validateEndpoint(endpoint string) *Error {
	if endpoint == "" {
		return configError("no endpoint URL configured")
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return configError("invalid endpoint URL %q: %v", endpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return configError("invalid endpoint URL %q: scheme must be http or https", endpoint)
	}
	if u.Host == "" {
		return configError("invalid endpoint URL %q: missing host", endpoint)
	}
	return nil
}

type attemptOutcome struct {
	Attempt
	text  string
	empty bool
	err   *Error
}

func (d *Dispatcher) attempt(ctx context.Context, step Step, turns []types.ChatTurn, cfg types.ServiceConfig) (out attemptOutcome) {
	out = attemptOutcome{Attempt: Attempt{URL: step.URL, Kind: step.Kind}}
	start := time.Now()
	defer func() {
		out.Duration = time.Since(start)
		d.log.Debug().Str("kind", string(step.Kind)).Str("url", step.URL).
			Int("status", out.Status).Dur("dur", out.Duration).Msg("backend attempt")
	}()

	body, err := d.Adapt(turns, step.Kind, cfg.ModelName).Body(d.temperature, d.maxTokens)
	if err != nil {
		out.err = networkError(err)
		return out
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, step.URL, bytes.NewReader(body))
	if err != nil {
		out.err = networkError(err)
		return out
	}
	req.Header.Set("Content-Type", "application/json")
	if sendsAuth(step.Kind, cfg.APIKey) {
		req.Header.Set("Authorization", "Bearer "+cfg.APIKey)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		attemptsTotal.WithLabelValues(string(step.Kind), outcomeNetwork).Inc()
		out.err = networkError(err)
		return out
	}
	defer resp.Body.Close()
	out.Status = resp.StatusCode

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		attemptsTotal.WithLabelValues(string(step.Kind), outcomeHTTPError).Inc()
		out.err = statusError(resp.StatusCode, b)
		return out
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		attemptsTotal.WithLabelValues(string(step.Kind), outcomeNetwork).Inc()
		out.err = networkError(err)
		return out
	}
	text, ok := Unwrap(step.Kind, b)
	if !ok {
		attemptsTotal.WithLabelValues(string(step.Kind), outcomeEmpty).Inc()
		out.empty = true
		return out
	}
	attemptsTotal.WithLabelValues(string(step.Kind), outcomeOK).Inc()
	out.text = text
	return out
}

// sendsAuth: cloud and OpenAI-style dialects carry the bearer header when a key is
// configured; local dialects never do.
func sendsAuth(kind types.BackendKind, apiKey string) bool {
	switch kind {
	case types.KindMistralCloud, types.KindOpenAICompatible, types.KindUnknown:
		return apiKey != ""
	}
	return false
}
