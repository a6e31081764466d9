// Package gateway is the single choke point between trackerctl and the
// tracker's administrative HTTP API.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/ratelimit"

	"github.com/creamcroissant/trackerctl/internal/notifier"
	"github.com/creamcroissant/trackerctl/internal/support/logging"
)

// Prefix is prepended to every resource path.
const Prefix = "/admin"

// FallbackError is reported when the backend signals failure without a reason.
const FallbackError = "Request failed"

// ErrNoData is returned by Result.Decode when the response carried no payload.
var ErrNoData = errors.New("response has no data")

// Result is the uniform outcome of every call, whatever path it took.
type Result struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
	Message string          `json:"message,omitempty"`
}

// Decode unmarshals the data payload into out.
func (r Result) Decode(out any) error {
	if len(r.Data) == 0 || string(r.Data) == "null" {
		return ErrNoData
	}
	return json.Unmarshal(r.Data, out)
}

// Doer issues HTTP requests; *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Gateway converts (method, path, body) triples into parsed Results and
// reports every outcome to the notifier. It never retries, never times out a
// call on its own and never cancels an earlier call.
type Gateway struct {
	mu      sync.RWMutex
	baseURL string
	token   string

	client  Doer
	notify  notifier.Notifier
	limiter ratelimit.Limiter
	metrics *Metrics
	logger  *slog.Logger
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(client Doer) Option {
	return func(g *Gateway) {
		if client != nil {
			g.client = client
		}
	}
}

// WithRateLimit paces outgoing calls to perMinute requests; 0 disables pacing.
func WithRateLimit(perMinute int) Option {
	return func(g *Gateway) {
		if perMinute > 0 {
			g.limiter = ratelimit.New(perMinute, ratelimit.Per(time.Minute))
		}
	}
}

// WithMetrics records per-call counters and latencies.
func WithMetrics(m *Metrics) Option {
	return func(g *Gateway) {
		g.metrics = m
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Gateway) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// New creates a gateway bound to baseURL and token.
func New(baseURL, token string, n notifier.Notifier, opts ...Option) *Gateway {
	g := &Gateway{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{},
		notify:  n,
		limiter: ratelimit.NewUnlimited(),
		logger:  logging.Discard(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Configure rebinds the gateway to a new endpoint. Only the connect action
// calls it; every other component treats the endpoint as read-only.
func (g *Gateway) Configure(baseURL, token string) {
	g.mu.Lock()
	g.baseURL = baseURL
	g.token = token
	g.mu.Unlock()
}

// Endpoint returns the current base URL and token.
func (g *Gateway) Endpoint() (baseURL, token string) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.baseURL, g.token
}

// Do issues one call against <base>/admin<path>. body is JSON encoded when
// non-nil. Do never returns an error: failures are folded into the Result
// and surfaced through the notifier.
func (g *Gateway) Do(ctx context.Context, method, path string, body any) Result {
	baseURL, token := g.Endpoint()
	url := strings.TrimRight(baseURL, "/") + Prefix + path
	requestID := uuid.NewString()
	start := time.Now()

	res, err := g.roundTrip(ctx, method, url, token, requestID, body)
	elapsed := time.Since(start)
	if err != nil {
		g.metrics.observe(method, outcomeTransport, elapsed)
		g.logger.WarnContext(ctx, "admin request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		g.notify.Notify(ctx, notifier.Error, "Network error: "+err.Error())
		return Result{Success: false, Error: err.Error()}
	}

	if res.Success {
		g.metrics.observe(method, outcomeSuccess, elapsed)
		g.logger.DebugContext(ctx, "admin request", "method", method, "path", path, "request_id", requestID, "elapsed", elapsed)
	} else {
		g.metrics.observe(method, outcomeFailure, elapsed)
		g.logger.InfoContext(ctx, "admin request rejected", "method", method, "path", path, "request_id", requestID, "error", res.Error)
	}
	Report(ctx, g.notify, res)
	return res
}

// Report surfaces a parsed response: the backend error (or FallbackError) on
// failure, the informational message on success.
func Report(ctx context.Context, n notifier.Notifier, res Result) {
	switch {
	case !res.Success && res.Error != "":
		n.Notify(ctx, notifier.Error, res.Error)
	case !res.Success:
		n.Notify(ctx, notifier.Error, FallbackError)
	case res.Message != "":
		n.Notify(ctx, notifier.Success, res.Message)
	}
}

func (g *Gateway) roundTrip(ctx context.Context, method, url, token, requestID string, body any) (Result, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return Result{}, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return Result{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Admin-Token", token)
	req.Header.Set("X-Request-ID", requestID)

	g.limiter.Take()

	resp, err := g.client.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("read response: %w", err)
	}

	var res Result
	if err := json.Unmarshal(raw, &res); err != nil {
		return Result{}, fmt.Errorf("decode response (HTTP %d): %w", resp.StatusCode, err)
	}
	return res, nil
}
