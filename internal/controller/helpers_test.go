package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/creamcroissant/trackerctl/internal/gateway"
	"github.com/creamcroissant/trackerctl/internal/notifier"
	"github.com/creamcroissant/trackerctl/internal/source"
)

type call struct {
	Method string
	Path   string
	Query  string
	Body   map[string]any
}

func (c call) key() string { return c.Method + " " + c.Path }

// backend is a scripted admin API recording every request it receives.
type backend struct {
	mu     sync.Mutex
	calls  []call
	routes map[string]string
	srv    *httptest.Server
}

func newBackend(t *testing.T) *backend {
	t.Helper()
	b := &backend{routes: defaultRoutes()}
	b.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c := call{Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery}
		raw, _ := io.ReadAll(r.Body)
		if len(raw) > 0 {
			assert.NoError(t, json.Unmarshal(raw, &c.Body))
		}
		b.mu.Lock()
		b.calls = append(b.calls, c)
		body, ok := b.routes[c.key()]
		b.mu.Unlock()
		if !ok {
			body = `{"success":true}`
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(b.srv.Close)
	return b
}

func (b *backend) on(method, path, body string) {
	b.mu.Lock()
	b.routes[method+" /admin"+path] = body
	b.mu.Unlock()
}

func (b *backend) Calls() []call {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]call(nil), b.calls...)
}

func (b *backend) Keys() []string {
	var keys []string
	for _, c := range b.Calls() {
		keys = append(keys, c.key())
	}
	return keys
}

func (b *backend) Reset() {
	b.mu.Lock()
	b.calls = nil
	b.mu.Unlock()
}

func defaultRoutes() map[string]string {
	return map[string]string{
		"GET /admin/stats":               `{"success":true,"data":{"users":3,"torrents":2,"peers":10,"total_uploaded":2048}}`,
		"GET /admin/users":               `{"success":true,"data":[{"id":1,"passkey":"aaaa","uploaded":10,"downloaded":5,"can_leech":true,"created_at":"2024-03-15T10:30:00Z"},{"id":2,"passkey":"bbbb","uploaded":0,"downloaded":0,"can_leech":false,"created_at":"2024-01-22T14:45:00Z"}]}`,
		"GET /admin/users/1":             `{"success":true,"data":{"id":1,"passkey":"aaaa","uploaded":10,"downloaded":5,"can_leech":true}}`,
		"GET /admin/users/search":        `{"success":true,"data":[{"id":1,"passkey":"aaaa"}]}`,
		"GET /admin/users/1/snatches":    `{"success":true,"data":[{"id":10,"user_id":1,"torrent_id":4,"hnr":true}]}`,
		"GET /admin/users/1/points":      `{"success":true,"data":{"user_id":1,"bonus_points":42.5}}`,
		"POST /admin/users/1/redeem":     `{"success":true,"data":{"points_redeemed":1,"upload_credit":1000000000,"upload_credit_formatted":"1.00 GB"}}`,
		"GET /admin/torrents":            `{"success":true,"data":[{"id":4,"info_hash":"9ebdee3c368a45277499df08bd29bc17b0bce09d","seeders":3,"leechers":1,"upload_multiplier":1,"download_multiplier":1}]}`,
		"GET /admin/torrents/4":          `{"success":true,"data":{"id":4,"info_hash":"9ebdee3c368a45277499df08bd29bc17b0bce09d","seeders":3,"leechers":1,"upload_multiplier":1,"download_multiplier":1}}`,
		"GET /admin/torrents/4/snatches": `{"success":true,"data":[]}`,
		"GET /admin/whitelist":           `{"success":true,"data":[{"id":1,"prefix":"-TR","name":"Transmission"}]}`,
		"GET /admin/bans":                `{"success":true,"data":[{"id":1,"ip":"10.0.0.1","reason":"spam","expires_at":null,"created_at":"2024-12-10T14:30:00Z"}]}`,
		"GET /admin/bans/active":         `{"success":true,"data":[]}`,
		"GET /admin/ratelimits":          `{"success":true,"data":{"enabled":true,"total_ips_tracked":4,"limits":{"announce":"30/min"}}}`,
		"GET /admin/ratelimits/10.0.0.1": `{"success":true,"data":{"ip":"10.0.0.1","limits":{"announce":{"count":3,"limit":30,"window_seconds":60}}}}`,
		"GET /admin/snatches/10":         `{"success":true,"data":{"id":10,"user_id":1,"torrent_id":4,"hnr":true}}`,
		"GET /admin/hnr":                 `{"success":true,"data":[{"id":10,"user_id":1,"torrent_id":4,"hnr":true}]}`,
		"GET /admin/bonus/stats":         `{"success":true,"data":{"enabled":true,"base_points":1,"conversion_rate":1000000000}}`,
		"GET /admin/swarms":              `{"success":true,"data":[{"info_hash":"9ebdee3c368a45277499df08bd29bc17b0bce09d","seeders":3,"leechers":1,"completed":7}]}`,
		"GET /admin/verification/stats":  `{"success":true,"data":{"enabled":true,"cache_size":5}}`,
	}
}

// countingTransport counts round trips; demo sessions must leave it at zero.
type countingTransport struct {
	calls atomic.Int64
}

func (c *countingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	c.calls.Add(1)
	return http.DefaultTransport.RoundTrip(req)
}

// confirmer records prompts and answers with a fixed choice.
type confirmer struct {
	answer  bool
	prompts []string
}

func (c *confirmer) Confirm(_ context.Context, prompt string) bool {
	c.prompts = append(c.prompts, prompt)
	return c.answer
}

type fixture struct {
	backend *backend
	gw      *gateway.Gateway
	rec     *notifier.Recorder
	confirm *confirmer
	deps    Deps
}

func newLive(t *testing.T) *fixture {
	t.Helper()
	b := newBackend(t)
	rec := &notifier.Recorder{}
	gw := gateway.New(b.srv.URL, "token", rec)
	c := &confirmer{answer: true}
	return &fixture{
		backend: b,
		gw:      gw,
		rec:     rec,
		confirm: c,
		deps:    Deps{Source: source.NewLive(gw), Notify: rec, Confirm: c},
	}
}

func newDemo(t *testing.T) (*fixture, *countingTransport) {
	t.Helper()
	transport := &countingTransport{}
	rec := &notifier.Recorder{}
	gw := gateway.New("http://127.0.0.1:1", "", rec, gateway.WithHTTPClient(&http.Client{Transport: transport}))
	c := &confirmer{answer: true}
	return &fixture{
		gw:      gw,
		rec:     rec,
		confirm: c,
		deps:    Deps{Source: source.Select(true, gw, rec), Notify: rec, Confirm: c},
	}, transport
}
