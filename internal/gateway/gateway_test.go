package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creamcroissant/trackerctl/internal/notifier"
)

func TestDoSendsEnvelopeAndHeaders(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/admin/bans", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "s3cret", r.Header.Get("X-Admin-Token"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		raw, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(raw, &gotBody))
		w.Write([]byte(`{"success":true,"data":{"id":7},"message":"IP banned"}`))
	}))
	defer srv.Close()

	var rec notifier.Recorder
	g := New(srv.URL+"/", "s3cret", &rec)

	res := g.Do(context.Background(), http.MethodPost, "/bans", map[string]any{"ip": "203.0.113.5", "reason": "test"})
	require.True(t, res.Success)
	assert.Equal(t, map[string]any{"ip": "203.0.113.5", "reason": "test"}, gotBody)

	var data struct {
		ID int `json:"id"`
	}
	require.NoError(t, res.Decode(&data))
	assert.Equal(t, 7, data.ID)

	last, ok := rec.Last()
	require.True(t, ok)
	assert.Equal(t, notifier.Success, last.Severity)
	assert.Equal(t, "IP banned", last.Text)
}

func TestDoWithoutBodySendsNothing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		assert.Empty(t, raw)
		w.Write([]byte(`{"success":true,"data":[]}`))
	}))
	defer srv.Close()

	var rec notifier.Recorder
	res := New(srv.URL, "", &rec).Do(context.Background(), http.MethodGet, "/users", nil)
	assert.True(t, res.Success)
	assert.Empty(t, rec.Notices(), "plain success without message must stay silent")
}

func TestDoBackendFailure(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{name: "with error", body: `{"success":false,"error":"User not found"}`, want: "User not found"},
		{name: "fallback", body: `{"success":false}`, want: FallbackError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			var rec notifier.Recorder
			res := New(srv.URL, "t", &rec).Do(context.Background(), http.MethodGet, "/users/9", nil)
			assert.False(t, res.Success)

			notices := rec.Notices()
			require.Len(t, notices, 1)
			assert.Equal(t, notifier.Error, notices[0].Severity)
			assert.Equal(t, tc.want, notices[0].Text)
		})
	}
}

func TestDoTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	var rec notifier.Recorder
	res := New(url, "t", &rec).Do(context.Background(), http.MethodGet, "/stats", nil)
	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Error)

	notices := rec.Notices()
	require.Len(t, notices, 1)
	assert.Equal(t, notifier.Error, notices[0].Severity)
	assert.Contains(t, notices[0].Text, "Network error: ")
}

func TestDoUndecodableBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	var rec notifier.Recorder
	res := New(srv.URL, "t", &rec).Do(context.Background(), http.MethodGet, "/stats", nil)
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "HTTP 502")
}

func TestConfigureRebindsEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "new-token", r.Header.Get("X-Admin-Token"))
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	var rec notifier.Recorder
	g := New("http://127.0.0.1:1", "old-token", &rec)
	g.Configure(srv.URL, "new-token")

	base, token := g.Endpoint()
	assert.Equal(t, srv.URL, base)
	assert.Equal(t, "new-token", token)
	assert.True(t, g.Do(context.Background(), http.MethodGet, "/stats", nil).Success)
}

func TestMetricsAndRateLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	reg := prometheus.NewRegistry()
	m := NewMetrics(reg, "test")
	var rec notifier.Recorder
	g := New(srv.URL, "t", &rec, WithMetrics(m), WithRateLimit(6000))

	g.Do(context.Background(), http.MethodGet, "/swarms", nil)
	g.Do(context.Background(), http.MethodGet, "/swarms", nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues(http.MethodGet, outcomeSuccess)))
}

func TestDecodeWithoutData(t *testing.T) {
	var out []int
	assert.ErrorIs(t, Result{Success: true}.Decode(&out), ErrNoData)
	assert.ErrorIs(t, Result{Success: true, Data: json.RawMessage("null")}.Decode(&out), ErrNoData)
}
