package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creamcroissant/trackerctl/internal/gateway"
	"github.com/creamcroissant/trackerctl/internal/model"
	"github.com/creamcroissant/trackerctl/internal/notifier"
)

type countingTransport struct {
	calls atomic.Int64
}

func (c *countingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	c.calls.Add(1)
	return http.DefaultTransport.RoundTrip(req)
}

func TestSelect(t *testing.T) {
	var rec notifier.Recorder
	gw := gateway.New("http://localhost:8080", "", &rec)

	assert.IsType(t, &Demo{}, Select(true, gw, &rec))
	assert.IsType(t, &Live{}, Select(false, gw, &rec))
}

func TestDemoFetchCollections(t *testing.T) {
	var rec notifier.Recorder
	d := NewDemo(DefaultSnapshot(), &rec)
	ctx := context.Background()

	var users []model.User
	require.NoError(t, d.Fetch(ctx, Get("/users")).Decode(&users))
	assert.Len(t, users, 5)

	var torrents []model.Torrent
	require.NoError(t, d.Fetch(ctx, Get("/torrents")).Decode(&torrents))
	for _, tr := range torrents {
		assert.Len(t, tr.InfoHash, 40)
	}

	var stats model.Stats
	require.NoError(t, d.Fetch(ctx, Get("/stats")).Decode(&stats))
	assert.EqualValues(t, 1247, stats.Users)
	require.NotNil(t, stats.ETS)

	var hnr []model.Snatch
	require.NoError(t, d.Fetch(ctx, Get("/hnr")).Decode(&hnr))
	require.Len(t, hnr, 2)
	for _, s := range hnr {
		assert.True(t, s.HnR)
	}

	assert.Empty(t, rec.Notices())
}

func TestDemoFetchDetailPaths(t *testing.T) {
	var rec notifier.Recorder
	d := NewDemo(DefaultSnapshot(), &rec)
	ctx := context.Background()

	var user model.User
	require.NoError(t, d.Fetch(ctx, Get("/users/3")).Decode(&user))
	assert.Equal(t, 2, user.HnRWarnings)

	var found []model.User
	require.NoError(t, d.Fetch(ctx, Get("/users/search?q=e5f6a1")).Decode(&found))
	assert.NotEmpty(t, found)

	var snatches []model.Snatch
	require.NoError(t, d.Fetch(ctx, Get("/torrents/4/snatches")).Decode(&snatches))
	assert.Len(t, snatches, 2)

	var active []model.Ban
	require.NoError(t, d.Fetch(ctx, Get("/bans/active")).Decode(&active))
	assert.Len(t, active, 3, "ban expired before the snapshot was taken must be excluded")

	var state model.IPRateLimit
	require.NoError(t, d.Fetch(ctx, Get("/ratelimits/10.0.0.55")).Decode(&state))
	assert.Equal(t, 30, state.Buckets["announce"].Count)

	var balance model.BonusBalance
	require.NoError(t, d.Fetch(ctx, Get("/users/5/points")).Decode(&balance))
	assert.InDelta(t, 5420.0, balance.BonusPoints, 0.001)
}

func TestDemoFetchMissingRecordReports(t *testing.T) {
	var rec notifier.Recorder
	d := NewDemo(DefaultSnapshot(), &rec)

	res := d.Fetch(context.Background(), Get("/users/999"))
	assert.False(t, res.Success)

	last, ok := rec.Last()
	require.True(t, ok)
	assert.Equal(t, notifier.Error, last.Severity)
	assert.Equal(t, "User not found", last.Text)
}

func TestDemoApplyIsSynthetic(t *testing.T) {
	var rec notifier.Recorder
	snap := DefaultSnapshot()
	d := NewDemo(snap, &rec)
	ctx := context.Background()

	res := d.Apply(ctx, Request{Method: http.MethodPost, Path: "/stats/flush", Notice: "Stats flushed to database"})
	assert.True(t, res.Success)
	last, _ := rec.Last()
	assert.Equal(t, "Demo: Stats flushed to database", last.Text)
	assert.Equal(t, notifier.Success, last.Severity)

	res = d.Apply(ctx, Request{Method: http.MethodDelete, Path: "/users/1"})
	assert.True(t, res.Success)
	last, _ = rec.Last()
	assert.Equal(t, "Demo: "+DefaultNotice, last.Text)

	assert.Len(t, snap.Users, 5, "demo mutations never touch the snapshot")
}

func TestDemoRedeemComputesCredit(t *testing.T) {
	var rec notifier.Recorder
	d := NewDemo(DefaultSnapshot(), &rec)

	res := d.Apply(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "/users/2/redeem",
		Body:   map[string]float64{"points": 2},
		Notice: "Points redeemed",
	})
	var red model.Redemption
	require.NoError(t, res.Decode(&red))
	assert.EqualValues(t, 2000000000, red.UploadCredit)
	assert.Equal(t, "2.0 GB", red.UploadCreditFormatted)
}

func TestDemoNeverTouchesNetwork(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	transport := &countingTransport{}
	var rec notifier.Recorder
	gw := gateway.New(srv.URL, "t", &rec, gateway.WithHTTPClient(&http.Client{Transport: transport}))
	p := Select(true, gw, &rec)
	ctx := context.Background()

	p.Fetch(ctx, Get("/users"))
	p.Fetch(ctx, Get("/swarms"))
	p.Apply(ctx, Request{Method: http.MethodPost, Path: "/bans", Body: map[string]string{"ip": "203.0.113.5"}})
	p.Apply(ctx, Request{Method: http.MethodDelete, Path: "/verification/cache"})

	assert.Zero(t, transport.calls.Load())
}

func TestLiveDelegatesToGateway(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		w.Write([]byte(`{"success":true,"data":[]}`))
	}))
	defer srv.Close()

	var rec notifier.Recorder
	p := NewLive(gateway.New(srv.URL, "t", &rec))
	ctx := context.Background()

	p.Fetch(ctx, Request{Path: "/whitelist"})
	p.Apply(ctx, Request{Method: http.MethodDelete, Path: "/whitelist/-TR"})

	assert.Equal(t, []string{"GET /admin/whitelist", "DELETE /admin/whitelist/-TR"}, paths)
}
