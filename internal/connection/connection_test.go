package connection

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creamcroissant/trackerctl/internal/bootstrap"
	"github.com/creamcroissant/trackerctl/internal/config"
	"github.com/creamcroissant/trackerctl/internal/repository"
	"github.com/creamcroissant/trackerctl/internal/repository/sqlite"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	db, err := bootstrap.OpenState(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewStore(sqlite.NewStore(db).Settings())
}

func TestDetectMode(t *testing.T) {
	cases := []struct {
		name string
		cfg  *config.Config
		want Mode
	}{
		{name: "nil config", cfg: nil, want: Live},
		{name: "plain url", cfg: &config.Config{API: config.APIConfig{URL: "http://tracker:8080"}}, want: Live},
		{name: "demo flag", cfg: &config.Config{Demo: true}, want: Demo},
		{name: "demo query", cfg: &config.Config{API: config.APIConfig{URL: "http://tracker:8080/?demo=1"}}, want: Demo},
		{name: "other query", cfg: &config.Config{API: config.APIConfig{URL: "http://tracker:8080/?demo=0"}}, want: Live},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DetectMode(tc.cfg))
		})
	}
}

func TestStateDefaults(t *testing.T) {
	demo := NewState(Demo)
	assert.True(t, demo.Demo())
	assert.True(t, demo.Connected(), "demo sessions start connected")
	assert.Equal(t, SectionStats, demo.Section())

	live := NewState(Live)
	assert.False(t, live.Connected())
	live.MarkConnected()
	assert.True(t, live.Connected())
	assert.Equal(t, "live", live.Mode().String())
}

func TestStateConcurrentSectionSwitch(t *testing.T) {
	s := NewState(Live)
	var wg sync.WaitGroup
	for _, sec := range Sections {
		wg.Add(1)
		go func(sec Section) {
			defer wg.Done()
			s.Show(sec)
			_ = s.Section()
		}(sec)
	}
	wg.Wait()
	assert.Contains(t, Sections, s.Section())
}

func TestParseSection(t *testing.T) {
	sec, err := ParseSection("ratelimits")
	require.NoError(t, err)
	assert.Equal(t, SectionRateLimits, sec)

	_, err = ParseSection("peers")
	assert.Error(t, err)
}

func TestStoreProfileRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	p, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, Profile{}, p)

	require.NoError(t, store.Save(ctx, Profile{BaseURL: "http://tracker:8080", Token: "s3cret"}))

	p, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "http://tracker:8080", p.BaseURL)
	assert.Equal(t, "s3cret", p.Token)

	require.NoError(t, store.Set(ctx, KeyAdminToken, "rotated"))
	token, err := store.Get(ctx, KeyAdminToken)
	require.NoError(t, err)
	assert.Equal(t, "rotated", token)
}

func TestStoreForget(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	require.NoError(t, store.Forget(ctx))
	require.NoError(t, store.Save(ctx, Profile{BaseURL: "http://tracker:8080", Token: "s3cret"}))

	entries, err := store.Entries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, KeyAdminToken, entries[0].Key)
	assert.Equal(t, KeyAPIURL, entries[1].Key)

	require.NoError(t, store.Forget(ctx))
	p, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, Profile{}, p)
}

type brokenRepo struct{ repository.SettingRepository }

func (brokenRepo) Get(context.Context, string) (*repository.Setting, error) {
	return nil, errors.New("disk gone")
}

func TestStoreWrapsRepositoryErrors(t *testing.T) {
	_, err := NewStore(brokenRepo{}).Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "get setting api_url")
}

func TestResolvePrecedence(t *testing.T) {
	stored := Profile{BaseURL: "http://stored:8080", Token: "stored-token"}

	assert.Equal(t, Profile{BaseURL: config.DefaultAPIURL}, Resolve(&config.Config{}, Profile{}))
	assert.Equal(t, stored, Resolve(&config.Config{}, stored))

	cfg := &config.Config{API: config.APIConfig{URL: "http://flag:9000", Token: "flag-token"}}
	assert.Equal(t, Profile{BaseURL: "http://flag:9000", Token: "flag-token"}, Resolve(cfg, stored))
}
