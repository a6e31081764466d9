package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creamcroissant/trackerctl/internal/bootstrap"
	"github.com/creamcroissant/trackerctl/internal/repository"
	"github.com/creamcroissant/trackerctl/internal/repository/sqlite"
)

func openStore(t *testing.T) *sqlite.Store {
	t.Helper()
	db, err := bootstrap.OpenState(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlite.NewStore(db)
}

func TestSettingsRoundTrip(t *testing.T) {
	ctx := context.Background()
	settings := openStore(t).Settings()

	_, err := settings.Get(ctx, "api_url")
	require.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, settings.Upsert(ctx, &repository.Setting{Key: "api_url", Value: "http://a:8080", UpdatedAt: 1}))
	require.NoError(t, settings.Upsert(ctx, &repository.Setting{Key: "api_url", Value: "http://b:8080", UpdatedAt: 2}))
	require.NoError(t, settings.Upsert(ctx, &repository.Setting{Key: "admin_token", Value: "secret", UpdatedAt: 2}))

	got, err := settings.Get(ctx, "api_url")
	require.NoError(t, err)
	assert.Equal(t, "http://b:8080", got.Value)
	assert.EqualValues(t, 2, got.UpdatedAt)

	list, err := settings.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "admin_token", list[0].Key)

	require.NoError(t, settings.Delete(ctx, "admin_token"))
	_, err = settings.Get(ctx, "admin_token")
	require.ErrorIs(t, err, repository.ErrNotFound)
}
