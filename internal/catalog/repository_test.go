package catalog_test

import (
	"context"
	"testing"
	"time"

	"github.com/Saccor/sauda-website-sub000/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *catalog.Repository {
	t.Helper()

	repo, err := catalog.NewRepository(":memory:")
	require.NoError(t, err)
	require.NoError(t, repo.RunMigrations())
	t.Cleanup(func() { _ = repo.Close() })

	return repo
}

func TestRunMigrations_Idempotent(t *testing.T) {
	repo := setupTestDB(t)

	assert.NoError(t, repo.RunMigrations())
}

func TestListArtists_ReturnsSeededArtists(t *testing.T) {
	repo := setupTestDB(t)

	artists, err := repo.ListArtists(context.Background())
	require.NoError(t, err)
	require.Len(t, artists, 3)

	assert.Equal(t, int64(1), artists[0].ID)
	assert.Equal(t, "sauda", artists[0].Slug)
	assert.Equal(t, "Sauda", artists[0].Name)
}

func TestGetArtist(t *testing.T) {
	repo := setupTestDB(t)

	t.Run("existing", func(t *testing.T) {
		a, err := repo.GetArtist(context.Background(), 3)
		require.NoError(t, err)
		assert.Equal(t, "nadia-k", a.Slug)
		assert.Empty(t, a.YouTubeURL)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := repo.GetArtist(context.Background(), 999)
		assert.ErrorIs(t, err, catalog.ErrNotFound)
	})
}

func TestListEvents_OrderedByStart(t *testing.T) {
	repo := setupTestDB(t)

	events, err := repo.ListEvents(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 6)

	for i := 1; i < len(events); i++ {
		assert.False(t, events[i].StartsAt.Before(events[i-1].StartsAt),
			"event %d starts before event %d", events[i].ID, events[i-1].ID)
	}
}

func TestGetEvent(t *testing.T) {
	repo := setupTestDB(t)

	t.Run("existing", func(t *testing.T) {
		e, err := repo.GetEvent(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, "Stockholm", e.City)
		assert.Equal(t, catalog.EventSoldOut, e.Status)
		assert.Equal(t, time.Date(2026, 11, 7, 20, 0, 0, 0, time.UTC), e.StartsAt.UTC())
	})

	t.Run("missing", func(t *testing.T) {
		_, err := repo.GetEvent(context.Background(), 0)
		assert.ErrorIs(t, err, catalog.ErrNotFound)
	})
}

func TestListArtists_CancelledContext(t *testing.T) {
	repo := setupTestDB(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.ListArtists(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
