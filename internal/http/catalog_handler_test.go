package http

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/Saccor/sauda-website-sub000/internal/catalog"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogRouter(t *testing.T) http.Handler {
	t.Helper()

	repo, err := catalog.NewRepository(":memory:")
	require.NoError(t, err)
	require.NoError(t, repo.RunMigrations())
	t.Cleanup(func() { _ = repo.Close() })

	handler := NewCatalogHandler(repo, 5*time.Second, nil)
	r := chi.NewRouter()
	r.Get("/api/artists", handler.ListArtists)
	r.Get("/api/artists/{id}", handler.GetArtist)
	r.Get("/api/events", handler.ListEvents)
	r.Get("/api/events/{id}", handler.GetEvent)
	return r
}

func TestCatalogHandler_Artists(t *testing.T) {
	h := newCatalogRouter(t)

	recorder := get(h, "/api/artists")
	require.Equal(t, http.StatusOK, recorder.Code)

	var body ArtistsResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
	require.NotEmpty(t, body.Artists)
	assert.Equal(t, "Sauda", body.Artists[0].Name)

	recorder = get(h, "/api/artists/1")
	require.Equal(t, http.StatusOK, recorder.Code)
}

func TestCatalogHandler_Events(t *testing.T) {
	h := newCatalogRouter(t)

	recorder := get(h, "/api/events")
	require.Equal(t, http.StatusOK, recorder.Code)

	var body EventsResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
	require.NotEmpty(t, body.Events)

	recorder = get(h, "/api/events/2")
	require.Equal(t, http.StatusOK, recorder.Code)

	var e catalog.Event
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&e))
	assert.Equal(t, int64(2), e.ID)
}

func TestCatalogHandler_Lookups(t *testing.T) {
	h := newCatalogRouter(t)

	tests := []struct {
		path   string
		status int
	}{
		{"/api/artists/999", http.StatusNotFound},
		{"/api/events/999", http.StatusNotFound},
		{"/api/artists/abc", http.StatusBadRequest},
		{"/api/events/0", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.status, get(h, tt.path).Code)
		})
	}
}
