package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Saccor/sauda-website-sub000/internal/catalog"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	catalog catalog.Reader
	timeout time.Duration
	log     *zap.Logger
}

func NewCatalogHandler(r catalog.Reader, timeout time.Duration, log *zap.Logger) *CatalogHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &CatalogHandler{
		catalog: r,
		timeout: timeout,
		log:     log,
	}
}

type ArtistsResponse struct {
	Artists []*catalog.Artist `json:"artists"`
}

type EventsResponse struct {
	Events []*catalog.Event `json:"events"`
}

// GET /api/artists
func (h *CatalogHandler) ListArtists(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	artists, err := h.catalog.ListArtists(ctx)
	if err != nil {
		h.handleCatalogError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ArtistsResponse{Artists: artists})
}

// GET /api/artists/{id}
func (h *CatalogHandler) GetArtist(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	a, err := h.catalog.GetArtist(ctx, id)
	if err != nil {
		h.handleCatalogError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, a)
}

// GET /api/events
func (h *CatalogHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	events, err := h.catalog.ListEvents(ctx)
	if err != nil {
		h.handleCatalogError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, EventsResponse{Events: events})
}

// GET /api/events/{id}
func (h *CatalogHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	e, err := h.catalog.GetEvent(ctx, id)
	if err != nil {
		h.handleCatalogError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, e)
}

func idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_id", "id must be a positive integer")
		return 0, false
	}
	return id, true
}

func (h *CatalogHandler) handleCatalogError(w http.ResponseWriter, err error) {
	if errors.Is(err, catalog.ErrNotFound) {
		respondError(w, http.StatusNotFound, "not_found", err.Error())
		return
	}
	h.log.Error("catalog query failed", zap.Error(err))
	respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
}
