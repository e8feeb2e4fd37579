package http

import (
	"context"
	"net/http"
	"time"

	"github.com/Saccor/sauda-website-sub000/internal/social"
	"go.uber.org/zap"
)

type FeedSource interface {
	Feed(ctx context.Context) ([]social.Item, error)
}

type FeedHandler struct {
	feed    FeedSource
	timeout time.Duration
	log     *zap.Logger
}

func NewFeedHandler(feed FeedSource, timeout time.Duration, log *zap.Logger) *FeedHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &FeedHandler{
		feed:    feed,
		timeout: timeout,
		log:     log,
	}
}

// GET /api/social-feed?page=N
func (h *FeedHandler) Get(w http.ResponseWriter, r *http.Request) {
	page, err := social.ParsePage(r.URL.Query().Get("page"))
	if err != nil {
		respondTimedError(w, http.StatusBadRequest, "Invalid page parameter", "Page must be a positive integer")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	items, err := h.feed.Feed(ctx)
	if err != nil {
		h.log.Error("social feed failed", zap.Int("page", page), zap.Error(err))
		handleFeedError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, social.Paginate(items, page, social.PageSize))
}

func handleFeedError(w http.ResponseWriter, err error) {
	switch social.KindOf(err) {
	case social.KindRateLimited:
		respondTimedError(w, http.StatusTooManyRequests, "Rate limit exceeded", err.Error())
	case social.KindUnauthorized:
		respondTimedError(w, http.StatusUnauthorized, "Authentication failed", err.Error())
	default:
		respondTimedError(w, http.StatusInternalServerError, "Failed to fetch social feed", err.Error())
	}
}
