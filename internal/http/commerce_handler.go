package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Saccor/sauda-website-sub000/internal/commerce"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// maximum page the storefront API accepts for a connection
const maxFirst = 250

type CommerceHandler struct {
	store   commerce.Storefront
	timeout time.Duration
	log     *zap.Logger
}

func NewCommerceHandler(store commerce.Storefront, timeout time.Duration, log *zap.Logger) *CommerceHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &CommerceHandler{
		store:   store,
		timeout: timeout,
		log:     log,
	}
}

type ProductsResponse struct {
	Products []commerce.Product `json:"products"`
}

type TourDatesResponse struct {
	TourDates []commerce.TourDate `json:"tourDates"`
}

// GET /api/products?first=N
func (h *CommerceHandler) Products(w http.ResponseWriter, r *http.Request) {
	first, ok := firstParam(w, r, commerce.DefaultProductCount)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	products, err := h.store.Products(ctx, first)
	if err != nil {
		handleCommerceError(w, h.log, err)
		return
	}
	if products == nil {
		products = []commerce.Product{}
	}
	respondJSON(w, http.StatusOK, ProductsResponse{Products: products})
}

// GET /api/products/{handle}
func (h *CommerceHandler) Product(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	p, err := h.store.ProductByHandle(ctx, chi.URLParam(r, "handle"))
	if err != nil {
		handleCommerceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

// GET /api/tour-dates?first=N
func (h *CommerceHandler) TourDates(w http.ResponseWriter, r *http.Request) {
	first, ok := firstParam(w, r, commerce.DefaultTourDateCount)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	dates, err := h.store.TourDates(ctx, first)
	if err != nil {
		handleCommerceError(w, h.log, err)
		return
	}
	if dates == nil {
		dates = []commerce.TourDate{}
	}
	respondJSON(w, http.StatusOK, TourDatesResponse{TourDates: dates})
}

// GET /api/menu/{handle}
func (h *CommerceHandler) Menu(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	m, err := h.store.Menu(ctx, chi.URLParam(r, "handle"))
	if err != nil {
		handleCommerceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, m)
}

// GET /api/featured-artist
func (h *CommerceHandler) FeaturedArtist(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	a, err := h.store.FeaturedArtist(ctx)
	if err != nil {
		handleCommerceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, a)
}

func firstParam(w http.ResponseWriter, r *http.Request, def int) (int, bool) {
	raw := r.URL.Query().Get("first")
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > maxFirst {
		respondError(w, http.StatusBadRequest, "invalid_first", "first must be an integer between 1 and 250")
		return 0, false
	}
	return n, true
}

func handleCommerceError(w http.ResponseWriter, log *zap.Logger, err error) {
	if errors.Is(err, commerce.ErrNotFound) {
		respondError(w, http.StatusNotFound, "not_found", err.Error())
		return
	}

	log.Error("commerce request failed", zap.Stringer("kind", commerce.KindOf(err)), zap.Error(err))

	switch commerce.KindOf(err) {
	case commerce.KindCommerce:
		respondError(w, http.StatusBadGateway, "commerce_error", err.Error())
	case commerce.KindNetwork:
		if errors.Is(err, context.DeadlineExceeded) {
			respondError(w, http.StatusGatewayTimeout, "timeout", err.Error())
			return
		}
		respondError(w, http.StatusBadGateway, "network_error", err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
