package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/Saccor/sauda-website-sub000/internal/cart"
	"github.com/Saccor/sauda-website-sub000/internal/commerce"
	"github.com/Saccor/sauda-website-sub000/internal/payment"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const CartIDHeader = "X-Cart-ID"

type CartService interface {
	Get(ctx context.Context, cartID string) (cart.State, error)
	AddItem(ctx context.Context, cartID string, p commerce.Product) (cart.State, error)
	UpdateQuantity(ctx context.Context, cartID, productID string, quantity int) (cart.State, error)
	RemoveItem(ctx context.Context, cartID, productID string) (cart.State, error)
	Clear(ctx context.Context, cartID string) (cart.State, error)
	Checkout(ctx context.Context, cartID string) (string, error)
	CompleteCheckout(ctx context.Context, cartID string) (cart.State, error)
}

type ProductLookup interface {
	ProductByHandle(ctx context.Context, handle string) (*commerce.Product, error)
}

type CartHandler struct {
	carts    CartService
	products ProductLookup
	timeout  time.Duration
	log      *zap.Logger
}

// NewCartHandler builds the server-hosted cart endpoints. With products set, items
// are added by handle only; a nil products accepts the full product instead.
func NewCartHandler(carts CartService, products ProductLookup, timeout time.Duration, log *zap.Logger) *CartHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &CartHandler{
		carts:    carts,
		products: products,
		timeout:  timeout,
		log:      log,
	}
}

type AddItemRequestDTO struct {
	Handle  string            `json:"handle,omitempty"`
	Product *commerce.Product `json:"product,omitempty"`
}

type UpdateQuantityRequestDTO struct {
	Quantity *int `json:"quantity"`
}

type CartResponseDTO struct {
	CartID string      `json:"cartId"`
	Items  []cart.Item `json:"items"`
	Total  string      `json:"total"`
	Count  int         `json:"count"`
}

type CheckoutResponseDTO struct {
	CartID    string `json:"cartId"`
	SessionID string `json:"sessionId"`
}

// GET /api/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	cartID, ok := h.cartID(w, r)
	if !ok {
		return
	}

	s, err := h.carts.Get(ctx, cartID)
	if err != nil {
		h.handleCartError(w, cartID, err)
		return
	}
	respondJSON(w, http.StatusOK, newCartResponse(cartID, s))
}

// POST /api/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	cartID, ok := h.cartID(w, r)
	if !ok {
		return
	}

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	// with a storefront the price always comes from it, never from the caller
	var product commerce.Product
	switch {
	case h.products != nil:
		if req.Handle == "" {
			respondError(w, http.StatusBadRequest, "invalid_product", "a product handle is required")
			return
		}
		p, err := h.products.ProductByHandle(ctx, req.Handle)
		if err != nil {
			handleCommerceError(w, h.log, err)
			return
		}
		product = *p
	case req.Product != nil && req.Product.ID != "":
		product = *req.Product
	default:
		respondError(w, http.StatusBadRequest, "invalid_product", "a product with an id is required")
		return
	}

	s, err := h.carts.AddItem(ctx, cartID, product)
	if err != nil {
		h.handleCartError(w, cartID, err)
		return
	}
	respondJSON(w, http.StatusCreated, newCartResponse(cartID, s))
}

// PUT /api/cart/items/{id}
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	cartID, ok := h.cartID(w, r)
	if !ok {
		return
	}

	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Quantity == nil {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity is required")
		return
	}

	s, err := h.carts.UpdateQuantity(ctx, cartID, productID, *req.Quantity)
	if err != nil {
		h.handleCartError(w, cartID, err)
		return
	}
	respondJSON(w, http.StatusOK, newCartResponse(cartID, s))
}

// DELETE /api/cart/items/{id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	cartID, ok := h.cartID(w, r)
	if !ok {
		return
	}

	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}

	s, err := h.carts.RemoveItem(ctx, cartID, productID)
	if err != nil {
		h.handleCartError(w, cartID, err)
		return
	}
	respondJSON(w, http.StatusOK, newCartResponse(cartID, s))
}

// DELETE /api/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	cartID, ok := h.cartID(w, r)
	if !ok {
		return
	}

	s, err := h.carts.Clear(ctx, cartID)
	if err != nil {
		h.handleCartError(w, cartID, err)
		return
	}
	respondJSON(w, http.StatusOK, newCartResponse(cartID, s))
}

// POST /api/cart/checkout
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	cartID, ok := h.cartID(w, r)
	if !ok {
		return
	}

	sessionID, err := h.carts.Checkout(ctx, cartID)
	if err != nil {
		h.handleCartError(w, cartID, err)
		return
	}
	respondJSON(w, http.StatusCreated, CheckoutResponseDTO{CartID: cartID, SessionID: sessionID})
}

// POST /api/cart/checkout/complete
func (h *CartHandler) CompleteCheckout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	cartID, ok := h.cartID(w, r)
	if !ok {
		return
	}

	s, err := h.carts.CompleteCheckout(ctx, cartID)
	if err != nil {
		h.handleCartError(w, cartID, err)
		return
	}
	respondJSON(w, http.StatusOK, newCartResponse(cartID, s))
}

// cartID reads the caller's cart id, minting a new one for first-time callers.
// The id in use is always echoed in the response header.
func (h *CartHandler) cartID(w http.ResponseWriter, r *http.Request) (string, bool) {
	raw := r.Header.Get(CartIDHeader)
	if raw == "" {
		id := uuid.NewString()
		w.Header().Set(CartIDHeader, id)
		return id, true
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_cart_id", CartIDHeader+" must be a UUID")
		return "", false
	}
	w.Header().Set(CartIDHeader, id.String())
	return id.String(), true
}

func productIDParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	// storefront ids are gid:// URIs, so callers path-escape them
	id, err := url.PathUnescape(chi.URLParam(r, "id"))
	if err != nil || id == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product id is required")
		return "", false
	}
	return id, true
}

func (h *CartHandler) handleCartError(w http.ResponseWriter, cartID string, err error) {
	switch {
	case errors.Is(err, cart.ErrEmptyCart):
		respondError(w, http.StatusBadRequest, "empty_cart", err.Error())
	case errors.Is(err, cart.ErrCheckoutMissing):
		respondError(w, http.StatusServiceUnavailable, "checkout_unavailable", err.Error())
	default:
		var pe *payment.ProviderError
		if errors.As(err, &pe) || payment.IsValidation(err) {
			handlePaymentError(w, h.log, err)
			return
		}
		h.log.Error("cart operation failed", zap.String("cart_id", cartID), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "cart storage unavailable")
	}
}

func newCartResponse(cartID string, s cart.State) CartResponseDTO {
	items := s.Items
	if items == nil {
		items = []cart.Item{}
	}
	return CartResponseDTO{
		CartID: cartID,
		Items:  items,
		Total:  cart.Total(s.Items).StringFixed(2),
		Count:  cart.Count(s.Items),
	}
}
