package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Saccor/sauda-website-sub000/internal/cart"
	"github.com/Saccor/sauda-website-sub000/internal/payment"
	"go.uber.org/zap"
)

type SessionService interface {
	CreateSession(ctx context.Context, items []cart.Item) (string, error)
}

type CheckoutHandler struct {
	payments SessionService
	timeout  time.Duration
	log      *zap.Logger
}

func NewCheckoutHandler(payments SessionService, timeout time.Duration, log *zap.Logger) *CheckoutHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &CheckoutHandler{
		payments: payments,
		timeout:  timeout,
		log:      log,
	}
}

type CreateSessionRequestDTO struct {
	Items json.RawMessage `json:"items"`
}

type SessionResponseDTO struct {
	SessionID string `json:"sessionId"`
}

// POST /api/stripe
func (h *CheckoutHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req CreateSessionRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	items, err := decodeItems(req.Items)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_items", err.Error())
		return
	}

	sessionID, err := h.payments.CreateSession(ctx, items)
	if err != nil {
		handlePaymentError(w, h.log, err)
		return
	}

	respondJSON(w, http.StatusOK, SessionResponseDTO{SessionID: sessionID})
}

// decodeItems accepts only a JSON array of cart items.
func decodeItems(raw json.RawMessage) ([]cart.Item, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, payment.ErrNoItems
	}
	var items []cart.Item
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, payment.ErrNoItems
	}
	if len(items) == 0 {
		return nil, payment.ErrNoItems
	}
	return items, nil
}

func handlePaymentError(w http.ResponseWriter, log *zap.Logger, err error) {
	if payment.IsValidation(err) {
		respondError(w, http.StatusBadRequest, "invalid_items", err.Error())
		return
	}

	log.Error("checkout session failed", zap.Error(err))

	var pe *payment.ProviderError
	if errors.As(err, &pe) {
		respondError(w, http.StatusInternalServerError, "payment_provider_error", pe.Message)
		return
	}
	respondError(w, http.StatusInternalServerError, "internal_error", err.Error())
}
