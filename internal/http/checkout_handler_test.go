package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Saccor/sauda-website-sub000/internal/payment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ProviderMock struct {
	sessionID string
	err       error
	requests  []payment.SessionRequest
}

func (m *ProviderMock) CreateCheckoutSession(_ context.Context, req payment.SessionRequest) (string, error) {
	m.requests = append(m.requests, req)
	if m.err != nil {
		return "", m.err
	}
	return m.sessionID, nil
}

func newCheckoutHandler(provider *ProviderMock) *CheckoutHandler {
	svc := payment.NewService(provider, nil, payment.Config{
		Currency:   "sek",
		SuccessURL: "https://sauda.test/success",
		CancelURL:  "https://sauda.test/cancel",
	}, nil)
	return NewCheckoutHandler(svc, 5*time.Second, nil)
}

const validItems = `{"items":[{"product":{"id":"gid://shopify/Product/1","handle":"tee","title":"Tour Tee","priceRange":{"minVariantPrice":{"amount":"100.00","currencyCode":"SEK"}}},"quantity":2}]}`

func TestCreateSession_Success(t *testing.T) {
	provider := &ProviderMock{sessionID: "cs_test_123"}
	handler := newCheckoutHandler(provider)

	recorder := httptest.NewRecorder()
	handler.CreateSession(recorder, httptest.NewRequest(http.MethodPost, "/api/stripe", strings.NewReader(validItems)))

	require.Equal(t, http.StatusOK, recorder.Code)

	var body SessionResponseDTO
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
	assert.Equal(t, "cs_test_123", body.SessionID)

	require.Len(t, provider.requests, 1)
	req := provider.requests[0]
	require.Len(t, req.LineItems, 1)
	assert.Equal(t, int64(10000), req.LineItems[0].UnitAmount)
	assert.Equal(t, int64(2), req.LineItems[0].Quantity)
	assert.Equal(t, "sek", req.Currency)
}

func TestCreateSession_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{"items":`},
		{"missing items", `{}`},
		{"null items", `{"items":null}`},
		{"empty items", `{"items":[]}`},
		{"items not an array", `{"items":{"product":{}}}`},
		{"items a string", `{"items":"tee"}`},
		{"missing title", `{"items":[{"product":{"id":"1","priceRange":{"minVariantPrice":{"amount":"10.00","currencyCode":"SEK"}}},"quantity":1}]}`},
		{"missing price", `{"items":[{"product":{"id":"1","title":"Tee","priceRange":{}},"quantity":1}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &ProviderMock{sessionID: "cs_unused"}
			handler := newCheckoutHandler(provider)

			recorder := httptest.NewRecorder()
			handler.CreateSession(recorder, httptest.NewRequest(http.MethodPost, "/api/stripe", strings.NewReader(tt.body)))

			assert.Equal(t, http.StatusBadRequest, recorder.Code)

			var body ErrorResponse
			require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
			assert.NotEmpty(t, body.Error)
			assert.Empty(t, provider.requests, "provider must not be called")
		})
	}
}

func TestCreateSession_ProviderFailure(t *testing.T) {
	provider := &ProviderMock{err: &payment.ProviderError{Message: "Invalid API Key provided", Err: errors.New("401")}}
	handler := newCheckoutHandler(provider)

	recorder := httptest.NewRecorder()
	handler.CreateSession(recorder, httptest.NewRequest(http.MethodPost, "/api/stripe", strings.NewReader(validItems)))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
	assert.Equal(t, "Invalid API Key provided", body.Error)
}
