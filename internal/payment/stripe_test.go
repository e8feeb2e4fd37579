package payment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripeProvider_CreateCheckoutSession(t *testing.T) {
	var form url.Values
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		assert.NoError(t, r.ParseForm())
		form = r.PostForm
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"cs_test_42","object":"checkout.session"}`))
	}))
	defer srv.Close()

	p := NewStripeProvider("sk_test_x", WithBaseURL(srv.URL), WithHTTPClient(srv.Client()), WithMaxRetries(0))
	id, err := p.CreateCheckoutSession(context.Background(), SessionRequest{
		LineItems:  []LineItem{{Name: "Tour Tee", ImageURL: "https://cdn/tee.png", UnitAmount: 10000, Quantity: 2}},
		Currency:   "usd",
		SuccessURL: "https://site/success",
		CancelURL:  "https://site/cart",
	})
	require.NoError(t, err)
	assert.Equal(t, "cs_test_42", id)

	assert.Equal(t, "/v1/checkout/sessions", path)
	assert.Equal(t, "payment", form.Get("mode"))
	assert.Equal(t, "10000", form.Get("line_items[0][price_data][unit_amount]"))
	assert.Equal(t, "Tour Tee", form.Get("line_items[0][price_data][product_data][name]"))
	assert.Equal(t, "2", form.Get("line_items[0][quantity]"))
	assert.Equal(t, "https://site/success", form.Get("success_url"))
}

func TestStripeProvider_ErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"type":"invalid_request_error","message":"Invalid currency: xyz"}}`))
	}))
	defer srv.Close()

	p := NewStripeProvider("sk_test_x", WithBaseURL(srv.URL), WithHTTPClient(srv.Client()), WithMaxRetries(0))
	_, err := p.CreateCheckoutSession(context.Background(), SessionRequest{
		LineItems: []LineItem{{Name: "Tee", UnitAmount: 100, Quantity: 1}},
		Currency:  "xyz",
	})

	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "Invalid currency: xyz", perr.Error())
}
