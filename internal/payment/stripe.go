package payment

import (
	"context"
	"errors"
	"net/http"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"
)

// StripeProvider creates Stripe Checkout sessions. One instance is built per
// process and shared by every request.
type StripeProvider struct {
	api *client.API
}

type StripeOption func(*stripe.BackendConfig)

// WithBaseURL points the client at another API host, for tests.
func WithBaseURL(url string) StripeOption {
	return func(c *stripe.BackendConfig) {
		c.URL = stripe.String(url)
	}
}

func WithHTTPClient(hc *http.Client) StripeOption {
	return func(c *stripe.BackendConfig) {
		c.HTTPClient = hc
	}
}

func WithMaxRetries(n int64) StripeOption {
	return func(c *stripe.BackendConfig) {
		c.MaxNetworkRetries = stripe.Int64(n)
	}
}

func NewStripeProvider(secretKey string, opts ...StripeOption) *StripeProvider {
	cfg := &stripe.BackendConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	backend := stripe.GetBackendWithConfig(stripe.APIBackend, cfg)

	api := &client.API{}
	api.Init(secretKey, &stripe.Backends{
		API:     backend,
		Connect: backend,
		Uploads: backend,
	})
	return &StripeProvider{api: api}
}

func (p *StripeProvider) CreateCheckoutSession(ctx context.Context, req SessionRequest) (string, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(req.LineItems))
	for _, li := range req.LineItems {
		productData := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripe.String(li.Name),
		}
		if li.ImageURL != "" {
			productData.Images = stripe.StringSlice([]string{li.ImageURL})
		}
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(req.Currency),
				ProductData: productData,
				UnitAmount:  stripe.Int64(li.UnitAmount),
			},
			Quantity: stripe.Int64(li.Quantity),
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems:          lineItems,
		SuccessURL:         stripe.String(req.SuccessURL),
		CancelURL:          stripe.String(req.CancelURL),
	}
	params.Context = ctx

	sess, err := p.api.CheckoutSessions.New(params)
	if err != nil {
		return "", &ProviderError{Message: stripeMessage(err), Err: err}
	}
	return sess.ID, nil
}

func stripeMessage(err error) string {
	var se *stripe.Error
	if errors.As(err, &se) && se.Msg != "" {
		return se.Msg
	}
	return err.Error()
}
