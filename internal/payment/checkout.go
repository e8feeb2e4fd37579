package payment

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Saccor/sauda-website-sub000/internal/cart"
	"github.com/Saccor/sauda-website-sub000/internal/events"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const EventSessionCreated = "checkout.session.created"

const defaultPublishTimeout = 5 * time.Second

var hundred = decimal.NewFromInt(100)

type LineItem struct {
	Name       string
	ImageURL   string
	UnitAmount int64
	Quantity   int64
}

type SessionRequest struct {
	LineItems  []LineItem
	Currency   string
	SuccessURL string
	CancelURL  string
}

// SessionCreator is the payment provider's checkout-session contract.
type SessionCreator interface {
	CreateCheckoutSession(ctx context.Context, req SessionRequest) (string, error)
}

type Config struct {
	Currency   string
	SuccessURL string
	CancelURL  string
	// PublishTimeout bounds the session-created event; zero means 5s.
	PublishTimeout time.Duration
}

type SessionCreatedEvent struct {
	Type        string          `json:"type"`
	SessionID   string          `json:"session_id"`
	Currency    string          `json:"currency"`
	AmountTotal int64           `json:"amount_total"`
	Items       []EventLineItem `json:"items"`
	CreatedAt   time.Time       `json:"created_at"`
}

type EventLineItem struct {
	Title      string `json:"title"`
	Quantity   int64  `json:"quantity"`
	UnitAmount int64  `json:"unit_amount"`
}

type Service struct {
	provider  SessionCreator
	publisher events.Publisher
	cfg       Config
	log       *zap.Logger
	inflight  sync.WaitGroup
}

func NewService(provider SessionCreator, publisher events.Publisher, cfg Config, log *zap.Logger) *Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.PublishTimeout <= 0 {
		cfg.PublishTimeout = defaultPublishTimeout
	}
	return &Service{
		provider:  provider,
		publisher: publisher,
		cfg:       cfg,
		log:       log,
	}
}

// CreateSession validates the items, converts prices to minor units and asks the
// provider for a checkout session. The returned id is opaque.
func (s *Service) CreateSession(ctx context.Context, items []cart.Item) (string, error) {
	lineItems, err := BuildLineItems(items)
	if err != nil {
		return "", err
	}

	sessionID, err := s.provider.CreateCheckoutSession(ctx, SessionRequest{
		LineItems:  lineItems,
		Currency:   s.cfg.Currency,
		SuccessURL: s.cfg.SuccessURL,
		CancelURL:  s.cfg.CancelURL,
	})
	if err != nil {
		return "", err
	}

	// the session exists at the provider now; the event must not hold up the caller
	// nor die with its request
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		s.publish(context.WithoutCancel(ctx), sessionID, lineItems)
	}()
	return sessionID, nil
}

// Wait blocks until every pending session-created event has been published or
// has given up. Call it before closing the publisher.
func (s *Service) Wait() {
	s.inflight.Wait()
}

// publishing is best effort and bounded by cfg.PublishTimeout
func (s *Service) publish(ctx context.Context, sessionID string, lineItems []LineItem) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.PublishTimeout)
	defer cancel()

	event := SessionCreatedEvent{
		Type:      EventSessionCreated,
		SessionID: sessionID,
		Currency:  s.cfg.Currency,
		Items:     make([]EventLineItem, 0, len(lineItems)),
		CreatedAt: time.Now().UTC(),
	}
	for _, li := range lineItems {
		event.AmountTotal += li.UnitAmount * li.Quantity
		event.Items = append(event.Items, EventLineItem{Title: li.Name, Quantity: li.Quantity, UnitAmount: li.UnitAmount})
	}

	if err := s.publisher.Publish(ctx, sessionID, event); err != nil {
		s.log.Warn("checkout event not published", zap.String("session_id", sessionID), zap.Error(err))
	}
}

// BuildLineItems validates cart items for checkout: at least one item, each with a
// title, a minimum variant price and a positive quantity.
func BuildLineItems(items []cart.Item) ([]LineItem, error) {
	if len(items) == 0 {
		return nil, ErrNoItems
	}

	out := make([]LineItem, 0, len(items))
	for i, item := range items {
		if item.Product.Title == "" {
			return nil, &ValidationError{Index: i, Reason: "missing title"}
		}
		price := item.Product.Price()
		if price == "" {
			return nil, &ValidationError{Index: i, Reason: "missing price"}
		}
		amount, err := UnitAmount(price)
		if err != nil {
			return nil, &ValidationError{Index: i, Reason: err.Error()}
		}
		if item.Quantity < 1 {
			return nil, &ValidationError{Index: i, Reason: "quantity must be at least 1"}
		}

		out = append(out, LineItem{
			Name:       item.Product.Title,
			ImageURL:   item.Product.ImageURL(),
			UnitAmount: amount,
			Quantity:   int64(item.Quantity),
		})
	}
	return out, nil
}

// UnitAmount converts a decimal price string to currency minor units, rounding half away from zero.
func UnitAmount(price string) (int64, error) {
	d, err := decimal.NewFromString(price)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q", price)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("negative price %q", price)
	}
	return d.Mul(hundred).Round(0).IntPart(), nil
}
