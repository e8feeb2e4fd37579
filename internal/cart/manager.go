package cart

import (
	"context"

	"github.com/Saccor/sauda-website-sub000/internal/commerce"
	"go.uber.org/zap"
)

// CheckoutCreator opens a payment session for a set of items and returns its id.
type CheckoutCreator interface {
	CreateSession(ctx context.Context, items []Item) (string, error)
}

// Manager is the side-effecting layer around Reduce: every mutation loads the
// stored items, applies one action and saves the result.
type Manager struct {
	storage  Storage
	checkout CheckoutCreator
	log      *zap.Logger
}

func NewManager(storage Storage, checkout CheckoutCreator, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		storage:  storage,
		checkout: checkout,
		log:      log,
	}
}

func (m *Manager) Get(ctx context.Context, cartID string) (State, error) {
	s, err := m.load(ctx, cartID)
	return s, wrap("load", err)
}

func (m *Manager) AddItem(ctx context.Context, cartID string, p commerce.Product) (State, error) {
	return m.apply(ctx, "add item", cartID, AddItem(p))
}

func (m *Manager) UpdateQuantity(ctx context.Context, cartID, productID string, quantity int) (State, error) {
	return m.apply(ctx, "update quantity", cartID, UpdateQuantity(productID, quantity))
}

func (m *Manager) RemoveItem(ctx context.Context, cartID, productID string) (State, error) {
	return m.apply(ctx, "remove item", cartID, RemoveItem(productID))
}

func (m *Manager) Clear(ctx context.Context, cartID string) (State, error) {
	return m.apply(ctx, "clear", cartID, ClearCart())
}

// Checkout opens a payment session for the stored items. The cart is kept
// until CompleteCheckout so an abandoned payment does not lose it.
func (m *Manager) Checkout(ctx context.Context, cartID string) (string, error) {
	if m.checkout == nil {
		return "", wrap("checkout", ErrCheckoutMissing)
	}
	s, err := m.load(ctx, cartID)
	if err != nil {
		return "", wrap("checkout", err)
	}
	if len(s.Items) == 0 {
		return "", wrap("checkout", ErrEmptyCart)
	}

	sessionID, err := m.checkout.CreateSession(ctx, s.Items)
	if err != nil {
		m.log.Error("checkout session failed", zap.String("cart_id", cartID), zap.Error(err))
		return "", wrap("checkout", err)
	}
	m.log.Info("checkout session created",
		zap.String("cart_id", cartID),
		zap.String("session_id", sessionID),
		zap.Int("units", Count(s.Items)))
	return sessionID, nil
}

// CompleteCheckout empties the cart after a successful payment.
func (m *Manager) CompleteCheckout(ctx context.Context, cartID string) (State, error) {
	return m.apply(ctx, "complete checkout", cartID, ClearCart())
}

func (m *Manager) apply(ctx context.Context, op, cartID string, a Action) (State, error) {
	s, err := m.load(ctx, cartID)
	if err != nil {
		return State{}, wrap(op, err)
	}

	next := Reduce(s, a)
	if err := m.storage.Save(ctx, cartID, next.Items); err != nil {
		m.log.Error("cart save failed", zap.String("op", op), zap.String("cart_id", cartID), zap.Error(err))
		return State{}, wrap(op, err)
	}
	return next, nil
}

func (m *Manager) load(ctx context.Context, cartID string) (State, error) {
	items, err := m.storage.Load(ctx, cartID)
	if err != nil {
		return State{}, err
	}
	return Reduce(State{}, SetItems(items)), nil
}
