package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Storage persists the serialized item list of a cart. Loading an unknown cart
// yields an empty list, not an error.
type Storage interface {
	Load(ctx context.Context, cartID string) ([]Item, error)
	Save(ctx context.Context, cartID string, items []Item) error
}

// MemoryStorage keeps carts in process memory, for hosts without a shared store.
type MemoryStorage struct {
	mu    sync.RWMutex
	carts map[string][]byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{carts: make(map[string][]byte)}
}

func (m *MemoryStorage) Load(_ context.Context, cartID string) ([]Item, error) {
	m.mu.RLock()
	data, ok := m.carts[storageKey(cartID)]
	m.mu.RUnlock()
	if !ok {
		return []Item{}, nil
	}

	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("unmarshal cart failed: %w", err)
	}
	return items, nil
}

func (m *MemoryStorage) Save(_ context.Context, cartID string, items []Item) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.carts[storageKey(cartID)] = data
	return nil
}

func storageKey(cartID string) string {
	return fmt.Sprintf("%s:%s", StorageKey, cartID)
}
