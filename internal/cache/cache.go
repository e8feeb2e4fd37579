package cache

import "errors"

// Cache is a keyed store with its own freshness policy.
type Cache[V any] interface {
	Get(key string) (V, error)
	Set(key string, value V)
	Delete(key string)
}

var ErrCacheMiss = errors.New("cache miss")
