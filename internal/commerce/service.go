package commerce

import (
	"context"
	"errors"
	"fmt"

	"github.com/Saccor/sauda-website-sub000/internal/cache"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Storefront is the read-only surface of the commerce platform used by the site.
type Storefront interface {
	Menu(ctx context.Context, handle string) (*Menu, error)
	Products(ctx context.Context, first int) ([]Product, error)
	ProductByHandle(ctx context.Context, handle string) (*Product, error)
	TourDates(ctx context.Context, first int) ([]TourDate, error)
	FeaturedArtist(ctx context.Context) (*FeaturedArtist, error)
}

// Service is a read-through cache in front of a Storefront. Concurrent misses
// for the same key share one upstream call.
type Service struct {
	upstream Storefront
	cache    cache.Cache[any]
	sfg      singleflight.Group // Prevents cache stampede
	log      *zap.Logger
}

var _ Storefront = (*Service)(nil)

func NewService(upstream Storefront, c cache.Cache[any], log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		upstream: upstream,
		cache:    c,
		log:      log,
	}
}

func (s *Service) Menu(ctx context.Context, handle string) (*Menu, error) {
	return readThrough(ctx, s, "menu:"+handle, func(ctx context.Context) (*Menu, error) {
		return s.upstream.Menu(ctx, handle)
	})
}

func (s *Service) Products(ctx context.Context, first int) ([]Product, error) {
	return readThrough(ctx, s, fmt.Sprintf("products:%d", first), func(ctx context.Context) ([]Product, error) {
		return s.upstream.Products(ctx, first)
	})
}

func (s *Service) ProductByHandle(ctx context.Context, handle string) (*Product, error) {
	return readThrough(ctx, s, "product:"+handle, func(ctx context.Context) (*Product, error) {
		return s.upstream.ProductByHandle(ctx, handle)
	})
}

func (s *Service) TourDates(ctx context.Context, first int) ([]TourDate, error) {
	return readThrough(ctx, s, fmt.Sprintf("tour-dates:%d", first), func(ctx context.Context) ([]TourDate, error) {
		return s.upstream.TourDates(ctx, first)
	})
}

func (s *Service) FeaturedArtist(ctx context.Context) (*FeaturedArtist, error) {
	return readThrough(ctx, s, "featured-artist", s.upstream.FeaturedArtist)
}

func readThrough[T any](ctx context.Context, s *Service, key string, fetch func(context.Context) (T, error)) (T, error) {
	var zero T

	if v, err := s.cache.Get(key); err == nil {
		if typed, ok := v.(T); ok {
			return typed, nil
		}
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.log.Warn("commerce cache get error", zap.String("key", key), zap.Error(err))
	}

	ch := s.sfg.DoChan(key, func() (interface{}, error) {
		if cached, err := s.cache.Get(key); err == nil {
			return cached, nil
		}
		// shared by every waiter on key; the client's own timeout bounds it
		res, err := fetch(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		s.cache.Set(key, res)
		return res, nil
	})

	var (
		v   interface{}
		err error
	)
	select {
	case <-ctx.Done():
		return zero, &Error{Kind: KindNetwork, Op: key, Err: ctx.Err()}
	case res := <-ch:
		v, err = res.Val, res.Err
	}
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.log.Error("commerce fetch failed", zap.String("key", key), zap.Stringer("kind", KindOf(err)), zap.Error(err))
		}
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("commerce cache: unexpected type %T for %s", v, key)
	}
	return typed, nil
}
