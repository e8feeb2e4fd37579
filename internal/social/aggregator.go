package social

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/Saccor/sauda-website-sub000/internal/cache"
	"github.com/Saccor/sauda-website-sub000/pkg/circuitbreaker"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const feedCacheKey = "social-feed"

const defaultSourceTimeout = 10 * time.Second

type guardedSource struct {
	Source
	breaker *gobreaker.CircuitBreaker[[]Item]
}

// Aggregator fans out to every source, merges the results newest first and keeps
// the merged feed in its cache for the cache's TTL.
type Aggregator struct {
	sources []guardedSource
	cache   cache.Cache[[]Item]
	timeout time.Duration
	sfg     singleflight.Group
	log     *zap.Logger
}

type AggregatorOption func(*Aggregator)

// WithSourceTimeout bounds each upstream call; zero or less means 10s.
func WithSourceTimeout(d time.Duration) AggregatorOption {
	return func(a *Aggregator) {
		a.timeout = d
	}
}

func WithAggregatorLogger(log *zap.Logger) AggregatorOption {
	return func(a *Aggregator) {
		a.log = log
	}
}

func NewAggregator(c cache.Cache[[]Item], sources []Source, opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{
		cache: c,
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.timeout <= 0 {
		a.timeout = defaultSourceTimeout
	}
	for _, src := range sources {
		a.sources = append(a.sources, guardedSource{
			Source:  src,
			breaker: circuitbreaker.New[[]Item](string(src.Platform()), circuitbreaker.DefaultConfig(), a.log),
		})
	}
	return a
}

// Feed returns the merged feed. A failing source contributes nothing; only when
// every configured source fails is the first failure returned. Failed results
// are never cached.
func (a *Aggregator) Feed(ctx context.Context) ([]Item, error) {
	if items, err := a.cache.Get(feedCacheKey); err == nil {
		return items, nil
	}

	ch := a.sfg.DoChan(feedCacheKey, func() (interface{}, error) {
		if items, err := a.cache.Get(feedCacheKey); err == nil {
			return items, nil
		}
		// every waiter shares this fetch, so it must not end with the caller that started it
		items, err := a.fetchAll(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		a.cache.Set(feedCacheKey, items)
		return items, nil
	})

	select {
	case <-ctx.Done():
		return nil, &Error{Kind: KindInternal, Err: ctx.Err()}
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]Item), nil
	}
}

func (a *Aggregator) fetchAll(ctx context.Context) ([]Item, error) {
	results := make([][]Item, len(a.sources))
	errs := make([]error, len(a.sources))

	var g errgroup.Group
	for i, src := range a.sources {
		i, src := i, src
		g.Go(func() error {
			results[i], errs[i] = a.fetchOne(ctx, src)
			return nil
		})
	}
	_ = g.Wait()

	var (
		merged     []Item
		configured int
		failed     int
		firstErr   error
	)
	for i, src := range a.sources {
		if src.Configured() {
			configured++
		}
		if errs[i] != nil {
			failed++
			if firstErr == nil {
				firstErr = errs[i]
			}
			a.log.Warn("social source failed",
				zap.String("platform", string(src.Platform())),
				zap.Stringer("kind", KindOf(errs[i])),
				zap.Error(errs[i]))
			continue
		}
		merged = append(merged, results[i]...)
	}

	if configured > 0 && failed >= configured {
		return nil, firstErr
	}

	SortNewestFirst(merged)
	if merged == nil {
		merged = []Item{}
	}
	a.log.Debug("social feed refreshed", zap.Int("items", len(merged)), zap.Int("failed_sources", failed))
	return merged, nil
}

func (a *Aggregator) fetchOne(ctx context.Context, src guardedSource) ([]Item, error) {
	if !src.Configured() {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	items, err := src.breaker.Execute(func() ([]Item, error) {
		return src.Fetch(ctx)
	})
	if err == nil {
		return items, nil
	}
	if circuitbreaker.IsOpen(err) {
		return nil, &Error{Kind: KindUnavailable, Platform: src.Platform(), Err: err}
	}
	var serr *Error
	if errors.As(err, &serr) {
		return nil, err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return nil, &Error{Kind: KindUnavailable, Platform: src.Platform(), Err: err}
	}
	return nil, &Error{Kind: KindInternal, Platform: src.Platform(), Err: err}
}

// SortNewestFirst orders items by their own timestamps, descending. Ties keep
// their source order.
func SortNewestFirst(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].PostedAt().After(items[j].PostedAt())
	})
}
