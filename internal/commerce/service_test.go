package commerce

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Saccor/sauda-website-sub000/internal/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStorefront struct {
	calls   atomic.Int32
	err     error
	delay   time.Duration
	product *Product
}

func (f *fakeStorefront) hit() error {
	f.calls.Add(1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	return f.err
}

func (f *fakeStorefront) Menu(_ context.Context, handle string) (*Menu, error) {
	if err := f.hit(); err != nil {
		return nil, err
	}
	return &Menu{Handle: handle}, nil
}

func (f *fakeStorefront) Products(context.Context, int) ([]Product, error) {
	if err := f.hit(); err != nil {
		return nil, err
	}
	return []Product{{ID: "1", Title: "Tee"}}, nil
}

func (f *fakeStorefront) ProductByHandle(_ context.Context, handle string) (*Product, error) {
	if err := f.hit(); err != nil {
		return nil, err
	}
	if f.product == nil {
		return nil, ErrNotFound
	}
	return f.product, nil
}

func (f *fakeStorefront) TourDates(context.Context, int) ([]TourDate, error) {
	if err := f.hit(); err != nil {
		return nil, err
	}
	return []TourDate{{ID: "t1"}}, nil
}

func (f *fakeStorefront) FeaturedArtist(context.Context) (*FeaturedArtist, error) {
	if err := f.hit(); err != nil {
		return nil, err
	}
	return &FeaturedArtist{Name: "Sauda"}, nil
}

func TestService_CachesResults(t *testing.T) {
	up := &fakeStorefront{}
	sut := NewService(up, cache.NewTTL[any](time.Minute), nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		products, err := sut.Products(ctx, 10)
		require.NoError(t, err)
		assert.Len(t, products, 1)
	}
	assert.EqualValues(t, 1, up.calls.Load())

	// different arguments are different keys
	_, err := sut.Products(ctx, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 2, up.calls.Load())

	_, err = sut.TourDates(ctx, 50)
	require.NoError(t, err)
	_, err = sut.FeaturedArtist(ctx)
	require.NoError(t, err)
	_, err = sut.Menu(ctx, "main-menu")
	require.NoError(t, err)
	_, err = sut.FeaturedArtist(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 5, up.calls.Load())
}

func TestService_ErrorsAreNotCached(t *testing.T) {
	up := &fakeStorefront{err: &Error{Kind: KindNetwork, Op: "products", Err: errors.New("dial tcp")}}
	sut := NewService(up, cache.NewTTL[any](time.Minute), nil)
	ctx := context.Background()

	_, err := sut.Products(ctx, 10)
	assert.Equal(t, KindNetwork, KindOf(err))

	up.err = nil
	products, err := sut.Products(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, products, 1)
	assert.EqualValues(t, 2, up.calls.Load())
}

func TestService_NotFound(t *testing.T) {
	sut := NewService(&fakeStorefront{}, cache.NewTTL[any](time.Minute), nil)
	_, err := sut.ProductByHandle(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_ConcurrentMissesShareOneCall(t *testing.T) {
	up := &fakeStorefront{delay: 50 * time.Millisecond, product: &Product{ID: "p"}}
	sut := NewService(up, cache.NewTTL[any](time.Minute), nil)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := sut.ProductByHandle(context.Background(), "tee")
			assert.NoError(t, err)
			assert.Equal(t, "p", p.ID)
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, up.calls.Load())
}

// gatedStorefront holds ProductByHandle until release is closed.
type gatedStorefront struct {
	fakeStorefront
	started chan struct{}
	release chan struct{}
}

func (g *gatedStorefront) ProductByHandle(ctx context.Context, handle string) (*Product, error) {
	if g.calls.Add(1) == 1 {
		close(g.started)
	}
	select {
	case <-g.release:
		return &Product{ID: "p", Handle: handle}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func TestService_CancelledCallerDoesNotFailOthers(t *testing.T) {
	up := &gatedStorefront{started: make(chan struct{}), release: make(chan struct{})}
	sut := NewService(up, cache.NewTTL[any](time.Minute), nil)

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := sut.ProductByHandle(firstCtx, "tee")
		firstErr <- err
	}()
	<-up.started

	type result struct {
		p   *Product
		err error
	}
	second := make(chan result, 1)
	go func() {
		p, err := sut.ProductByHandle(context.Background(), "tee")
		second <- result{p, err}
	}()

	cancelFirst()
	err := <-firstErr
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, KindNetwork, KindOf(err))

	close(up.release)
	got := <-second
	require.NoError(t, got.err)
	assert.Equal(t, "p", got.p.ID)
	assert.EqualValues(t, 1, up.calls.Load())
}
