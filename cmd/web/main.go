package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Saccor/sauda-website-sub000/internal/cache"
	"github.com/Saccor/sauda-website-sub000/internal/cart"
	"github.com/Saccor/sauda-website-sub000/internal/catalog"
	"github.com/Saccor/sauda-website-sub000/internal/commerce"
	"github.com/Saccor/sauda-website-sub000/internal/config"
	"github.com/Saccor/sauda-website-sub000/internal/events"
	h "github.com/Saccor/sauda-website-sub000/internal/http"
	"github.com/Saccor/sauda-website-sub000/internal/payment"
	"github.com/Saccor/sauda-website-sub000/internal/social"
	"github.com/Saccor/sauda-website-sub000/pkg/logger"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

const (
	instagramPostLimit = 12
	youtubeVideoLimit  = 12
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel, cfg.Development())
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()
	zap.ReplaceGlobals(zl)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Outbound calls share one instrumented client
	upstream := &http.Client{
		Timeout:   cfg.UpstreamTimeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	// Checkout events
	var publisher events.Publisher = events.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.KafkaTopic, zl, cfg.KafkaBrokers...)
		zl.Info("publishing checkout events", zap.Strings("brokers", cfg.KafkaBrokers), zap.String("topic", cfg.KafkaTopic))
	}
	defer publisher.Close()

	// Payments
	var payments *payment.Service
	var checkout cart.CheckoutCreator
	if cfg.StripeSecretKey != "" {
		provider := payment.NewStripeProvider(cfg.StripeSecretKey, payment.WithHTTPClient(upstream))
		payments = payment.NewService(provider, publisher, payment.Config{
			Currency:       cfg.Currency,
			SuccessURL:     cfg.CheckoutSuccessURL,
			CancelURL:      cfg.CheckoutCancelURL,
			PublishTimeout: cfg.PublishTimeout,
		}, zl)
		checkout = payments
	} else {
		zl.Warn("STRIPE_SECRET_KEY not set, checkout disabled")
	}

	// Cart storage
	var storage cart.Storage = cart.NewMemoryStorage()
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			zl.Fatal("Failed to connect to redis", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		storage = cart.NewRedisStorage(rdb, cfg.CartTTL)
	}
	carts := cart.NewManager(storage, checkout, zl)

	// Commerce
	var store *commerce.Service
	if cfg.CommerceConfigured() {
		client, err := commerce.NewClient(cfg.ShopifyStoreDomain, cfg.ShopifyStorefrontToken, cfg.ShopifyAPIVersion,
			commerce.WithHTTPClient(upstream),
			commerce.WithLogger(zl),
		)
		if err != nil {
			zl.Fatal("Failed to create storefront client", zap.Error(err))
		}
		store = commerce.NewService(client, cache.NewTTL[any](cfg.CommerceCacheTTL), zl)
	} else {
		zl.Warn("Shopify credentials not set, commerce routes disabled")
	}

	// Social feed
	youtubeSource, err := social.NewYouTubeSource(ctx, cfg.YouTubeAPIKey, cfg.YouTubeChannelID, youtubeVideoLimit, upstream.Transport)
	if err != nil {
		zl.Fatal("Failed to create youtube source", zap.Error(err))
	}
	feed := social.NewAggregator(
		cache.NewTTL[[]social.Item](cfg.FeedCacheTTL),
		[]social.Source{
			social.NewInstagramSource(cfg.InstagramAccessToken, upstream, instagramPostLimit),
			social.NewTikTokSource(),
			youtubeSource,
		},
		social.WithSourceTimeout(cfg.UpstreamTimeout),
		social.WithAggregatorLogger(zl),
	)

	// Static artists and events
	repo, err := catalog.NewRepository(":memory:")
	if err != nil {
		zl.Fatal("Failed to open catalog database", zap.Error(err))
	}
	defer repo.Close()
	if err := repo.RunMigrations(); err != nil {
		zl.Fatal("Failed to seed catalog", zap.Error(err))
	}

	handlers := h.Handlers{
		Feed:    h.NewFeedHandler(feed, cfg.RequestTimeout, zl),
		Catalog: h.NewCatalogHandler(repo, cfg.RequestTimeout, zl),
	}
	if payments != nil {
		handlers.Checkout = h.NewCheckoutHandler(payments, cfg.RequestTimeout, zl)
	}
	if store != nil {
		handlers.Commerce = h.NewCommerceHandler(store, cfg.RequestTimeout, zl)
		handlers.Cart = h.NewCartHandler(carts, store, cfg.RequestTimeout, zl)
	} else {
		handlers.Cart = h.NewCartHandler(carts, nil, cfg.RequestTimeout, zl)
	}

	router := h.NewRouter(h.RouterConfig{
		RequestTimeout:     cfg.RequestTimeout,
		MaxRequestBodySize: cfg.MaxRequestBodySize,
		CORSOrigins:        cfg.CORSOrigins,
	}, handlers, zl)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		zl.Info("web server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Error("server error", zap.Error(err))
			stop()
		}
	}()

	// Graceful shutdown
	<-ctx.Done()

	zl.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("server forced to shutdown", zap.Error(err))
		os.Exit(1)
	}
	if payments != nil {
		payments.Wait()
	}

	zl.Info("server exited")
}
