package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort           string
	AppEnv             string
	LogLevel           string
	RequestTimeout     time.Duration
	UpstreamTimeout    time.Duration
	ShutdownTimeout    time.Duration
	MaxRequestBodySize int64
	CORSOrigins        []string

	ShopifyStoreDomain     string
	ShopifyStorefrontToken string
	ShopifyAPIVersion      string
	CommerceCacheTTL       time.Duration

	StripeSecretKey    string
	CheckoutSuccessURL string
	CheckoutCancelURL  string
	Currency           string

	InstagramAccessToken string
	YouTubeAPIKey        string
	YouTubeChannelID     string
	FeedCacheTTL         time.Duration

	RedisAddr     string
	RedisPassword string
	CartTTL       time.Duration

	KafkaBrokers   []string
	KafkaTopic     string
	PublishTimeout time.Duration
}

// Load reads the configuration from the environment. A .env file in the working
// directory is applied first when present; real environment variables win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{
		HTTPPort:           getEnv("HTTP_PORT", "8080"),
		AppEnv:             getEnv("APP_ENV", "production"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		MaxRequestBodySize: 1 << 20, // 1MB
		CORSOrigins:        splitList(getEnv("CORS_ORIGINS", "*")),

		ShopifyStoreDomain:     getEnv("SHOPIFY_STORE_DOMAIN", ""),
		ShopifyStorefrontToken: getEnv("SHOPIFY_STOREFRONT_TOKEN", ""),
		ShopifyAPIVersion:      getEnv("SHOPIFY_API_VERSION", "2024-01"),

		StripeSecretKey:    getEnv("STRIPE_SECRET_KEY", ""),
		CheckoutSuccessURL: getEnv("CHECKOUT_SUCCESS_URL", "http://localhost:3000/success?session_id={CHECKOUT_SESSION_ID}"),
		CheckoutCancelURL:  getEnv("CHECKOUT_CANCEL_URL", "http://localhost:3000/cart"),
		Currency:           strings.ToLower(getEnv("CURRENCY", "usd")),

		InstagramAccessToken: getEnv("INSTAGRAM_ACCESS_TOKEN", ""),
		YouTubeAPIKey:        getEnv("YOUTUBE_API_KEY", ""),
		YouTubeChannelID:     getEnv("YOUTUBE_CHANNEL_ID", ""),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		KafkaBrokers: splitList(getEnv("KAFKA_BROKERS", "")),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "checkout-events"),
	}

	durations := []struct {
		key string
		def string
		dst *time.Duration
	}{
		{"REQUEST_TIMEOUT", "30s", &cfg.RequestTimeout},
		{"UPSTREAM_TIMEOUT", "10s", &cfg.UpstreamTimeout},
		{"SHUTDOWN_TIMEOUT", "10s", &cfg.ShutdownTimeout},
		{"COMMERCE_CACHE_TTL", "5m", &cfg.CommerceCacheTTL},
		{"FEED_CACHE_TTL", "5m", &cfg.FeedCacheTTL},
		{"CART_TTL", "720h", &cfg.CartTTL},
		{"PUBLISH_TIMEOUT", "5s", &cfg.PublishTimeout},
	}
	for _, d := range durations {
		v, err := time.ParseDuration(getEnv(d.key, d.def))
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", d.key, err)
		}
		*d.dst = v
	}

	return cfg, nil
}

// Development reports whether the process runs with developer-friendly defaults.
func (c *Config) Development() bool {
	return c.AppEnv == "development"
}

// CommerceConfigured reports whether the storefront credentials are set.
func (c *Config) CommerceConfigured() bool {
	return c.ShopifyStoreDomain != "" && c.ShopifyStorefrontToken != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
