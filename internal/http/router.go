package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

type RouterConfig struct {
	RequestTimeout     time.Duration
	MaxRequestBodySize int64
	CORSOrigins        []string
}

// Handlers groups the endpoint sets; a nil entry leaves its routes unmounted.
type Handlers struct {
	Feed     *FeedHandler
	Checkout *CheckoutHandler
	Cart     *CartHandler
	Commerce *CommerceHandler
	Catalog  *CatalogHandler
}

func NewRouter(cfg RouterConfig, hs Handlers, log *zap.Logger) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(RequestIDHeader)
	r.Use(RequestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", CartIDHeader, middleware.RequestIDHeader},
		ExposedHeaders:   []string{CartIDHeader, middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}
	r.Use(MaxBodySize(cfg.MaxRequestBodySize))
	r.Use(middleware.Compress(5))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		if hs.Feed != nil {
			r.Get("/social-feed", hs.Feed.Get)
		}
		if hs.Checkout != nil {
			r.Post("/stripe", hs.Checkout.CreateSession)
		}
		if hs.Cart != nil {
			r.Route("/cart", func(r chi.Router) {
				r.Get("/", hs.Cart.GetCart)
				r.Delete("/", hs.Cart.ClearCart)
				r.Post("/items", hs.Cart.AddItem)
				r.Put("/items/{id}", hs.Cart.UpdateQuantity)
				r.Delete("/items/{id}", hs.Cart.RemoveItem)
				r.Post("/checkout", hs.Cart.Checkout)
				r.Post("/checkout/complete", hs.Cart.CompleteCheckout)
			})
		}
		if hs.Commerce != nil {
			r.Get("/products", hs.Commerce.Products)
			r.Get("/products/{handle}", hs.Commerce.Product)
			r.Get("/tour-dates", hs.Commerce.TourDates)
			r.Get("/menu/{handle}", hs.Commerce.Menu)
			r.Get("/featured-artist", hs.Commerce.FeaturedArtist)
		}
		if hs.Catalog != nil {
			r.Get("/artists", hs.Catalog.ListArtists)
			r.Get("/artists/{id}", hs.Catalog.GetArtist)
			r.Get("/events", hs.Catalog.ListEvents)
			r.Get("/events/{id}", hs.Catalog.GetEvent)
		}
	})

	return otelhttp.NewHandler(r, "sauda-web")
}
