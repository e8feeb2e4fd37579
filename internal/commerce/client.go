package commerce

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/Saccor/sauda-website-sub000/pkg/circuitbreaker"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

const (
	DefaultProductCount  = 50
	DefaultTourDateCount = 50
)

// Client talks to the Storefront GraphQL API with a fixed set of queries.
type Client struct {
	endpoint string
	token    string
	http     *http.Client
	breaker  *gobreaker.CircuitBreaker[[]byte]
	log      *zap.Logger
}

type ClientOption func(*Client)

func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.http = hc
	}
}

// WithEndpoint overrides the GraphQL URL derived from the store domain.
func WithEndpoint(url string) ClientOption {
	return func(c *Client) {
		c.endpoint = url
	}
}

func WithLogger(log *zap.Logger) ClientOption {
	return func(c *Client) {
		c.log = log
	}
}

func NewClient(storeDomain, token, apiVersion string, opts ...ClientOption) (*Client, error) {
	if err := checkQueries(); err != nil {
		return nil, err
	}

	c := &Client{
		endpoint: fmt.Sprintf("https://%s/api/%s/graphql.json", strings.TrimSuffix(storeDomain, "/"), apiVersion),
		token:    token,
		http: &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.breaker = circuitbreaker.New[[]byte]("shopify-storefront", circuitbreaker.DefaultConfig(), c.log)
	return c, nil
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

func (c *Client) Menu(ctx context.Context, handle string) (*Menu, error) {
	var data struct {
		Menu *Menu `json:"menu"`
	}
	if err := c.do(ctx, "menu", menuQuery, map[string]any{"handle": handle}, &data); err != nil {
		return nil, err
	}
	if data.Menu == nil {
		return nil, fmt.Errorf("menu %q: %w", handle, ErrNotFound)
	}
	return data.Menu, nil
}

func (c *Client) Products(ctx context.Context, first int) ([]Product, error) {
	var data struct {
		Products struct {
			Edges []struct {
				Node productNode `json:"node"`
			} `json:"edges"`
		} `json:"products"`
	}
	if err := c.do(ctx, "products", productsQuery, map[string]any{"first": first}, &data); err != nil {
		return nil, err
	}

	products := make([]Product, 0, len(data.Products.Edges))
	for _, e := range data.Products.Edges {
		products = append(products, e.Node.flatten())
	}
	return products, nil
}

func (c *Client) ProductByHandle(ctx context.Context, handle string) (*Product, error) {
	var data struct {
		Product *productNode `json:"product"`
	}
	if err := c.do(ctx, "product", productByHandleQuery, map[string]any{"handle": handle}, &data); err != nil {
		return nil, err
	}
	if data.Product == nil {
		return nil, fmt.Errorf("product %q: %w", handle, ErrNotFound)
	}
	p := data.Product.flatten()
	return &p, nil
}

// TourDates returns the tour_date metaobjects ordered by date.
func (c *Client) TourDates(ctx context.Context, first int) ([]TourDate, error) {
	var data struct {
		Metaobjects struct {
			Edges []struct {
				Node struct {
					ID     string `json:"id"`
					Fields []struct {
						Key   string  `json:"key"`
						Value *string `json:"value"`
					} `json:"fields"`
				} `json:"node"`
			} `json:"edges"`
		} `json:"metaobjects"`
	}
	if err := c.do(ctx, "tour dates", tourDatesQuery, map[string]any{"first": first}, &data); err != nil {
		return nil, err
	}

	dates := make([]TourDate, 0, len(data.Metaobjects.Edges))
	for _, e := range data.Metaobjects.Edges {
		td := TourDate{ID: e.Node.ID}
		for _, f := range e.Node.Fields {
			if f.Value == nil {
				continue
			}
			switch f.Key {
			case "date":
				td.Date = *f.Value
			case "venue":
				td.Venue = *f.Value
			case "city":
				td.City = *f.Value
			case "country":
				td.Country = *f.Value
			case "ticket_url":
				td.TicketURL = *f.Value
			case "sold_out":
				td.SoldOut = *f.Value == "true"
			}
		}
		dates = append(dates, td)
	}
	// ISO dates sort lexically
	sort.SliceStable(dates, func(i, j int) bool { return dates[i].Date < dates[j].Date })
	return dates, nil
}

func (c *Client) FeaturedArtist(ctx context.Context) (*FeaturedArtist, error) {
	type metafield struct {
		Value string `json:"value"`
	}
	var data struct {
		Shop struct {
			Name  *metafield `json:"name"`
			Bio   *metafield `json:"bio"`
			Image *metafield `json:"image"`
			Video *metafield `json:"video"`
		} `json:"shop"`
	}
	if err := c.do(ctx, "featured artist", featuredArtistQuery, nil, &data); err != nil {
		return nil, err
	}
	if data.Shop.Name == nil {
		return nil, fmt.Errorf("featured artist: %w", ErrNotFound)
	}

	value := func(m *metafield) string {
		if m == nil {
			return ""
		}
		return m.Value
	}
	return &FeaturedArtist{
		Name:     data.Shop.Name.Value,
		Bio:      value(data.Shop.Bio),
		ImageURL: value(data.Shop.Image),
		VideoURL: value(data.Shop.Video),
	}, nil
}

func (c *Client) do(ctx context.Context, op, query string, vars map[string]any, out any) error {
	body, err := json.Marshal(graphQLRequest{Query: query, Variables: vars})
	if err != nil {
		return &Error{Kind: KindCommerce, Op: op, Err: fmt.Errorf("marshal request: %w", err)}
	}

	raw, err := c.breaker.Execute(func() ([]byte, error) {
		return c.post(ctx, op, body)
	})
	if err != nil {
		var cerr *Error
		if errors.As(err, &cerr) {
			return cerr
		}
		// breaker refused the call
		return &Error{Kind: KindNetwork, Op: op, Err: err}
	}

	var resp graphQLResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return &Error{Kind: KindCommerce, Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	if len(resp.Errors) > 0 {
		msgs := make([]string, 0, len(resp.Errors))
		for _, e := range resp.Errors {
			msgs = append(msgs, e.Message)
		}
		return &Error{Kind: KindCommerce, Op: op, Err: errors.New(strings.Join(msgs, "; "))}
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return &Error{Kind: KindCommerce, Op: op, Err: fmt.Errorf("decode data: %w", err)}
	}
	return nil
}

func (c *Client) post(ctx context.Context, op string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Shopify-Storefront-Access-Token", c.token)

	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Op: op, Err: err}
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Op: op, Err: fmt.Errorf("read body: %w", err)}
	}
	c.log.Debug("storefront query",
		zap.String("op", op),
		zap.Int("status", res.StatusCode),
		zap.Duration("duration", time.Since(start)))

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &Error{
			Kind:   KindCommerce,
			Op:     op,
			Status: res.StatusCode,
			Err:    fmt.Errorf("unexpected status %d", res.StatusCode),
		}
	}
	return raw, nil
}

type connection[T any] struct {
	Edges []struct {
		Node T `json:"node"`
	} `json:"edges"`
}

type productNode struct {
	ID            string              `json:"id"`
	Handle        string              `json:"handle"`
	Title         string              `json:"title"`
	Description   string              `json:"description"`
	FeaturedImage *Image              `json:"featuredImage"`
	Images        connection[Image]   `json:"images"`
	PriceRange    PriceRange          `json:"priceRange"`
	Variants      connection[Variant] `json:"variants"`
}

func (n productNode) flatten() Product {
	p := Product{
		ID:            n.ID,
		Handle:        n.Handle,
		Title:         n.Title,
		Description:   n.Description,
		FeaturedImage: n.FeaturedImage,
		PriceRange:    n.PriceRange,
	}
	for _, e := range n.Images.Edges {
		p.Images = append(p.Images, e.Node)
	}
	for _, e := range n.Variants.Edges {
		p.Variants = append(p.Variants, e.Node)
	}
	return p
}
