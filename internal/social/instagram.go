package social

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	instagramBaseURL = "https://graph.instagram.com"
	instagramFields  = "id,caption,media_type,media_url,thumbnail_url,permalink,timestamp"
	// Graph API timestamps carry a numeric offset without a colon.
	instagramTimeLayout = "2006-01-02T15:04:05-0700"
)

type InstagramSource struct {
	token   string
	baseURL string
	limit   int
	http    *http.Client
}

func NewInstagramSource(token string, hc *http.Client, limit int) *InstagramSource {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &InstagramSource{
		token:   token,
		baseURL: instagramBaseURL,
		limit:   limit,
		http:    hc,
	}
}

func (s *InstagramSource) Platform() Platform { return PlatformInstagram }

func (s *InstagramSource) Configured() bool { return s.token != "" }

type instagramMedia struct {
	ID           string `json:"id"`
	Caption      string `json:"caption"`
	MediaType    string `json:"media_type"`
	MediaURL     string `json:"media_url"`
	ThumbnailURL string `json:"thumbnail_url"`
	Permalink    string `json:"permalink"`
	Timestamp    string `json:"timestamp"`
}

type instagramError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    int    `json:"code"`
}

func (s *InstagramSource) Fetch(ctx context.Context) ([]Item, error) {
	if s.token == "" {
		return nil, nil
	}
	q := url.Values{}
	q.Set("fields", instagramFields)
	q.Set("access_token", s.token)
	if s.limit > 0 {
		q.Set("limit", strconv.Itoa(s.limit))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/me/media?"+q.Encode(), nil)
	if err != nil {
		return nil, &Error{Kind: KindInternal, Platform: PlatformInstagram, Err: err}
	}
	res, err := s.http.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindUnavailable, Platform: PlatformInstagram, Err: err}
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &Error{Kind: KindUnavailable, Platform: PlatformInstagram, Err: fmt.Errorf("read body: %w", err)}
	}

	var payload struct {
		Data  []instagramMedia `json:"data"`
		Error *instagramError  `json:"error"`
	}
	decodeErr := json.Unmarshal(body, &payload)

	if res.StatusCode != http.StatusOK || payload.Error != nil {
		return nil, classifyInstagram(res.StatusCode, payload.Error)
	}
	if decodeErr != nil {
		return nil, &Error{Kind: KindInternal, Platform: PlatformInstagram, Err: fmt.Errorf("decode response: %w", decodeErr)}
	}

	items := make([]Item, 0, len(payload.Data))
	for _, m := range payload.Data {
		ts, err := time.Parse(instagramTimeLayout, m.Timestamp)
		if err != nil {
			// RFC 3339 shows up from some proxies
			if ts, err = time.Parse(time.RFC3339, m.Timestamp); err != nil {
				continue
			}
		}
		items = append(items, InstagramPost{
			ID:           m.ID,
			Caption:      m.Caption,
			MediaType:    m.MediaType,
			MediaURL:     m.MediaURL,
			ThumbnailURL: m.ThumbnailURL,
			Permalink:    m.Permalink,
			Timestamp:    ts.UTC(),
			EmbedHTML:    instagramEmbed(m.Permalink),
		})
	}
	return items, nil
}

// Graph API error codes: 4, 17, 32 and 613 are throttling; 190 is an invalid or
// expired token.
func classifyInstagram(status int, apiErr *instagramError) error {
	msg := fmt.Sprintf("unexpected status %d", status)
	code := 0
	if apiErr != nil {
		msg = apiErr.Message
		code = apiErr.Code
	}
	err := errors.New(msg)

	switch {
	case status == http.StatusTooManyRequests, code == 4, code == 17, code == 32, code == 613:
		return &Error{Kind: KindRateLimited, Platform: PlatformInstagram, Err: err}
	case status == http.StatusUnauthorized, code == 190, apiErr != nil && apiErr.Type == "OAuthException":
		return &Error{Kind: KindUnauthorized, Platform: PlatformInstagram, Err: err}
	case status >= 500:
		return &Error{Kind: KindUnavailable, Platform: PlatformInstagram, Err: err}
	default:
		return &Error{Kind: KindInternal, Platform: PlatformInstagram, Err: err}
	}
}
