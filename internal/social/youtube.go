package social

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/googleapi/transport"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

type YouTubeSource struct {
	svc       *youtube.Service
	channelID string
	limit     int64
}

// NewYouTubeSource builds a Data API v3 client keyed by apiKey. base carries the
// requests (nil means http.DefaultTransport). An empty key or channel yields an
// unconfigured source.
func NewYouTubeSource(ctx context.Context, apiKey, channelID string, limit int64, base http.RoundTripper, opts ...option.ClientOption) (*YouTubeSource, error) {
	s := &YouTubeSource{channelID: channelID, limit: limit}
	if apiKey == "" || channelID == "" {
		return s, nil
	}
	if base == nil {
		base = http.DefaultTransport
	}

	hc := &http.Client{Transport: &transport.APIKey{Key: apiKey, Transport: base}}
	svc, err := youtube.NewService(ctx, append([]option.ClientOption{option.WithHTTPClient(hc)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}
	s.svc = svc
	return s, nil
}

func (s *YouTubeSource) Platform() Platform { return PlatformYouTube }

func (s *YouTubeSource) Configured() bool { return s.svc != nil }

func (s *YouTubeSource) Fetch(ctx context.Context) ([]Item, error) {
	if s.svc == nil {
		return nil, nil
	}

	call := s.svc.Search.List([]string{"snippet"}).
		ChannelId(s.channelID).
		Order("date").
		Type("video").
		Context(ctx)
	if s.limit > 0 {
		call = call.MaxResults(s.limit)
	}

	res, err := call.Do()
	if err != nil {
		return nil, classifyYouTube(err)
	}

	items := make([]Item, 0, len(res.Items))
	for _, r := range res.Items {
		if r.Id == nil || r.Id.VideoId == "" || r.Snippet == nil {
			continue
		}
		published, err := time.Parse(time.RFC3339, r.Snippet.PublishedAt)
		if err != nil {
			continue
		}
		items = append(items, YouTubeVideo{
			ID:           r.Id.VideoId,
			Title:        r.Snippet.Title,
			Description:  r.Snippet.Description,
			ThumbnailURL: thumbnail(r.Snippet.Thumbnails),
			PublishedAt:  published.UTC(),
			EmbedHTML:    youtubeEmbed(r.Id.VideoId, r.Snippet.Title),
		})
	}
	return items, nil
}

func thumbnail(t *youtube.ThumbnailDetails) string {
	if t == nil {
		return ""
	}
	for _, th := range []*youtube.Thumbnail{t.High, t.Medium, t.Default} {
		if th != nil && th.Url != "" {
			return th.Url
		}
	}
	return ""
}

func classifyYouTube(err error) error {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return &Error{Kind: KindUnavailable, Platform: PlatformYouTube, Err: err}
	}

	for _, item := range gerr.Errors {
		switch item.Reason {
		case "quotaExceeded", "rateLimitExceeded", "userRateLimitExceeded", "dailyLimitExceeded":
			return &Error{Kind: KindRateLimited, Platform: PlatformYouTube, Err: err}
		case "keyInvalid", "keyExpired", "authError", "forbidden", "accessNotConfigured":
			return &Error{Kind: KindUnauthorized, Platform: PlatformYouTube, Err: err}
		}
	}

	switch {
	case gerr.Code == http.StatusTooManyRequests:
		return &Error{Kind: KindRateLimited, Platform: PlatformYouTube, Err: err}
	case gerr.Code == http.StatusUnauthorized, gerr.Code == http.StatusForbidden:
		return &Error{Kind: KindUnauthorized, Platform: PlatformYouTube, Err: err}
	case gerr.Code >= 500:
		return &Error{Kind: KindUnavailable, Platform: PlatformYouTube, Err: err}
	default:
		return &Error{Kind: KindInternal, Platform: PlatformYouTube, Err: err}
	}
}
