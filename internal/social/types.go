// Package social aggregates the artist's posts from Instagram, TikTok and YouTube
// into one feed ordered newest first.
package social

import (
	"context"
	"encoding/json"
	"time"
)

type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformTikTok    Platform = "tiktok"
	PlatformYouTube   Platform = "youtube"
)

// Item is one post of the unified feed. The concrete type is one of
// InstagramPost, TikTokVideo or YouTubeVideo.
type Item interface {
	Platform() Platform
	// PostedAt is the variant's own timestamp field.
	PostedAt() time.Time
	isItem()
}

type InstagramPost struct {
	ID           string    `json:"id"`
	Caption      string    `json:"caption,omitempty"`
	MediaType    string    `json:"mediaType"`
	MediaURL     string    `json:"mediaUrl"`
	ThumbnailURL string    `json:"thumbnailUrl,omitempty"`
	Permalink    string    `json:"permalink"`
	Timestamp    time.Time `json:"timestamp"`
	EmbedHTML    string    `json:"embedHtml"`
}

func (p InstagramPost) Platform() Platform  { return PlatformInstagram }
func (p InstagramPost) PostedAt() time.Time { return p.Timestamp }
func (InstagramPost) isItem()               {}

func (p InstagramPost) MarshalJSON() ([]byte, error) {
	type alias InstagramPost
	return json.Marshal(struct {
		Platform Platform `json:"platform"`
		alias
	}{PlatformInstagram, alias(p)})
}

type TikTokVideo struct {
	ID        string    `json:"id"`
	Title     string    `json:"title,omitempty"`
	CoverURL  string    `json:"coverUrl"`
	ShareURL  string    `json:"shareUrl"`
	Timestamp time.Time `json:"timestamp"`
	EmbedHTML string    `json:"embedHtml"`
}

func (v TikTokVideo) Platform() Platform  { return PlatformTikTok }
func (v TikTokVideo) PostedAt() time.Time { return v.Timestamp }
func (TikTokVideo) isItem()               {}

func (v TikTokVideo) MarshalJSON() ([]byte, error) {
	type alias TikTokVideo
	return json.Marshal(struct {
		Platform Platform `json:"platform"`
		alias
	}{PlatformTikTok, alias(v)})
}

type YouTubeVideo struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	PublishedAt  time.Time `json:"publishedAt"`
	EmbedHTML    string    `json:"embedHtml"`
}

func (v YouTubeVideo) Platform() Platform  { return PlatformYouTube }
func (v YouTubeVideo) PostedAt() time.Time { return v.PublishedAt }
func (YouTubeVideo) isItem()               {}

func (v YouTubeVideo) MarshalJSON() ([]byte, error) {
	type alias YouTubeVideo
	return json.Marshal(struct {
		Platform Platform `json:"platform"`
		alias
	}{PlatformYouTube, alias(v)})
}

// Source fetches the recent posts of one platform.
type Source interface {
	Platform() Platform
	// Configured reports whether credentials for the platform are present.
	Configured() bool
	Fetch(ctx context.Context) ([]Item, error)
}
