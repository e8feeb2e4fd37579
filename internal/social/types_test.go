package social

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItems_MarshalWithPlatformTag(t *testing.T) {
	ts := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	tiktok := TikTokVideo{ID: "7300", Title: "Tour diary", ShareURL: "https://www.tiktok.com/@sauda/video/7300", Timestamp: ts}
	items := []Item{
		InstagramPost{ID: "ig", Permalink: "https://instagram.com/p/1", Timestamp: ts, EmbedHTML: instagramEmbed("https://instagram.com/p/1")},
		YouTubeVideo{ID: "yt", Title: "Video", PublishedAt: ts},
		tiktok,
	}

	raw, err := json.Marshal(items)
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Len(t, decoded, 3)

	assert.Equal(t, "instagram", decoded[0]["platform"])
	assert.Equal(t, "2026-10-01T12:00:00Z", decoded[0]["timestamp"])
	assert.Contains(t, decoded[0]["embedHtml"], "instagram-media")

	assert.Equal(t, "youtube", decoded[1]["platform"])
	assert.Equal(t, "2026-10-01T12:00:00Z", decoded[1]["publishedAt"])
	assert.NotContains(t, decoded[1], "timestamp")

	assert.Equal(t, "tiktok", decoded[2]["platform"])
	assert.Equal(t, "https://www.tiktok.com/@sauda/video/7300", decoded[2]["shareUrl"])
	assert.Equal(t, "2026-10-01T12:00:00Z", decoded[2]["timestamp"])
}

func TestTikTokSource_IsStub(t *testing.T) {
	s := NewTikTokSource()
	assert.Equal(t, PlatformTikTok, s.Platform())
	assert.False(t, s.Configured())

	items, err := s.Fetch(context.Background())
	require.NoError(t, err)
	assert.Nil(t, items)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "rate_limited", KindRateLimited.String())
	assert.Equal(t, "unauthorized", KindUnauthorized.String())
	assert.Equal(t, "unavailable", KindUnavailable.String())
	assert.Equal(t, "internal", KindInternal.String())
}
