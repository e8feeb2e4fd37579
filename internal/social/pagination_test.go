package social

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feedOf(n int) []Item {
	items := make([]Item, n)
	for i := range items {
		items[i] = InstagramPost{ID: fmt.Sprint(i), Timestamp: at(-i)}
	}
	return items
}

func TestPaginate_TwentyFiveItems(t *testing.T) {
	items := feedOf(25)

	tests := []struct {
		page    int
		size    int
		hasMore bool
		firstID string
	}{
		{1, 10, true, "0"},
		{2, 10, true, "10"},
		{3, 5, false, "20"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("page %d", tt.page), func(t *testing.T) {
			got := Paginate(items, tt.page, PageSize)
			require.Len(t, got.Posts, tt.size)
			assert.Equal(t, tt.hasMore, got.HasMore)
			assert.Equal(t, tt.page, got.Page)
			assert.Equal(t, 25, got.TotalItems)
			assert.Equal(t, tt.firstID, got.Posts[0].(InstagramPost).ID)
		})
	}
}

func TestPaginate_PastTheEnd(t *testing.T) {
	got := Paginate(feedOf(25), 4, PageSize)
	assert.NotNil(t, got.Posts)
	assert.Empty(t, got.Posts)
	assert.False(t, got.HasMore)
	assert.Equal(t, 25, got.TotalItems)
}

func TestPaginate_HugePage(t *testing.T) {
	page, err := ParsePage("1000000000000000000")
	require.NoError(t, err)

	for _, p := range []int{page, math.MaxInt, 4} {
		got := Paginate(feedOf(25), p, PageSize)
		assert.Empty(t, got.Posts)
		assert.False(t, got.HasMore)
		assert.Equal(t, p, got.Page)
		assert.Equal(t, 25, got.TotalItems)
	}
}

func TestPaginate_ExactPageBoundary(t *testing.T) {
	got := Paginate(feedOf(20), 2, PageSize)
	assert.Len(t, got.Posts, 10)
	assert.False(t, got.HasMore)
}

func TestPaginate_EmptyFeed(t *testing.T) {
	got := Paginate(nil, 1, PageSize)
	assert.Empty(t, got.Posts)
	assert.False(t, got.HasMore)
	assert.Zero(t, got.TotalItems)
}

func TestPaginate_DoesNotAliasFeed(t *testing.T) {
	items := feedOf(3)
	got := Paginate(items, 1, PageSize)
	got.Posts[0] = YouTubeVideo{ID: "x"}
	assert.Equal(t, PlatformInstagram, items[0].Platform())
}

func TestParsePage(t *testing.T) {
	valid := map[string]int{"": 1, "1": 1, "3": 3, "120": 120}
	for raw, want := range valid {
		got, err := ParsePage(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got)
	}

	for _, raw := range []string{"invalid", "-1", "0", "1.5", " 2", "2abc"} {
		_, err := ParsePage(raw)
		assert.ErrorIs(t, err, ErrInvalidPage, raw)
	}
}
