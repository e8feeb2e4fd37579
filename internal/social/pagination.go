package social

import (
	"errors"
	"strconv"
)

const PageSize = 10

var ErrInvalidPage = errors.New("page must be a positive integer")

type Page struct {
	Posts      []Item `json:"posts"`
	HasMore    bool   `json:"hasMore"`
	Page       int    `json:"page"`
	TotalItems int    `json:"totalItems"`
}

// ParsePage reads a 1-based page number; empty means the first page.
func ParsePage(raw string) (int, error) {
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 0, ErrInvalidPage
	}
	return page, nil
}

// Paginate slices items into fixed pages of size. A page past the end is empty.
func Paginate(items []Item, page, size int) Page {
	total := len(items)
	start, end := total, total
	// page can be any positive int; compare page counts so the offset never overflows
	if size > 0 && page >= 1 && page-1 < (total+size-1)/size {
		start = (page - 1) * size
		end = min(start+size, total)
	}

	posts := make([]Item, end-start)
	copy(posts, items[start:end])
	return Page{
		Posts:      posts,
		HasMore:    end < total,
		Page:       page,
		TotalItems: total,
	}
}
