package social

import (
	"errors"
	"fmt"
)

// Kind classifies a feed failure so the HTTP layer can pick a status without
// inspecting message text.
type Kind int

const (
	KindInternal Kind = iota
	KindRateLimited
	KindUnauthorized
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindRateLimited:
		return "rate_limited"
	case KindUnauthorized:
		return "unauthorized"
	case KindUnavailable:
		return "unavailable"
	default:
		return "internal"
	}
}

type Error struct {
	Kind     Kind
	Platform Platform
	Err      error
}

func (e *Error) Error() string {
	if e.Platform == "" {
		return fmt.Sprintf("social feed (%s): %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s feed (%s): %v", e.Platform, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind carried by err; errors from elsewhere are internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
