package commerce

import (
	"errors"
	"fmt"
)

// Kind tags every failure coming out of the storefront client.
type Kind int

const (
	// KindCommerce is a failure reported by the commerce platform itself.
	KindCommerce Kind = iota + 1
	// KindNetwork is a failure to reach the platform at all.
	KindNetwork
)

func (k Kind) String() string {
	switch k {
	case KindCommerce:
		return "ShopifyError"
	case KindNetwork:
		return "NetworkError"
	default:
		return "UnknownError"
	}
}

var ErrNotFound = errors.New("not found")

type Error struct {
	Kind   Kind
	Op     string
	Status int
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind carried by err, or 0 when err did not come from this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
