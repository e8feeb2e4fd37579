package payment

import (
	"errors"
	"fmt"
)

var ErrNoItems = errors.New("invalid or empty items array")

// ValidationError rejects a checkout request before the provider is called.
type ValidationError struct {
	Index  int
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid item at index %d: %s", e.Index, e.Reason)
}

// ProviderError is a failure reported by the payment provider.
type ProviderError struct {
	Message string
	Err     error
}

func (e *ProviderError) Error() string {
	return e.Message
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err means the caller sent a bad request.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.Is(err, ErrNoItems) || errors.As(err, &v)
}
