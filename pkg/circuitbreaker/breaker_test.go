package circuitbreaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	cb := New[int]("test", Config{MaxFailures: 2, OpenTimeout: time.Minute}, nil)
	boom := errors.New("boom")

	for i := 0; i < 2; i++ {
		_, err := cb.Execute(func() (int, error) { return 0, boom })
		require.ErrorIs(t, err, boom)
	}

	_, err := cb.Execute(func() (int, error) { return 1, nil })
	assert.True(t, IsOpen(err))
	assert.Equal(t, gobreaker.StateOpen, cb.State())
}

func TestBreaker_CanceledContextDoesNotTrip(t *testing.T) {
	cb := New[int]("test", Config{MaxFailures: 1, OpenTimeout: time.Minute}, nil)

	_, err := cb.Execute(func() (int, error) { return 0, context.Canceled })
	require.ErrorIs(t, err, context.Canceled)

	v, err := cb.Execute(func() (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestIsOpen_OtherErrors(t *testing.T) {
	assert.False(t, IsOpen(errors.New("x")))
	assert.False(t, IsOpen(nil))
}
