package resilience

import (
	"errors"
	"testing"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/require"
)

func TestBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	b := NewDialBreaker("test")
	failing := func() (any, error) { return nil, errors.New("connection refused") }

	for i := 0; i < 3; i++ {
		_, err := b.Try(failing)
		require.Error(t, err)
	}

	require.Equal(t, gobreaker.StateOpen, b.State())

	_, err := b.Try(failing)
	require.ErrorIs(t, err, gobreaker.ErrOpenState)
}

func TestBreaker_PassesThroughSuccess(t *testing.T) {
	b := NewDialBreaker("test-ok")
	result, err := b.Try(func() (any, error) { return "conn", nil })
	require.NoError(t, err)
	require.Equal(t, "conn", result)
	require.Equal(t, gobreaker.StateClosed, b.State())
}
