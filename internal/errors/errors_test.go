package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	t.Run("PreservesErrorChain", func(t *testing.T) {
		wrapped := Wrap(ErrNotFound, "order lookup failed")

		assert.True(t, Is(wrapped, ErrNotFound))
		assert.Equal(t, "order lookup failed: not found", wrapped.Error())
	})

	t.Run("NilReturnsNil", func(t *testing.T) {
		assert.Nil(t, Wrap(nil, "context"))
	})

	t.Run("DoubleWrapKeepsSentinel", func(t *testing.T) {
		wrapped := Wrap(Wrap(ErrTransient, "poll failed"), "cycle aborted")

		assert.True(t, Is(wrapped, ErrTransient))
	})
}

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{
		ErrNotFound,
		ErrConflict,
		ErrInvalidInput,
		ErrUnauthorized,
		ErrAuth,
		ErrAuthExpired,
		ErrRateLimited,
		ErrTransient,
		ErrInvalidTransition,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i == j {
				continue
			}
			assert.False(t, Is(a, b), "%v must not match %v", a, b)
		}
	}
}
