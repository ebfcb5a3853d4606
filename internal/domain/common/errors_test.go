package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorIsMatchesKind(t *testing.T) {
	err := BadRequest("Product not in cart")

	assert.True(t, errors.Is(err, ErrBadRequest))
	assert.False(t, errors.Is(err, ErrNotFound))

	wrapped := fmt.Errorf("cart: %w", err)
	assert.True(t, errors.Is(wrapped, ErrBadRequest))
	assert.Equal(t, KindBadRequest, KindOf(wrapped))
	assert.Equal(t, "Product not in cart", MessageOf(wrapped))
}

func TestInternalKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Internal("User cart creation failed", cause)

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrInternal)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestUntypedErrorIsInternal(t *testing.T) {
	err := errors.New("boom")

	assert.Equal(t, KindInternal, KindOf(err))
	assert.Equal(t, "Internal server error", MessageOf(err))
}
