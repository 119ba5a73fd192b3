package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsKindAndCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Persistence("failed to send message", cause)

	assert.True(t, errors.Is(err, ErrPersistence))
	assert.True(t, errors.Is(err, cause))
	assert.False(t, errors.Is(err, ErrValidation))

	wrapped := fmt.Errorf("send: %w", err)
	assert.True(t, errors.Is(wrapped, ErrPersistence))
}

func TestPublicMessage(t *testing.T) {
	assert.Equal(t, "message is required", PublicMessage(Validation("message is required")))
	assert.Equal(t, "failed to send message",
		PublicMessage(Persistence("failed to send message", errors.New("pq: relation does not exist"))))
	assert.Equal(t, "internal server error", PublicMessage(errors.New("boom")))
}
