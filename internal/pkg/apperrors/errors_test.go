package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomErrorUnwrap(t *testing.T) {
	err := fmt.Errorf("approve: %w", NewCustomError(ErrAlreadyApproved, "task 3 is already completed"))

	assert.True(t, errors.Is(err, ErrAlreadyApproved))
	assert.Contains(t, err.Error(), "task 3 is already completed")

	var ce *CustomError
	assert.True(t, errors.As(err, &ce))
	assert.Equal(t, ErrAlreadyApproved, ce.Err)
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(fmt.Errorf("load: %w", ErrWorkNotFound)))
	assert.True(t, IsNotFound(NewResourceNotFoundError("user 42")))
	assert.False(t, IsNotFound(ErrConflict))
	assert.False(t, IsNotFound(nil))
}

func TestCustomErrorFallbackMessage(t *testing.T) {
	assert.Equal(t, "conflict", (&CustomError{Err: ErrConflict}).Error())
	assert.Equal(t, "unknown error", (&CustomError{}).Error())
}
