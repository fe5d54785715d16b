package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{Validation("bad input"), 400},
		{NotFound("quote %d not found", 7), 404},
		{Conflict("already converted"), 409},
		{Invariant("paid amount below zero"), 422},
		{errors.New("disk on fire"), 500},
		{nil, 500},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, HTTPStatus(tc.err))
	}
}

func TestHTTPStatusWrapped(t *testing.T) {
	wrapped := fmt.Errorf("completing payment: %w", Conflict("not pending"))
	assert.Equal(t, 409, HTTPStatus(wrapped))
}

func TestKindPredicates(t *testing.T) {
	assert.True(t, IsValidation(Validation("x")))
	assert.True(t, IsNotFound(NotFound("x")))
	assert.True(t, IsConflict(Conflict("x")))
	assert.True(t, IsInvariant(Invariant("x")))
	assert.False(t, IsConflict(Validation("x")))
	assert.False(t, IsNotFound(errors.New("plain")))
}

func TestErrorMessageFormatting(t *testing.T) {
	err := NotFound("booking %d not found", 42)
	assert.Equal(t, "booking 42 not found", err.Error())
}
