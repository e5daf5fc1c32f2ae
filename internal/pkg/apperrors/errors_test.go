package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomError_WrapsSentinel(t *testing.T) {
	err := fmt.Errorf("create school: %w", NewDuplicateCodeError("school with code 'BKA' already exists"))

	assert.ErrorIs(t, err, ErrDuplicateCode)
	assert.NotErrorIs(t, err, ErrDuplicateID)
	assert.Equal(t, "create school: school with code 'BKA' already exists", err.Error())
}

func TestCustomError_FallsBackToSentinelMessage(t *testing.T) {
	assert.Equal(t, ErrRateLimited.Error(), NewCustomError(ErrRateLimited, "").Error())
	assert.Equal(t, "unknown error", (&CustomError{}).Error())
}

func TestDetailsOf(t *testing.T) {
	err := NewValidationError("invalid", map[string]string{"name": "name is required"})
	assert.Equal(t, map[string]interface{}{"name": "name is required"}, DetailsOf(fmt.Errorf("wrapped: %w", err)))

	malformed := NewMalformedInputError("bad json", errors.New("unexpected EOF"))
	assert.Equal(t, "unexpected EOF", DetailsOf(malformed)["cause"])

	assert.Nil(t, DetailsOf(NewNotFoundError("missing")))
	assert.Nil(t, DetailsOf(errors.New("plain")))
}

func TestIs_MatchesAnyTarget(t *testing.T) {
	err := NewMalformedInputError("bad json", nil)
	assert.True(t, Is(err, ErrValidationFailed, ErrMalformedInput))
	assert.False(t, Is(err, ErrNotFound, ErrDuplicateID))
}
