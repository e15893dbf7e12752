package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("histogram", "2025")

	assert.Equal(t, "histogram not found: 2025", err.Error())
	assert.ErrorIs(t, err, ErrNotFound)

	var nfe *NotFoundError
	require.True(t, errors.As(error(err), &nfe))
	assert.Equal(t, "histogram", nfe.Entity)
	assert.Equal(t, "2025", nfe.ID)
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("year", "must be an integer")

	assert.Equal(t, "validation error: year: must be an integer", err.Error())
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExternalAPIError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewExternalAPIError("OpenAlex", 503, "upstream down", cause)

	assert.Equal(t, "OpenAlex API error (status 503): upstream down", err.Error())
	assert.ErrorIs(t, err, cause)
}
