package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ValidationError(t *testing.T) {
	err := fmt.Errorf("failed to create product: %w", NewValidationError("price", "Price cannot be negative"))

	assert.ErrorIs(t, err, ErrValidation)
	assert.NotErrorIs(t, err, ErrProductNotFound)

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "price", vErr.Field)
	assert.Equal(t, "Price cannot be negative", vErr.Error())
}
