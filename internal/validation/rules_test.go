package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/ifood-integration/internal/errors"
)

func TestWrapValidationError(t *testing.T) {
	assert.Nil(t, WrapValidationError(nil))

	err := WrapValidationError(errors.New("name: must not be blank"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Contains(t, err.Error(), "must not be blank")
}

func TestNotBlank(t *testing.T) {
	assert.NoError(t, NotBlank.Validate("value"))
	assert.Error(t, NotBlank.Validate(""))
	assert.Error(t, NotBlank.Validate("   "))
}

func TestNoWhitespace(t *testing.T) {
	assert.NoError(t, NoWhitespace.Validate("value"))
	assert.Error(t, NoWhitespace.Validate(" value"))
	assert.Error(t, NoWhitespace.Validate("value "))
}

func TestCancellationCode(t *testing.T) {
	rule := CancellationCode{}

	assert.NoError(t, rule.Validate(501))
	assert.NoError(t, rule.Validate(506))
	assert.NoError(t, rule.Validate(510))

	assert.Error(t, rule.Validate(500))
	assert.Error(t, rule.Validate(511))
	assert.Error(t, rule.Validate(0))
	assert.Error(t, rule.Validate("501"))
}

func TestDiscountPercentage(t *testing.T) {
	rule := DiscountPercentage{}

	assert.NoError(t, rule.Validate(10.0))
	assert.NoError(t, rule.Validate(70.0))

	assert.Error(t, rule.Validate(0.0))
	assert.Error(t, rule.Validate(-5.0))
	assert.Error(t, rule.Validate(70.5))
	assert.Error(t, rule.Validate("10"))

	// A nil pointer is left for Required to catch.
	assert.NoError(t, rule.Validate((*float64)(nil)))
}
