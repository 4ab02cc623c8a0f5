// Package validation provides custom validation rules for the application.
package validation

import (
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/ifood-integration/internal/errors"
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// CancellationCode validates that a cancellation reason code is one the remote
// marketplace accepts. The accepted range is the merchant-initiated block.
type CancellationCode struct{}

// Validate checks if the value is an accepted cancellation code.
func (c CancellationCode) Validate(value interface{}) error {
	value, isNil := validation.Indirect(value)
	if isNil {
		return nil
	}
	code, ok := value.(int)
	if !ok {
		return validation.NewError("validation_cancellation_code", "cancellation code must be an integer")
	}
	if code < 501 || code > 510 {
		return validation.NewError(
			"validation_cancellation_code_range",
			"cancellation code must be between 501 and 510",
		)
	}
	return nil
}

// DiscountPercentage validates that a percentage discount does not exceed the
// marketplace cap of 70%.
type DiscountPercentage struct{}

// Validate checks if the value is a percentage within the allowed range.
func (d DiscountPercentage) Validate(value interface{}) error {
	value, isNil := validation.Indirect(value)
	if isNil {
		return nil
	}
	pct, ok := value.(float64)
	if !ok {
		return validation.NewError("validation_discount_percentage", "discount percentage must be a number")
	}
	if pct <= 0 {
		return validation.NewError(
			"validation_discount_percentage_min",
			"discount percentage must be greater than zero",
		)
	}
	if pct > 70 {
		return validation.NewError(
			"validation_discount_percentage_max",
			"discount percentage must not exceed 70",
		)
	}
	return nil
}
