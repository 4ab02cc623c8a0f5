// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/ifood-integration/internal/validation"
)

// CancelOrderRequest contains the parameters for cancelling an order.
type CancelOrderRequest struct {
	CancellationCode int    `json:"cancellation_code"`
	Reason           string `json:"reason"`
}

// Validate checks if the cancel order request is valid.
func (r *CancelOrderRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.CancellationCode,
			validation.Required,
			customValidation.CancellationCode{},
		),
		validation.Field(&r.Reason,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 500),
		),
	)
}
