// Package dto provides data transfer objects for promotion HTTP request and
// response handling.
package dto

import (
	"time"

	validation "github.com/jellydator/validation"

	promotionDomain "github.com/allisson/ifood-integration/internal/promotion/domain"
	customValidation "github.com/allisson/ifood-integration/internal/validation"
)

// CreatePromotionRequest contains the parameters for creating a promotion.
type CreatePromotionRequest struct {
	Name               string    `json:"name"`
	Description        string    `json:"description"`
	PromotionType      string    `json:"promotion_type"`
	DiscountPercentage *float64  `json:"discount_percentage"`
	BuyQuantity        *int      `json:"buy_quantity"`
	GetQuantity        *int      `json:"get_quantity"`
	ItemIDs            []string  `json:"item_ids"`
	StartDate          time.Time `json:"start_date"`
	EndDate            time.Time `json:"end_date"`
}

// Validate checks if the create promotion request is valid. Type-specific
// mechanics are validated by the domain.
func (r *CreatePromotionRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.PromotionType,
			validation.Required,
			validation.In(
				string(promotionDomain.TypePercentage),
				string(promotionDomain.TypeLXPY),
				string(promotionDomain.TypePercentagePerXUnits),
			),
		),
		validation.Field(&r.DiscountPercentage,
			customValidation.DiscountPercentage{},
		),
		validation.Field(&r.StartDate, validation.Required),
		validation.Field(&r.EndDate, validation.Required),
	)
}

// ToPromotion converts the request into a domain promotion.
func (r *CreatePromotionRequest) ToPromotion(merchantID string) *promotionDomain.Promotion {
	promotion := promotionDomain.NewPromotion(
		merchantID,
		r.Name,
		promotionDomain.Type(r.PromotionType),
		r.StartDate,
		r.EndDate,
	)
	promotion.Description = r.Description
	promotion.DiscountPercentage = r.DiscountPercentage
	promotion.BuyQuantity = r.BuyQuantity
	promotion.GetQuantity = r.GetQuantity
	promotion.ItemIDs = r.ItemIDs
	return promotion
}
