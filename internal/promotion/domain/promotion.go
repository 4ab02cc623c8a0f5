// Package domain defines the promotion entities published to the marketplace.
package domain

import (
	"time"

	"github.com/google/uuid"

	apperrors "github.com/allisson/ifood-integration/internal/errors"
)

// Type identifies the promotion mechanics.
type Type string

const (
	// TypePercentage is a flat percentage discount on the covered items.
	TypePercentage Type = "PERCENTAGE"
	// TypeLXPY is a buy-X-get-Y promotion.
	TypeLXPY Type = "LXPY"
	// TypePercentagePerXUnits applies the discount once a minimum quantity is
	// reached.
	TypePercentagePerXUnits Type = "PERCENTAGE_PER_X_UNITS"
)

// MaxDiscountPercentage is the marketplace ceiling for percentage discounts.
const MaxDiscountPercentage = 70.0

// Promotion represents one marketplace promotion covering a set of items.
type Promotion struct {
	ID                 uuid.UUID
	MerchantID         string
	Name               string
	Description        string
	Type               Type
	DiscountPercentage *float64
	BuyQuantity        *int
	GetQuantity        *int
	ItemIDs            []string
	StartDate          time.Time
	EndDate            time.Time
	Active             bool
	CreatedAt          time.Time
}

// NewPromotion creates an active promotion.
func NewPromotion(merchantID, name string, promotionType Type, start, end time.Time) *Promotion {
	return &Promotion{
		ID:         uuid.Must(uuid.NewV7()),
		MerchantID: merchantID,
		Name:       name,
		Type:       promotionType,
		StartDate:  start,
		EndDate:    end,
		Active:     true,
		CreatedAt:  time.Now().UTC(),
	}
}

// Validate checks the promotion mechanics are consistent. Percentage
// promotions carry a discount capped at 70%; LXPY promotions carry both
// quantities.
func (p *Promotion) Validate() error {
	switch p.Type {
	case TypePercentage, TypePercentagePerXUnits:
		if p.DiscountPercentage == nil {
			return apperrors.Wrap(apperrors.ErrInvalidInput, "discount percentage is required")
		}
		if *p.DiscountPercentage <= 0 || *p.DiscountPercentage > MaxDiscountPercentage {
			return apperrors.Wrap(apperrors.ErrInvalidInput, "discount percentage must be between 0 and 70")
		}
	case TypeLXPY:
		if p.BuyQuantity == nil || p.GetQuantity == nil {
			return apperrors.Wrap(apperrors.ErrInvalidInput, "buy and get quantities are required")
		}
		if *p.BuyQuantity < 1 || *p.GetQuantity < 1 {
			return apperrors.Wrap(apperrors.ErrInvalidInput, "buy and get quantities must be positive")
		}
	default:
		return apperrors.Wrap(apperrors.ErrInvalidInput, "unknown promotion type "+string(p.Type))
	}

	if !p.EndDate.After(p.StartDate) {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "end date must be after start date")
	}

	return nil
}
