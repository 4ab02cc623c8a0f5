package dto

import (
	"time"

	promotionDomain "github.com/allisson/ifood-integration/internal/promotion/domain"
)

// PromotionResponse represents a promotion in API responses.
type PromotionResponse struct {
	ID                 string    `json:"id"`
	MerchantID         string    `json:"merchant_id"`
	Name               string    `json:"name"`
	Description        string    `json:"description,omitempty"`
	PromotionType      string    `json:"promotion_type"`
	DiscountPercentage *float64  `json:"discount_percentage,omitempty"`
	BuyQuantity        *int      `json:"buy_quantity,omitempty"`
	GetQuantity        *int      `json:"get_quantity,omitempty"`
	ItemIDs            []string  `json:"item_ids,omitempty"`
	StartDate          time.Time `json:"start_date"`
	EndDate            time.Time `json:"end_date"`
	Active             bool      `json:"active"`
	CreatedAt          time.Time `json:"created_at"`
}

// MapPromotionToResponse converts a domain promotion to an API response.
func MapPromotionToResponse(promotion *promotionDomain.Promotion) PromotionResponse {
	return PromotionResponse{
		ID:                 promotion.ID.String(),
		MerchantID:         promotion.MerchantID,
		Name:               promotion.Name,
		Description:        promotion.Description,
		PromotionType:      string(promotion.Type),
		DiscountPercentage: promotion.DiscountPercentage,
		BuyQuantity:        promotion.BuyQuantity,
		GetQuantity:        promotion.GetQuantity,
		ItemIDs:            promotion.ItemIDs,
		StartDate:          promotion.StartDate,
		EndDate:            promotion.EndDate,
		Active:             promotion.Active,
		CreatedAt:          promotion.CreatedAt,
	}
}

// ListPromotionsResponse is the paginated promotion listing payload.
type ListPromotionsResponse struct {
	Promotions []PromotionResponse `json:"promotions"`
	Offset     int                 `json:"offset"`
	Limit      int                 `json:"limit"`
}

// MapPromotionsToListResponse converts domain promotions to a listing response.
func MapPromotionsToListResponse(promotions []*promotionDomain.Promotion, offset, limit int) ListPromotionsResponse {
	responses := make([]PromotionResponse, 0, len(promotions))
	for _, promotion := range promotions {
		responses = append(responses, MapPromotionToResponse(promotion))
	}
	return ListPromotionsResponse{
		Promotions: responses,
		Offset:     offset,
		Limit:      limit,
	}
}
