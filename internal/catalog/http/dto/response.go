package dto

import (
	"time"

	catalogDomain "github.com/allisson/ifood-integration/internal/catalog/domain"
)

// ItemResponse represents a catalog item in API responses.
type ItemResponse struct {
	ID            string    `json:"id"`
	MerchantID    string    `json:"merchant_id"`
	ExternalCode  string    `json:"external_code"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Price         float64   `json:"price"`
	OriginalPrice *float64  `json:"original_price,omitempty"`
	EAN           string    `json:"ean,omitempty"`
	ImageURL      string    `json:"image_url,omitempty"`
	Category      string    `json:"category,omitempty"`
	Available     bool      `json:"available"`
	StockQuantity *int      `json:"stock_quantity,omitempty"`
	Unit          string    `json:"unit,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// MapItemToResponse converts a domain item to an API response.
func MapItemToResponse(item *catalogDomain.Item) ItemResponse {
	return ItemResponse{
		ID:            item.ID.String(),
		MerchantID:    item.MerchantID,
		ExternalCode:  item.ExternalCode,
		Name:          item.Name,
		Description:   item.Description,
		Price:         item.Price,
		OriginalPrice: item.OriginalPrice,
		EAN:           item.EAN,
		ImageURL:      item.ImageURL,
		Category:      item.Category,
		Available:     item.Available,
		StockQuantity: item.StockQuantity,
		Unit:          item.Unit,
		CreatedAt:     item.CreatedAt,
		UpdatedAt:     item.UpdatedAt,
	}
}

// ListItemsResponse is the paginated item listing payload.
type ListItemsResponse struct {
	Items  []ItemResponse `json:"items"`
	Offset int            `json:"offset"`
	Limit  int            `json:"limit"`
}

// MapItemsToListResponse converts domain items to a listing response.
func MapItemsToListResponse(items []*catalogDomain.Item, offset, limit int) ListItemsResponse {
	responses := make([]ItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, MapItemToResponse(item))
	}
	return ListItemsResponse{
		Items:  responses,
		Offset: offset,
		Limit:  limit,
	}
}
