// Package dto provides data transfer objects for catalog HTTP request and
// response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	catalogDomain "github.com/allisson/ifood-integration/internal/catalog/domain"
	customValidation "github.com/allisson/ifood-integration/internal/validation"
)

// CreateItemRequest contains the parameters for creating a catalog item.
type CreateItemRequest struct {
	ExternalCode  string   `json:"external_code"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"original_price"`
	EAN           string   `json:"ean"`
	ImageURL      string   `json:"image_url"`
	Category      string   `json:"category"`
	Available     *bool    `json:"available"`
	StockQuantity *int     `json:"stock_quantity"`
	Unit          string   `json:"unit"`
}

// Validate checks if the create item request is valid.
func (r *CreateItemRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ExternalCode,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 100),
		),
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Price,
			validation.Required,
			validation.Min(0.01),
		),
	)
}

// ToItem converts the request into a domain item.
func (r *CreateItemRequest) ToItem(merchantID string) *catalogDomain.Item {
	item := catalogDomain.NewItem(merchantID, r.ExternalCode, r.Name, r.Price)
	item.Description = r.Description
	item.OriginalPrice = r.OriginalPrice
	item.EAN = r.EAN
	item.ImageURL = r.ImageURL
	item.Category = r.Category
	item.StockQuantity = r.StockQuantity
	if r.Available != nil {
		item.Available = *r.Available
	}
	if r.Unit != "" {
		item.Unit = r.Unit
	}
	return item
}

// UpdateItemRequest contains the parameters for a partial item update. Absent
// fields are left untouched.
type UpdateItemRequest struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	Price         *float64 `json:"price"`
	OriginalPrice *float64 `json:"original_price"`
	ImageURL      *string  `json:"image_url"`
	Category      *string  `json:"category"`
	Available     *bool    `json:"available"`
	StockQuantity *int     `json:"stock_quantity"`
}

// Validate checks if the update item request is valid.
func (r *UpdateItemRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.NilOrNotEmpty,
			validation.Length(1, 255),
		),
		validation.Field(&r.Price,
			validation.Min(0.01),
		),
	)
}

// ToUpdate converts the request into a domain update.
func (r *UpdateItemRequest) ToUpdate() catalogDomain.Update {
	return catalogDomain.Update{
		Name:          r.Name,
		Description:   r.Description,
		Price:         r.Price,
		OriginalPrice: r.OriginalPrice,
		ImageURL:      r.ImageURL,
		Category:      r.Category,
		Available:     r.Available,
		StockQuantity: r.StockQuantity,
	}
}
