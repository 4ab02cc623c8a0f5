// Package domain defines the catalog item entities managed by the merchant.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Item represents one sellable catalog entry. The external code is the
// merchant's own SKU, unique within the catalog.
type Item struct {
	ID            uuid.UUID
	MerchantID    string
	ExternalCode  string
	Name          string
	Description   string
	Price         float64
	OriginalPrice *float64
	EAN           string
	ImageURL      string
	Category      string
	Available     bool
	StockQuantity *int
	Unit          string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewItem creates a catalog item available for sale.
func NewItem(merchantID, externalCode, name string, price float64) *Item {
	now := time.Now().UTC()
	return &Item{
		ID:           uuid.Must(uuid.NewV7()),
		MerchantID:   merchantID,
		ExternalCode: externalCode,
		Name:         name,
		Price:        price,
		Available:    true,
		Unit:         "un",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Filter narrows item listings. Nil fields match everything.
type Filter struct {
	Category  *string
	Available *bool
}

// Update carries a partial item change. Nil fields are left untouched.
type Update struct {
	Name          *string
	Description   *string
	Price         *float64
	OriginalPrice *float64
	ImageURL      *string
	Category      *string
	Available     *bool
	StockQuantity *int
}

// ApplyUpdate merges the non-nil update fields into the item.
func (i *Item) ApplyUpdate(update Update, at time.Time) {
	if update.Name != nil {
		i.Name = *update.Name
	}
	if update.Description != nil {
		i.Description = *update.Description
	}
	if update.Price != nil {
		i.Price = *update.Price
	}
	if update.OriginalPrice != nil {
		i.OriginalPrice = update.OriginalPrice
	}
	if update.ImageURL != nil {
		i.ImageURL = *update.ImageURL
	}
	if update.Category != nil {
		i.Category = *update.Category
	}
	if update.Available != nil {
		i.Available = *update.Available
	}
	if update.StockQuantity != nil {
		i.StockQuantity = update.StockQuantity
	}
	i.UpdatedAt = at
}
