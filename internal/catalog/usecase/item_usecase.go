package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/ifood-integration/internal/catalog/domain"
)

// DefaultItemUseCase implements ItemUseCase. Items are the merchant's local
// source of truth; the remote catalog is synchronized on a best-effort basis
// and a failed sync never rolls back a local write.
type DefaultItemUseCase struct {
	itemRepo ItemRepository
	gateway  Gateway
	logger   *slog.Logger
}

// NewItemUseCase creates a new DefaultItemUseCase
func NewItemUseCase(itemRepo ItemRepository, gateway Gateway, logger *slog.Logger) *DefaultItemUseCase {
	return &DefaultItemUseCase{
		itemRepo: itemRepo,
		gateway:  gateway,
		logger:   logger,
	}
}

// remoteProduct is the catalog document shape the remote expects.
type remoteProduct struct {
	ExternalCode string   `json:"externalCode"`
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Price        price    `json:"price"`
	EAN          string   `json:"ean,omitempty"`
	ImageURL     string   `json:"imagePath,omitempty"`
	Status       string   `json:"status"`
	Shifts       []string `json:"shifts,omitempty"`
}

type price struct {
	Value         float64  `json:"value"`
	OriginalValue *float64 `json:"originalValue,omitempty"`
}

func toRemoteProduct(item *domain.Item) remoteProduct {
	status := "AVAILABLE"
	if !item.Available {
		status = "UNAVAILABLE"
	}
	return remoteProduct{
		ExternalCode: item.ExternalCode,
		Name:         item.Name,
		Description:  item.Description,
		Price:        price{Value: item.Price, OriginalValue: item.OriginalPrice},
		EAN:          item.EAN,
		ImageURL:     item.ImageURL,
		Status:       status,
	}
}

// Create stores a new catalog item and pushes it to the remote catalog.
func (uc *DefaultItemUseCase) Create(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	if err := uc.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	if err := uc.gateway.CreateProduct(ctx, toRemoteProduct(item)); err != nil {
		uc.logger.Warn("failed to sync item with remote catalog",
			slog.String("item_id", item.ID.String()),
			slog.Any("error", err),
		)
	}

	uc.logger.Info("item created",
		slog.String("item_id", item.ID.String()),
		slog.String("external_code", item.ExternalCode),
	)

	return item, nil
}

// Get retrieves a catalog item by its id.
func (uc *DefaultItemUseCase) Get(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	return uc.itemRepo.GetByID(ctx, id)
}

// Update applies a partial change to a catalog item and pushes the new
// document to the remote catalog.
func (uc *DefaultItemUseCase) Update(
	ctx context.Context,
	id uuid.UUID,
	update domain.Update,
) (*domain.Item, error) {
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	item.ApplyUpdate(update, time.Now().UTC())

	if err := uc.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}

	if err := uc.gateway.UpdateProduct(ctx, item.ExternalCode, toRemoteProduct(item)); err != nil {
		uc.logger.Warn("failed to sync item with remote catalog",
			slog.String("item_id", item.ID.String()),
			slog.Any("error", err),
		)
	}

	return item, nil
}

// Delete removes a catalog item locally. The remote keeps its copy until the
// merchant removes it through the marketplace portal.
func (uc *DefaultItemUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	if err := uc.itemRepo.Delete(ctx, id); err != nil {
		return err
	}

	uc.logger.Info("item deleted", slog.String("item_id", id.String()))
	return nil
}

// List retrieves catalog items, optionally filtered by category and
// availability.
func (uc *DefaultItemUseCase) List(
	ctx context.Context,
	filter domain.Filter,
	offset, limit int,
) ([]*domain.Item, error) {
	return uc.itemRepo.List(ctx, filter, offset, limit)
}

// SetAvailability toggles whether an item can be sold.
func (uc *DefaultItemUseCase) SetAvailability(
	ctx context.Context,
	id uuid.UUID,
	available bool,
) (*domain.Item, error) {
	return uc.Update(ctx, id, domain.Update{Available: &available})
}
