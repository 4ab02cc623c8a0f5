// Package usecase implements the catalog item business logic: local
// persistence with best-effort synchronization to the remote marketplace.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/allisson/ifood-integration/internal/catalog/domain"
)

// ItemRepository defines the interface for catalog item persistence.
type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error)
	Update(ctx context.Context, item *domain.Item) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter domain.Filter, offset, limit int) ([]*domain.Item, error)
}

// Gateway defines the remote catalog calls used for synchronization.
type Gateway interface {
	CreateProduct(ctx context.Context, product interface{}) error
	UpdateProduct(ctx context.Context, productID string, product interface{}) error
}

// ItemUseCase defines the interface for catalog item business logic.
type ItemUseCase interface {
	Create(ctx context.Context, item *domain.Item) (*domain.Item, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Item, error)
	Update(ctx context.Context, id uuid.UUID, update domain.Update) (*domain.Item, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter domain.Filter, offset, limit int) ([]*domain.Item, error)
	SetAvailability(ctx context.Context, id uuid.UUID, available bool) (*domain.Item, error)
}
