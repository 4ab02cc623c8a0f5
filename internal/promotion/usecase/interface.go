// Package usecase implements the promotion business logic: local persistence
// with best-effort synchronization to the remote marketplace.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/allisson/ifood-integration/internal/promotion/domain"
)

// PromotionRepository defines the interface for promotion persistence.
type PromotionRepository interface {
	Create(ctx context.Context, promotion *domain.Promotion) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Promotion, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, active *bool, offset, limit int) ([]*domain.Promotion, error)
}

// Gateway defines the remote promotion calls used for synchronization.
type Gateway interface {
	CreatePromotion(ctx context.Context, promotion interface{}) error
	DeletePromotion(ctx context.Context, promotionID string) error
}

// PromotionUseCase defines the interface for promotion business logic.
type PromotionUseCase interface {
	Create(ctx context.Context, promotion *domain.Promotion) (*domain.Promotion, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Promotion, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, active *bool, offset, limit int) ([]*domain.Promotion, error)
}
