package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/ifood-integration/internal/promotion/domain"
)

// DefaultPromotionUseCase implements PromotionUseCase. Promotions are stored
// locally and pushed to the remote on a best-effort basis; a failed push never
// rolls back a local write.
type DefaultPromotionUseCase struct {
	promotionRepo PromotionRepository
	gateway       Gateway
	logger        *slog.Logger
}

// NewPromotionUseCase creates a new DefaultPromotionUseCase
func NewPromotionUseCase(
	promotionRepo PromotionRepository,
	gateway Gateway,
	logger *slog.Logger,
) *DefaultPromotionUseCase {
	return &DefaultPromotionUseCase{
		promotionRepo: promotionRepo,
		gateway:       gateway,
		logger:        logger,
	}
}

// remotePromotion is the promotion document shape the remote expects.
type remotePromotion struct {
	Name               string    `json:"name"`
	Description        string    `json:"description,omitempty"`
	Type               string    `json:"promotionType"`
	DiscountPercentage *float64  `json:"discountPercentage,omitempty"`
	BuyQuantity        *int      `json:"buyQuantity,omitempty"`
	GetQuantity        *int      `json:"getQuantity,omitempty"`
	ItemIDs            []string  `json:"itemIds,omitempty"`
	StartDate          time.Time `json:"startDate"`
	EndDate            time.Time `json:"endDate"`
}

func toRemotePromotion(promotion *domain.Promotion) remotePromotion {
	return remotePromotion{
		Name:               promotion.Name,
		Description:        promotion.Description,
		Type:               string(promotion.Type),
		DiscountPercentage: promotion.DiscountPercentage,
		BuyQuantity:        promotion.BuyQuantity,
		GetQuantity:        promotion.GetQuantity,
		ItemIDs:            promotion.ItemIDs,
		StartDate:          promotion.StartDate,
		EndDate:            promotion.EndDate,
	}
}

// Create validates the promotion mechanics, stores the promotion and pushes
// it to the remote.
func (uc *DefaultPromotionUseCase) Create(
	ctx context.Context,
	promotion *domain.Promotion,
) (*domain.Promotion, error) {
	if err := promotion.Validate(); err != nil {
		return nil, err
	}

	if err := uc.promotionRepo.Create(ctx, promotion); err != nil {
		return nil, err
	}

	if err := uc.gateway.CreatePromotion(ctx, toRemotePromotion(promotion)); err != nil {
		uc.logger.Warn("failed to sync promotion with remote",
			slog.String("promotion_id", promotion.ID.String()),
			slog.Any("error", err),
		)
	}

	uc.logger.Info("promotion created",
		slog.String("promotion_id", promotion.ID.String()),
		slog.String("type", string(promotion.Type)),
	)

	return promotion, nil
}

// Get retrieves a promotion by its id.
func (uc *DefaultPromotionUseCase) Get(ctx context.Context, id uuid.UUID) (*domain.Promotion, error) {
	return uc.promotionRepo.GetByID(ctx, id)
}

// Delete removes a promotion locally and asks the remote to drop its copy.
func (uc *DefaultPromotionUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	if err := uc.promotionRepo.Delete(ctx, id); err != nil {
		return err
	}

	if err := uc.gateway.DeletePromotion(ctx, id.String()); err != nil {
		uc.logger.Warn("failed to remove promotion from remote",
			slog.String("promotion_id", id.String()),
			slog.Any("error", err),
		)
	}

	uc.logger.Info("promotion deleted", slog.String("promotion_id", id.String()))
	return nil
}

// List retrieves promotions, optionally filtered by the active flag.
func (uc *DefaultPromotionUseCase) List(
	ctx context.Context,
	active *bool,
	offset, limit int,
) ([]*domain.Promotion, error) {
	return uc.promotionRepo.List(ctx, active, offset, limit)
}
