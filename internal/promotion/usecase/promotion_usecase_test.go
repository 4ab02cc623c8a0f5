package usecase

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/ifood-integration/internal/errors"
	"github.com/allisson/ifood-integration/internal/promotion/domain"
)

type mockPromotionRepository struct {
	mock.Mock
}

func (m *mockPromotionRepository) Create(ctx context.Context, promotion *domain.Promotion) error {
	return m.Called(ctx, promotion).Error(0)
}

func (m *mockPromotionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Promotion, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Promotion), args.Error(1)
}

func (m *mockPromotionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockPromotionRepository) List(
	ctx context.Context,
	active *bool,
	offset, limit int,
) ([]*domain.Promotion, error) {
	args := m.Called(ctx, active, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Promotion), args.Error(1)
}

type mockPromotionGateway struct {
	mock.Mock
}

func (m *mockPromotionGateway) CreatePromotion(ctx context.Context, promotion interface{}) error {
	return m.Called(ctx, promotion).Error(0)
}

func (m *mockPromotionGateway) DeletePromotion(ctx context.Context, promotionID string) error {
	return m.Called(ctx, promotionID).Error(0)
}

func newTestUseCase() (*DefaultPromotionUseCase, *mockPromotionRepository, *mockPromotionGateway) {
	promotionRepo := &mockPromotionRepository{}
	gateway := &mockPromotionGateway{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewPromotionUseCase(promotionRepo, gateway, logger), promotionRepo, gateway
}

func validPromotion() *domain.Promotion {
	now := time.Now().UTC()
	promo := domain.NewPromotion("merchant-1", "Pizza Week", domain.TypePercentage, now, now.Add(7*24*time.Hour))
	discount := 30.0
	promo.DiscountPercentage = &discount
	return promo
}

func TestPromotionUseCase_Create(t *testing.T) {
	t.Run("Success_SyncsWithRemote", func(t *testing.T) {
		uc, promotionRepo, gateway := newTestUseCase()
		ctx := context.Background()

		promo := validPromotion()
		promotionRepo.On("Create", ctx, promo).Return(nil)
		gateway.On("CreatePromotion", ctx, mock.Anything).Return(nil)

		created, err := uc.Create(ctx, promo)
		require.NoError(t, err)
		assert.Equal(t, promo.ID, created.ID)

		gateway.AssertCalled(t, "CreatePromotion", ctx, mock.MatchedBy(func(p interface{}) bool {
			remote, ok := p.(remotePromotion)
			return ok && remote.Type == "PERCENTAGE" && *remote.DiscountPercentage == 30.0
		}))
	})

	t.Run("Error_DiscountAboveCap", func(t *testing.T) {
		uc, promotionRepo, gateway := newTestUseCase()
		ctx := context.Background()

		promo := validPromotion()
		discount := 85.0
		promo.DiscountPercentage = &discount

		_, err := uc.Create(ctx, promo)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		promotionRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		gateway.AssertNotCalled(t, "CreatePromotion", mock.Anything, mock.Anything)
	})

	t.Run("Success_RemoteSyncFailureIsNotFatal", func(t *testing.T) {
		uc, promotionRepo, gateway := newTestUseCase()
		ctx := context.Background()

		promo := validPromotion()
		promotionRepo.On("Create", ctx, promo).Return(nil)
		gateway.On("CreatePromotion", ctx, mock.Anything).
			Return(apperrors.Wrap(apperrors.ErrTransient, "remote down"))

		_, err := uc.Create(ctx, promo)
		require.NoError(t, err)
	})
}

func TestPromotionUseCase_Delete(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		uc, promotionRepo, gateway := newTestUseCase()
		ctx := context.Background()

		id := uuid.Must(uuid.NewV7())
		promotionRepo.On("Delete", ctx, id).Return(nil)
		gateway.On("DeletePromotion", ctx, id.String()).Return(nil)

		require.NoError(t, uc.Delete(ctx, id))
		gateway.AssertExpectations(t)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		uc, promotionRepo, gateway := newTestUseCase()
		ctx := context.Background()

		id := uuid.Must(uuid.NewV7())
		promotionRepo.On("Delete", ctx, id).Return(apperrors.ErrNotFound)

		assert.ErrorIs(t, uc.Delete(ctx, id), apperrors.ErrNotFound)
		gateway.AssertNotCalled(t, "DeletePromotion", mock.Anything, mock.Anything)
	})
}

func TestPromotionUseCase_List(t *testing.T) {
	uc, promotionRepo, _ := newTestUseCase()
	ctx := context.Background()

	active := true
	promotionRepo.On("List", ctx, &active, 0, 50).
		Return([]*domain.Promotion{validPromotion()}, nil)

	promotions, err := uc.List(ctx, &active, 0, 50)
	require.NoError(t, err)
	assert.Len(t, promotions, 1)
}
