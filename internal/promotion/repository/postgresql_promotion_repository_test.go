package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/ifood-integration/internal/errors"
	"github.com/allisson/ifood-integration/internal/promotion/domain"
)

func newTestPromotion() *domain.Promotion {
	now := time.Now().UTC()
	promotion := domain.NewPromotion(
		"merchant-1",
		"Weekend Special",
		domain.TypePercentage,
		now,
		now.Add(48*time.Hour),
	)
	discount := 30.0
	promotion.DiscountPercentage = &discount
	promotion.ItemIDs = []string{"SKU-1", "SKU-2"}
	return promotion
}

func promotionRow(promotion *domain.Promotion) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "merchant_id", "name", "description", "promotion_type",
		"discount_percentage", "buy_quantity", "get_quantity", "item_ids",
		"start_date", "end_date", "active", "created_at",
	}).AddRow(
		promotion.ID, promotion.MerchantID, promotion.Name, promotion.Description,
		promotion.Type, promotion.DiscountPercentage, promotion.BuyQuantity,
		promotion.GetQuantity, []byte(`["SKU-1","SKU-2"]`), promotion.StartDate,
		promotion.EndDate, promotion.Active, promotion.CreatedAt,
	)
}

func TestPostgreSQLPromotionRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewPostgreSQLPromotionRepository(db)
	promotion := newTestPromotion()

	mock.ExpectExec("INSERT INTO promotions").
		WithArgs(
			promotion.ID, promotion.MerchantID, promotion.Name, promotion.Description,
			promotion.Type, promotion.DiscountPercentage, promotion.BuyQuantity,
			promotion.GetQuantity, []byte(`["SKU-1","SKU-2"]`), promotion.StartDate,
			promotion.EndDate, promotion.Active, promotion.CreatedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Create(context.Background(), promotion))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLPromotionRepository_Create_NilItemIDs(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewPostgreSQLPromotionRepository(db)
	promotion := newTestPromotion()
	promotion.ItemIDs = nil

	// A missing item list is stored as an empty JSON array.
	mock.ExpectExec("INSERT INTO promotions").
		WithArgs(
			promotion.ID, promotion.MerchantID, promotion.Name, promotion.Description,
			promotion.Type, promotion.DiscountPercentage, promotion.BuyQuantity,
			promotion.GetQuantity, []byte(`[]`), promotion.StartDate,
			promotion.EndDate, promotion.Active, promotion.CreatedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Create(context.Background(), promotion))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLPromotionRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewPostgreSQLPromotionRepository(db)
	promotion := newTestPromotion()

	mock.ExpectQuery("SELECT (.+) FROM promotions WHERE id").
		WithArgs(promotion.ID).
		WillReturnRows(promotionRow(promotion))

	found, err := repo.GetByID(context.Background(), promotion.ID)
	require.NoError(t, err)
	assert.Equal(t, promotion.Name, found.Name)
	assert.Equal(t, []string{"SKU-1", "SKU-2"}, found.ItemIDs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLPromotionRepository_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewPostgreSQLPromotionRepository(db)
	promotion := newTestPromotion()

	mock.ExpectQuery("SELECT (.+) FROM promotions WHERE id").
		WithArgs(promotion.ID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = repo.GetByID(context.Background(), promotion.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestPostgreSQLPromotionRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewPostgreSQLPromotionRepository(db)
	promotion := newTestPromotion()

	mock.ExpectExec("DELETE FROM promotions WHERE id").
		WithArgs(promotion.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), promotion.ID))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLPromotionRepository_Delete_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewPostgreSQLPromotionRepository(db)
	promotion := newTestPromotion()

	mock.ExpectExec("DELETE FROM promotions WHERE id").
		WithArgs(promotion.ID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Delete(context.Background(), promotion.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestPostgreSQLPromotionRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewPostgreSQLPromotionRepository(db)
	promotion := newTestPromotion()

	mock.ExpectQuery("SELECT (.+) FROM promotions ORDER BY created_at DESC").
		WithArgs(50, 0).
		WillReturnRows(promotionRow(promotion))

	promotions, err := repo.List(context.Background(), nil, 0, 50)
	require.NoError(t, err)
	require.Len(t, promotions, 1)
	assert.Equal(t, promotion.ID, promotions[0].ID)
}

func TestPostgreSQLPromotionRepository_List_ActiveFilter(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewPostgreSQLPromotionRepository(db)
	promotion := newTestPromotion()

	mock.ExpectQuery("SELECT (.+) FROM promotions WHERE active").
		WithArgs(true, 10, 0).
		WillReturnRows(promotionRow(promotion))

	active := true
	promotions, err := repo.List(context.Background(), &active, 0, 10)
	require.NoError(t, err)
	require.Len(t, promotions, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}
