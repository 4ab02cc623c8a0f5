package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/allisson/ifood-integration/internal/database"
	apperrors "github.com/allisson/ifood-integration/internal/errors"
	"github.com/allisson/ifood-integration/internal/promotion/domain"
)

// MySQLPromotionRepository implements promotion persistence for MySQL databases.
type MySQLPromotionRepository struct {
	db *sql.DB
}

// NewMySQLPromotionRepository creates a new MySQLPromotionRepository
func NewMySQLPromotionRepository(db *sql.DB) *MySQLPromotionRepository {
	return &MySQLPromotionRepository{
		db: db,
	}
}

// Create inserts a new promotion
func (r *MySQLPromotionRepository) Create(ctx context.Context, promotion *domain.Promotion) error {
	querier := database.GetTx(ctx, r.db)

	itemIDs, err := encodeItemIDs(promotion.ItemIDs)
	if err != nil {
		return err
	}

	query := `INSERT INTO promotions (id, merchant_id, name, description, promotion_type,
			  discount_percentage, buy_quantity, get_quantity, item_ids, start_date, end_date,
			  active, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		promotion.ID,
		promotion.MerchantID,
		promotion.Name,
		promotion.Description,
		promotion.Type,
		promotion.DiscountPercentage,
		promotion.BuyQuantity,
		promotion.GetQuantity,
		itemIDs,
		promotion.StartDate,
		promotion.EndDate,
		promotion.Active,
		promotion.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create promotion")
	}
	return nil
}

// GetByID retrieves a promotion by its id
func (r *MySQLPromotionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Promotion, error) {
	querier := database.GetTx(ctx, r.db)

	query := selectPromotionColumns + ` FROM promotions WHERE id = ?`

	return scanPromotion(querier.QueryRowContext(ctx, query, id))
}

// Delete removes a promotion
func (r *MySQLPromotionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM promotions WHERE id = ?`, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete promotion")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to check delete result")
	}
	if rows == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// List retrieves promotions ordered by creation time, optionally filtered by
// the active flag
func (r *MySQLPromotionRepository) List(
	ctx context.Context,
	active *bool,
	offset, limit int,
) ([]*domain.Promotion, error) {
	querier := database.GetTx(ctx, r.db)

	query := selectPromotionColumns + ` FROM promotions`
	args := []interface{}{}
	if active != nil {
		query += ` WHERE active = ?`
		args = append(args, *active)
	}
	query += ` ORDER BY created_at DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list promotions")
	}
	defer rows.Close() //nolint:errcheck

	var promotions []*domain.Promotion
	for rows.Next() {
		promotion, err := scanPromotion(rows)
		if err != nil {
			return nil, err
		}
		promotions = append(promotions, promotion)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate promotions")
	}

	return promotions, nil
}
