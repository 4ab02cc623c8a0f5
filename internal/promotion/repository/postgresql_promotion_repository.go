// Package repository implements promotion persistence for PostgreSQL and
// MySQL. Covered item ids are stored as a JSON document.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/google/uuid"

	"github.com/allisson/ifood-integration/internal/database"
	apperrors "github.com/allisson/ifood-integration/internal/errors"
	"github.com/allisson/ifood-integration/internal/promotion/domain"
)

// PostgreSQLPromotionRepository implements promotion persistence for PostgreSQL databases.
type PostgreSQLPromotionRepository struct {
	db *sql.DB
}

// NewPostgreSQLPromotionRepository creates a new PostgreSQLPromotionRepository
func NewPostgreSQLPromotionRepository(db *sql.DB) *PostgreSQLPromotionRepository {
	return &PostgreSQLPromotionRepository{
		db: db,
	}
}

// Create inserts a new promotion
func (r *PostgreSQLPromotionRepository) Create(ctx context.Context, promotion *domain.Promotion) error {
	querier := database.GetTx(ctx, r.db)

	itemIDs, err := encodeItemIDs(promotion.ItemIDs)
	if err != nil {
		return err
	}

	query := `INSERT INTO promotions (id, merchant_id, name, description, promotion_type,
			  discount_percentage, buy_quantity, get_quantity, item_ids, start_date, end_date,
			  active, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

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
func (r *PostgreSQLPromotionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Promotion, error) {
	querier := database.GetTx(ctx, r.db)

	query := selectPromotionColumns + ` FROM promotions WHERE id = $1`

	return scanPromotion(querier.QueryRowContext(ctx, query, id))
}

// Delete removes a promotion
func (r *PostgreSQLPromotionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM promotions WHERE id = $1`, id)
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
func (r *PostgreSQLPromotionRepository) List(
	ctx context.Context,
	active *bool,
	offset, limit int,
) ([]*domain.Promotion, error) {
	querier := database.GetTx(ctx, r.db)

	query := selectPromotionColumns + ` FROM promotions`
	args := []interface{}{}
	if active != nil {
		query += ` WHERE active = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
		args = append(args, *active)
	} else {
		query += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	}
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

const selectPromotionColumns = `SELECT id, merchant_id, name, description, promotion_type,
	discount_percentage, buy_quantity, get_quantity, item_ids, start_date, end_date,
	active, created_at`

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPromotion(row rowScanner) (*domain.Promotion, error) {
	var promotion domain.Promotion
	var itemIDs []byte

	err := row.Scan(
		&promotion.ID,
		&promotion.MerchantID,
		&promotion.Name,
		&promotion.Description,
		&promotion.Type,
		&promotion.DiscountPercentage,
		&promotion.BuyQuantity,
		&promotion.GetQuantity,
		&itemIDs,
		&promotion.StartDate,
		&promotion.EndDate,
		&promotion.Active,
		&promotion.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to scan promotion")
	}

	if len(itemIDs) > 0 {
		if err := json.Unmarshal(itemIDs, &promotion.ItemIDs); err != nil {
			return nil, apperrors.Wrap(err, "failed to decode promotion item ids")
		}
	}

	return &promotion, nil
}

func encodeItemIDs(ids []string) ([]byte, error) {
	if ids == nil {
		ids = []string{}
	}
	encoded, err := json.Marshal(ids)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to encode promotion item ids")
	}
	return encoded, nil
}
