// Package repository implements catalog item persistence for PostgreSQL and
// MySQL.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/allisson/ifood-integration/internal/catalog/domain"
	"github.com/allisson/ifood-integration/internal/database"
	apperrors "github.com/allisson/ifood-integration/internal/errors"
)

// PostgreSQLItemRepository implements catalog item persistence for PostgreSQL databases.
type PostgreSQLItemRepository struct {
	db *sql.DB
}

// NewPostgreSQLItemRepository creates a new PostgreSQLItemRepository
func NewPostgreSQLItemRepository(db *sql.DB) *PostgreSQLItemRepository {
	return &PostgreSQLItemRepository{
		db: db,
	}
}

// Create inserts a new catalog item
func (r *PostgreSQLItemRepository) Create(ctx context.Context, item *domain.Item) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO catalog_items (id, merchant_id, external_code, name, description, price,
			  original_price, ean, image_url, category, available, stock_quantity, unit,
			  created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err := querier.ExecContext(
		ctx,
		query,
		item.ID,
		item.MerchantID,
		item.ExternalCode,
		item.Name,
		item.Description,
		item.Price,
		item.OriginalPrice,
		item.EAN,
		item.ImageURL,
		item.Category,
		item.Available,
		item.StockQuantity,
		item.Unit,
		item.CreatedAt,
		item.UpdatedAt,
	)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return apperrors.Wrap(apperrors.ErrConflict, "item already exists for external code "+item.ExternalCode)
		}
		return apperrors.Wrap(err, "failed to create item")
	}
	return nil
}

// GetByID retrieves a catalog item by its id
func (r *PostgreSQLItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	querier := database.GetTx(ctx, r.db)

	query := selectItemColumns + ` FROM catalog_items WHERE id = $1`

	return scanItem(querier.QueryRowContext(ctx, query, id))
}

// Update persists the mutable item attributes
func (r *PostgreSQLItemRepository) Update(ctx context.Context, item *domain.Item) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE catalog_items
			  SET name = $1, description = $2, price = $3, original_price = $4, image_url = $5,
			      category = $6, available = $7, stock_quantity = $8, updated_at = $9
			  WHERE id = $10`

	result, err := querier.ExecContext(
		ctx,
		query,
		item.Name,
		item.Description,
		item.Price,
		item.OriginalPrice,
		item.ImageURL,
		item.Category,
		item.Available,
		item.StockQuantity,
		item.UpdatedAt,
		item.ID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update item")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to check update result")
	}
	if rows == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete removes a catalog item
func (r *PostgreSQLItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM catalog_items WHERE id = $1`, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete item")
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

// List retrieves catalog items ordered by name, optionally filtered by
// category and availability
func (r *PostgreSQLItemRepository) List(
	ctx context.Context,
	filter domain.Filter,
	offset, limit int,
) ([]*domain.Item, error) {
	querier := database.GetTx(ctx, r.db)

	query := selectItemColumns + ` FROM catalog_items`
	args := []interface{}{}
	conditions := []string{}
	if filter.Category != nil {
		args = append(args, *filter.Category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.Available != nil {
		args = append(args, *filter.Available)
		conditions = append(conditions, fmt.Sprintf("available = $%d", len(args)))
	}
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += fmt.Sprintf(` ORDER BY name LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list items")
	}
	defer rows.Close() //nolint:errcheck

	var items []*domain.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate items")
	}

	return items, nil
}

const selectItemColumns = `SELECT id, merchant_id, external_code, name, description, price,
	original_price, ean, image_url, category, available, stock_quantity, unit,
	created_at, updated_at`

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanItem(row rowScanner) (*domain.Item, error) {
	var item domain.Item

	err := row.Scan(
		&item.ID,
		&item.MerchantID,
		&item.ExternalCode,
		&item.Name,
		&item.Description,
		&item.Price,
		&item.OriginalPrice,
		&item.EAN,
		&item.ImageURL,
		&item.Category,
		&item.Available,
		&item.StockQuantity,
		&item.Unit,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to scan item")
	}

	return &item, nil
}

// isPostgreSQLUniqueViolation checks if the error is a PostgreSQL unique constraint violation
func isPostgreSQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint")
}
