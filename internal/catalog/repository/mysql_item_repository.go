package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/allisson/ifood-integration/internal/catalog/domain"
	"github.com/allisson/ifood-integration/internal/database"
	apperrors "github.com/allisson/ifood-integration/internal/errors"
)

// MySQLItemRepository implements catalog item persistence for MySQL databases.
type MySQLItemRepository struct {
	db *sql.DB
}

// NewMySQLItemRepository creates a new MySQLItemRepository
func NewMySQLItemRepository(db *sql.DB) *MySQLItemRepository {
	return &MySQLItemRepository{
		db: db,
	}
}

// Create inserts a new catalog item
func (r *MySQLItemRepository) Create(ctx context.Context, item *domain.Item) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO catalog_items (id, merchant_id, external_code, name, description, price,
			  original_price, ean, image_url, category, available, stock_quantity, unit,
			  created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

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
		if isMySQLUniqueViolation(err) {
			return apperrors.Wrap(apperrors.ErrConflict, "item already exists for external code "+item.ExternalCode)
		}
		return apperrors.Wrap(err, "failed to create item")
	}
	return nil
}

// GetByID retrieves a catalog item by its id
func (r *MySQLItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	querier := database.GetTx(ctx, r.db)

	query := selectItemColumns + ` FROM catalog_items WHERE id = ?`

	return scanItem(querier.QueryRowContext(ctx, query, id))
}

// Update persists the mutable item attributes
func (r *MySQLItemRepository) Update(ctx context.Context, item *domain.Item) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE catalog_items
			  SET name = ?, description = ?, price = ?, original_price = ?, image_url = ?,
			      category = ?, available = ?, stock_quantity = ?, updated_at = ?
			  WHERE id = ?`

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
func (r *MySQLItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM catalog_items WHERE id = ?`, id)
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
func (r *MySQLItemRepository) List(
	ctx context.Context,
	filter domain.Filter,
	offset, limit int,
) ([]*domain.Item, error) {
	querier := database.GetTx(ctx, r.db)

	query := selectItemColumns + ` FROM catalog_items`
	args := []interface{}{}
	conditions := []string{}
	if filter.Category != nil {
		conditions = append(conditions, "category = ?")
		args = append(args, *filter.Category)
	}
	if filter.Available != nil {
		conditions = append(conditions, "available = ?")
		args = append(args, *filter.Available)
	}
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY name LIMIT ? OFFSET ?`
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

// isMySQLUniqueViolation checks if the error is a MySQL unique constraint violation
func isMySQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// MySQL: "Error 1062: Duplicate entry"
	return strings.Contains(errMsg, "duplicate entry") || strings.Contains(errMsg, "error 1062")
}
