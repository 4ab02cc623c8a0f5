package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/ifood-integration/internal/database"
	apperrors "github.com/allisson/ifood-integration/internal/errors"
	"github.com/allisson/ifood-integration/internal/order/domain"
)

// MySQLOrderRepository implements order persistence for MySQL databases.
type MySQLOrderRepository struct {
	db *sql.DB
}

// NewMySQLOrderRepository creates a new MySQLOrderRepository
func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{
		db: db,
	}
}

// Create inserts a new order
func (r *MySQLOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO orders (id, remote_id, display_id, merchant_id, category, order_type, status,
			  customer_name, customer_phone, total_amount, raw_payload, cancellation_code,
			  cancellation_reason, created_at, updated_at, confirmed_at, preparation_started_at,
			  separation_started_at, separation_ended_at, ready_at, dispatched_at, concluded_at, cancelled_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(
		ctx,
		query,
		order.ID,
		order.RemoteID,
		order.DisplayID,
		order.MerchantID,
		order.Category,
		order.OrderType,
		order.Status,
		order.CustomerName,
		order.CustomerPhone,
		order.TotalAmount,
		order.RawPayload,
		order.CancellationCode,
		order.CancellationReason,
		order.CreatedAt,
		order.UpdatedAt,
		order.ConfirmedAt,
		order.PreparationStartedAt,
		order.SeparationStartedAt,
		order.SeparationEndedAt,
		order.ReadyAt,
		order.DispatchedAt,
		order.ConcludedAt,
		order.CancelledAt,
	)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return apperrors.Wrap(apperrors.ErrConflict, "order already exists for remote id "+order.RemoteID)
		}
		return apperrors.Wrap(err, "failed to create order")
	}
	return nil
}

// GetByID retrieves an order by its internal id
func (r *MySQLOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	querier := database.GetTx(ctx, r.db)

	query := selectOrderColumns + ` FROM orders WHERE id = ?`

	return scanOrder(querier.QueryRowContext(ctx, query, id))
}

// GetByRemoteID retrieves an order by the marketplace identifier
func (r *MySQLOrderRepository) GetByRemoteID(ctx context.Context, remoteID string) (*domain.Order, error) {
	querier := database.GetTx(ctx, r.db)

	query := selectOrderColumns + ` FROM orders WHERE remote_id = ?`

	return scanOrder(querier.QueryRowContext(ctx, query, remoteID))
}

// Update persists the mutable order attributes
func (r *MySQLOrderRepository) Update(ctx context.Context, order *domain.Order) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE orders
			  SET status = ?, cancellation_code = ?, cancellation_reason = ?,
			      updated_at = ?, confirmed_at = ?, preparation_started_at = ?,
			      separation_started_at = ?, separation_ended_at = ?, ready_at = ?,
			      dispatched_at = ?, concluded_at = ?, cancelled_at = ?
			  WHERE id = ?`

	result, err := querier.ExecContext(
		ctx,
		query,
		order.Status,
		order.CancellationCode,
		order.CancellationReason,
		order.UpdatedAt,
		order.ConfirmedAt,
		order.PreparationStartedAt,
		order.SeparationStartedAt,
		order.SeparationEndedAt,
		order.ReadyAt,
		order.DispatchedAt,
		order.ConcludedAt,
		order.CancelledAt,
		order.ID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update order")
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

// List retrieves orders ordered by creation time, optionally filtered by
// status and category
func (r *MySQLOrderRepository) List(
	ctx context.Context,
	filter domain.Filter,
	offset, limit int,
) ([]*domain.Order, error) {
	querier := database.GetTx(ctx, r.db)

	query := selectOrderColumns + ` FROM orders`
	args := []interface{}{}
	conditions := []string{}
	if filter.Status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, *filter.Status)
	}
	if filter.Category != nil {
		conditions = append(conditions, "category = ?")
		args = append(args, *filter.Category)
	}
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY created_at DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list orders")
	}
	defer rows.Close() //nolint:errcheck

	var orders []*domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate orders")
	}

	return orders, nil
}

// CountByStatus returns the number of orders per status
func (r *MySQLOrderRepository) CountByStatus(ctx context.Context) (map[domain.Status]int, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT status, COUNT(*) FROM orders GROUP BY status`

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to count orders by status")
	}
	defer rows.Close() //nolint:errcheck

	counts := make(map[domain.Status]int)
	for rows.Next() {
		var status domain.Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan order count")
		}
		counts[status] = count
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate order counts")
	}

	return counts, nil
}

// CountOverdue returns the number of orders still waiting for confirmation
// that were created before the given cutoff
func (r *MySQLOrderRepository) CountOverdue(ctx context.Context, before time.Time) (int, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT COUNT(*) FROM orders WHERE status = ? AND created_at < ?`

	var count int
	if err := querier.QueryRowContext(ctx, query, domain.StatusPlaced, before).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count overdue orders")
	}
	return count, nil
}

// RevenueSince returns the total amount of orders created since the given
// time, excluding cancelled ones
func (r *MySQLOrderRepository) RevenueSince(ctx context.Context, since time.Time) (float64, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT COALESCE(SUM(total_amount), 0) FROM orders WHERE created_at >= ? AND status != ?`

	var revenue float64
	if err := querier.QueryRowContext(ctx, query, since, domain.StatusCancelled).Scan(&revenue); err != nil {
		return 0, apperrors.Wrap(err, "failed to sum order revenue")
	}
	return revenue, nil
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
