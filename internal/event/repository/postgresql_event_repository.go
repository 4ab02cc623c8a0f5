// Package repository provides data persistence for the event audit trail.
package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/allisson/ifood-integration/internal/database"
	apperrors "github.com/allisson/ifood-integration/internal/errors"
	"github.com/allisson/ifood-integration/internal/event/domain"
)

// PostgreSQLEventRepository handles event audit persistence for PostgreSQL
type PostgreSQLEventRepository struct {
	db *sql.DB
}

// NewPostgreSQLEventRepository creates a new PostgreSQLEventRepository
func NewPostgreSQLEventRepository(db *sql.DB) *PostgreSQLEventRepository {
	return &PostgreSQLEventRepository{
		db: db,
	}
}

// Create appends a received event to the audit trail
func (r *PostgreSQLEventRepository) Create(ctx context.Context, record *domain.EventRecord) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO events (id, remote_event_id, remote_order_id, code, full_code, result, error, received_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := querier.ExecContext(
		ctx,
		query,
		record.ID,
		record.RemoteEventID,
		record.RemoteOrderID,
		record.Code,
		record.FullCode,
		record.Result,
		record.Error,
		record.ReceivedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create event record")
	}
	return nil
}

// List retrieves audit records most recent first
func (r *PostgreSQLEventRepository) List(ctx context.Context, offset, limit int) ([]*domain.EventRecord, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, remote_event_id, remote_order_id, code, full_code, result, error, received_at
			  FROM events
			  ORDER BY received_at DESC
			  LIMIT $1 OFFSET $2`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list event records")
	}
	defer rows.Close() //nolint:errcheck

	var records []*domain.EventRecord
	for rows.Next() {
		var record domain.EventRecord

		err := rows.Scan(
			&record.ID,
			&record.RemoteEventID,
			&record.RemoteOrderID,
			&record.Code,
			&record.FullCode,
			&record.Result,
			&record.Error,
			&record.ReceivedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan event record")
		}

		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate event records")
	}

	return records, nil
}

// CountSince returns the number of events received at or after the given instant
func (r *PostgreSQLEventRepository) CountSince(ctx context.Context, since time.Time) (int, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT COUNT(*) FROM events WHERE received_at >= $1`

	var count int
	if err := querier.QueryRowContext(ctx, query, since).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count event records")
	}
	return count, nil
}
