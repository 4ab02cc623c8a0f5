// Package usecase implements the event audit trail queries used by the
// dashboard.
package usecase

import (
	"context"
	"time"

	"github.com/allisson/ifood-integration/internal/event/domain"
)

// EventRecordRepository defines the interface for event record persistence.
type EventRecordRepository interface {
	List(ctx context.Context, offset, limit int) ([]*domain.EventRecord, error)
	CountSince(ctx context.Context, since time.Time) (int, error)
}

// EventUseCase defines the interface for event audit trail queries.
type EventUseCase interface {
	List(ctx context.Context, offset, limit int) ([]*domain.EventRecord, error)
}
