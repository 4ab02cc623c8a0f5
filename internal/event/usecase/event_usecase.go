package usecase

import (
	"context"
	"log/slog"

	apperrors "github.com/allisson/ifood-integration/internal/errors"
	"github.com/allisson/ifood-integration/internal/event/domain"
)

// DefaultEventUseCase implements the EventUseCase interface.
type DefaultEventUseCase struct {
	eventRepo EventRecordRepository
	logger    *slog.Logger
}

// NewDefaultEventUseCase creates a new DefaultEventUseCase.
func NewDefaultEventUseCase(eventRepo EventRecordRepository, logger *slog.Logger) *DefaultEventUseCase {
	return &DefaultEventUseCase{
		eventRepo: eventRepo,
		logger:    logger,
	}
}

// List returns processed event records, most recent first.
func (u *DefaultEventUseCase) List(ctx context.Context, offset, limit int) ([]*domain.EventRecord, error) {
	records, err := u.eventRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list event records")
	}
	return records, nil
}
