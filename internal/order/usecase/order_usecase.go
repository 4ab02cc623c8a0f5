package usecase

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/ifood-integration/internal/database"
	apperrors "github.com/allisson/ifood-integration/internal/errors"
	eventDomain "github.com/allisson/ifood-integration/internal/event/domain"
	"github.com/allisson/ifood-integration/internal/ifood"
	"github.com/allisson/ifood-integration/internal/order/domain"
)

// Config holds order use case configuration
type Config struct {
	// ConfirmationDeadline is how long an order may wait in PLACED before it
	// is flagged as overdue.
	ConfirmationDeadline time.Duration
}

// DefaultOrderUseCase implements OrderUseCase.
type DefaultOrderUseCase struct {
	config    Config
	txManager database.TxManager
	orderRepo OrderRepository
	eventRepo EventRecordRepository
	gateway   Gateway
	logger    *slog.Logger
}

// NewOrderUseCase creates a new DefaultOrderUseCase
func NewOrderUseCase(
	config Config,
	txManager database.TxManager,
	orderRepo OrderRepository,
	eventRepo EventRecordRepository,
	gateway Gateway,
	logger *slog.Logger,
) *DefaultOrderUseCase {
	return &DefaultOrderUseCase{
		config:    config,
		txManager: txManager,
		orderRepo: orderRepo,
		eventRepo: eventRepo,
		gateway:   gateway,
		logger:    logger,
	}
}

// ProcessEvent applies one inbound remote event inside a transaction. The
// transition graph silently rejects redelivered and out-of-order events;
// only persistence failures surface as errors and leave the event un-acked.
func (uc *DefaultOrderUseCase) ProcessEvent(
	ctx context.Context,
	event ifood.RemoteEvent,
) (eventDomain.Result, error) {
	result := eventDomain.ResultFailed

	err := uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		var err error
		result, err = uc.processEvent(ctx, event)
		return err
	})
	if err != nil {
		// Best effort: keep the failure visible in the audit trail even
		// though the transaction rolled back.
		uc.recordEvent(ctx, event, eventDomain.ResultFailed, err)
		return eventDomain.ResultFailed, err
	}

	return result, nil
}

func (uc *DefaultOrderUseCase) processEvent(
	ctx context.Context,
	event ifood.RemoteEvent,
) (eventDomain.Result, error) {
	target, ok := domain.StatusFromEventCode(event.FullCode)
	if !ok {
		// Codes without a transition (courier arrival and similar) are
		// acknowledged but never touch the order.
		uc.recordEvent(ctx, event, eventDomain.ResultIgnored, nil)
		return eventDomain.ResultIgnored, nil
	}

	now := time.Now().UTC()

	order, err := uc.orderRepo.GetByRemoteID(ctx, event.OrderID)
	switch {
	case err == nil:
	case apperrors.Is(err, apperrors.ErrNotFound) && target == domain.StatusPlaced:
		order, err = uc.registerOrder(ctx, event)
		if err != nil {
			return eventDomain.ResultFailed, err
		}
		uc.recordEvent(ctx, event, eventDomain.ResultApplied, nil)
		return eventDomain.ResultApplied, nil
	case apperrors.Is(err, apperrors.ErrNotFound):
		// An event for an order this integration never saw. Acknowledge it:
		// redelivering forever would poison the queue, and the order cannot
		// regress because it does not exist here.
		uc.logger.Warn("event for unknown order",
			slog.String("event_id", event.ID),
			slog.String("remote_order_id", event.OrderID),
			slog.String("full_code", event.FullCode),
		)
		uc.recordEvent(ctx, event, eventDomain.ResultRejected, nil)
		return eventDomain.ResultRejected, nil
	default:
		return eventDomain.ResultFailed, err
	}

	if !order.ApplyEvent(target, now) {
		uc.recordEvent(ctx, event, eventDomain.ResultRejected, nil)
		return eventDomain.ResultRejected, nil
	}

	if err := uc.orderRepo.Update(ctx, order); err != nil {
		return eventDomain.ResultFailed, err
	}

	uc.logger.Info("order transitioned",
		slog.String("order_id", order.ID.String()),
		slog.String("remote_order_id", order.RemoteID),
		slog.String("status", string(order.Status)),
	)

	uc.recordEvent(ctx, event, eventDomain.ResultApplied, nil)
	return eventDomain.ResultApplied, nil
}

// registerOrder creates the order for a first PLACED event, enriched with the
// remote order document when it can be fetched.
func (uc *DefaultOrderUseCase) registerOrder(
	ctx context.Context,
	event ifood.RemoteEvent,
) (*domain.Order, error) {
	order := domain.NewOrder(event.OrderID, event.MerchantID, domain.CategoryFood)

	details, err := uc.gateway.OrderDetails(ctx, event.OrderID)
	if err != nil {
		// The order can still be tracked from the event alone; details are
		// enrichment, not a requirement.
		uc.logger.Warn("failed to fetch order details",
			slog.String("remote_order_id", event.OrderID),
			slog.Any("error", err),
		)
	} else {
		order.DisplayID = details.DisplayID
		order.OrderType = details.OrderType
		order.CustomerName = details.Customer.Name
		order.CustomerPhone = details.Customer.Phone
		order.TotalAmount = details.Total.OrderAmount
		order.RawPayload = details.Raw
		if details.Category != "" {
			order.Category = domain.Category(details.Category)
		}
	}

	if err := uc.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	uc.logger.Info("order registered",
		slog.String("order_id", order.ID.String()),
		slog.String("remote_order_id", order.RemoteID),
	)

	return order, nil
}

// recordEvent appends an audit record, logging instead of failing when the
// append itself cannot be stored.
func (uc *DefaultOrderUseCase) recordEvent(
	ctx context.Context,
	event ifood.RemoteEvent,
	result eventDomain.Result,
	cause error,
) {
	record := &eventDomain.EventRecord{
		ID:            uuid.Must(uuid.NewV7()),
		RemoteEventID: event.ID,
		RemoteOrderID: event.OrderID,
		Code:          event.Code,
		FullCode:      event.FullCode,
		Result:        result,
		ReceivedAt:    time.Now().UTC(),
	}
	if cause != nil {
		msg := cause.Error()
		record.Error = &msg
	}

	if err := uc.eventRepo.Create(ctx, record); err != nil {
		uc.logger.Error("failed to store event record",
			slog.String("event_id", event.ID),
			slog.Any("error", err),
		)
	}
}

// Confirm confirms an order with the remote and persists the transition.
func (uc *DefaultOrderUseCase) Confirm(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	return uc.act(ctx, id, domain.StatusConfirmed, uc.gateway.ConfirmOrder)
}

// StartPreparation starts kitchen preparation for a non-grocery order.
func (uc *DefaultOrderUseCase) StartPreparation(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	return uc.act(ctx, id, domain.StatusPreparationStarted, uc.gateway.StartPreparation)
}

// ReadyToPickup marks a non-grocery order as ready for pickup.
func (uc *DefaultOrderUseCase) ReadyToPickup(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	return uc.act(ctx, id, domain.StatusReadyToPickup, uc.gateway.ReadyToPickup)
}

// Dispatch marks an order as out for delivery.
func (uc *DefaultOrderUseCase) Dispatch(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	return uc.act(ctx, id, domain.StatusDispatched, uc.gateway.Dispatch)
}

// StartSeparation starts item separation for a grocery order.
func (uc *DefaultOrderUseCase) StartSeparation(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	return uc.act(ctx, id, domain.StatusSeparationStarted, uc.gateway.StartSeparation)
}

// EndSeparation finishes item separation for a grocery order.
func (uc *DefaultOrderUseCase) EndSeparation(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	return uc.act(ctx, id, domain.StatusSeparationEnded, uc.gateway.EndSeparation)
}

// Cancel requests cancellation with the remote and persists the transition
// with the cancellation code and reason.
func (uc *DefaultOrderUseCase) Cancel(
	ctx context.Context,
	id uuid.UUID,
	code int,
	reason string,
) (*domain.Order, error) {
	if _, ok := domain.CancellationReasonByCode(code); !ok {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "unknown cancellation code")
	}

	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Validate the transition before touching the remote.
	if !domain.CanTransition(order.Category, order.Status, domain.StatusCancelled) {
		return nil, apperrors.Wrap(
			apperrors.ErrInvalidTransition,
			"cannot cancel order in status "+string(order.Status),
		)
	}

	if err := uc.gateway.RequestCancellation(ctx, order.RemoteID, code, reason); err != nil {
		return nil, err
	}

	if err := order.Cancel(code, reason, time.Now().UTC()); err != nil {
		return nil, err
	}
	if err := uc.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	uc.logger.Info("order cancelled",
		slog.String("order_id", order.ID.String()),
		slog.Int("cancellation_code", code),
	)

	return order, nil
}

// Get retrieves an order by its internal id.
func (uc *DefaultOrderUseCase) Get(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	return uc.orderRepo.GetByID(ctx, id)
}

// List retrieves orders, optionally filtered by status and category.
func (uc *DefaultOrderUseCase) List(
	ctx context.Context,
	filter domain.Filter,
	offset, limit int,
) ([]*domain.Order, error) {
	return uc.orderRepo.List(ctx, filter, offset, limit)
}

// CancellationReasons returns the accepted merchant cancellation codes.
func (uc *DefaultOrderUseCase) CancellationReasons() []domain.CancellationReason {
	return domain.CancellationReasons()
}

// Tracking proxies the remote courier tracking document for an order.
func (uc *DefaultOrderUseCase) Tracking(ctx context.Context, id uuid.UUID) (json.RawMessage, error) {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.gateway.OrderTracking(ctx, order.RemoteID)
}

// AddPickingItem adds an item to an order during separation.
func (uc *DefaultOrderUseCase) AddPickingItem(ctx context.Context, id uuid.UUID, item json.RawMessage) error {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return uc.gateway.AddPickingItem(ctx, order.RemoteID, item)
}

// ModifyPickingItem changes an item's quantity or weight during separation.
func (uc *DefaultOrderUseCase) ModifyPickingItem(
	ctx context.Context,
	id uuid.UUID,
	uniqueID string,
	changes json.RawMessage,
) error {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return uc.gateway.ModifyPickingItem(ctx, order.RemoteID, uniqueID, changes)
}

// ReplacePickingItem swaps an item for a substitute during separation.
func (uc *DefaultOrderUseCase) ReplacePickingItem(
	ctx context.Context,
	id uuid.UUID,
	uniqueID string,
	replacement json.RawMessage,
) error {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return uc.gateway.ReplacePickingItem(ctx, order.RemoteID, uniqueID, replacement)
}

// RemovePickingItem drops an out-of-stock item from an order during
// separation.
func (uc *DefaultOrderUseCase) RemovePickingItem(ctx context.Context, id uuid.UUID, uniqueID string) error {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return uc.gateway.RemovePickingItem(ctx, order.RemoteID, uniqueID)
}

// DashboardMetrics aggregates order counters for the dashboard.
func (uc *DefaultOrderUseCase) DashboardMetrics(ctx context.Context) (*DashboardMetrics, error) {
	counts, err := uc.orderRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, count := range counts {
		total += count
	}

	now := time.Now().UTC()

	// Counted in SQL: the PLACED backlog may exceed any listing page.
	overdue, err := uc.orderRepo.CountOverdue(ctx, now.Add(-uc.config.ConfirmationDeadline))
	if err != nil {
		return nil, err
	}

	events, err := uc.eventRepo.CountSince(ctx, now.Add(-24*time.Hour))
	if err != nil {
		return nil, err
	}

	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	revenue, err := uc.orderRepo.RevenueSince(ctx, midnight)
	if err != nil {
		return nil, err
	}

	return &DashboardMetrics{
		TotalOrders:    total,
		OrdersByStatus: counts,
		OverdueOrders:  overdue,
		EventsLast24h:  events,
		RevenueToday:   revenue,
	}, nil
}

// act runs one direct order action: validate the transition locally, call the
// remote, then persist. The remote is never called for invalid transitions
// and local state is never updated when the remote call fails.
func (uc *DefaultOrderUseCase) act(
	ctx context.Context,
	id uuid.UUID,
	target domain.Status,
	remoteCall func(ctx context.Context, remoteID string) error,
) (*domain.Order, error) {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !domain.CanTransition(order.Category, order.Status, target) {
		return nil, apperrors.Wrap(
			apperrors.ErrInvalidTransition,
			"cannot move order from "+string(order.Status)+" to "+string(target),
		)
	}

	if err := remoteCall(ctx, order.RemoteID); err != nil {
		return nil, err
	}

	if err := order.ApplyAction(target, time.Now().UTC()); err != nil {
		return nil, err
	}
	if err := uc.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	uc.logger.Info("order action applied",
		slog.String("order_id", order.ID.String()),
		slog.String("status", string(order.Status)),
	)

	return order, nil
}
