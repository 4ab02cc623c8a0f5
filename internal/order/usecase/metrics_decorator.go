package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	eventDomain "github.com/allisson/ifood-integration/internal/event/domain"
	"github.com/allisson/ifood-integration/internal/ifood"
	"github.com/allisson/ifood-integration/internal/metrics"
	"github.com/allisson/ifood-integration/internal/order/domain"
)

// orderUseCaseWithMetrics decorates OrderUseCase with metrics instrumentation.
type orderUseCaseWithMetrics struct {
	next    OrderUseCase
	metrics metrics.BusinessMetrics
}

// NewOrderUseCaseWithMetrics wraps an OrderUseCase with metrics recording.
func NewOrderUseCaseWithMetrics(useCase OrderUseCase, m metrics.BusinessMetrics) OrderUseCase {
	return &orderUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// record tracks one operation with its duration and outcome.
func (o *orderUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	o.metrics.RecordOperation(ctx, "orders", operation, status)
	o.metrics.RecordDuration(ctx, "orders", operation, time.Since(start), status)
}

// ProcessEvent records metrics for inbound event processing, labeling the
// operation with the processing result.
func (o *orderUseCaseWithMetrics) ProcessEvent(
	ctx context.Context,
	event ifood.RemoteEvent,
) (eventDomain.Result, error) {
	start := time.Now()
	result, err := o.next.ProcessEvent(ctx, event)

	status := string(result)
	if err != nil {
		status = "error"
	}

	o.metrics.RecordOperation(ctx, "orders", "process_event", status)
	o.metrics.RecordDuration(ctx, "orders", "process_event", time.Since(start), status)

	return result, err
}

func (o *orderUseCaseWithMetrics) Confirm(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	start := time.Now()
	order, err := o.next.Confirm(ctx, id)
	o.record(ctx, "confirm", start, err)
	return order, err
}

func (o *orderUseCaseWithMetrics) StartPreparation(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	start := time.Now()
	order, err := o.next.StartPreparation(ctx, id)
	o.record(ctx, "start_preparation", start, err)
	return order, err
}

func (o *orderUseCaseWithMetrics) ReadyToPickup(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	start := time.Now()
	order, err := o.next.ReadyToPickup(ctx, id)
	o.record(ctx, "ready_to_pickup", start, err)
	return order, err
}

func (o *orderUseCaseWithMetrics) Dispatch(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	start := time.Now()
	order, err := o.next.Dispatch(ctx, id)
	o.record(ctx, "dispatch", start, err)
	return order, err
}

func (o *orderUseCaseWithMetrics) StartSeparation(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	start := time.Now()
	order, err := o.next.StartSeparation(ctx, id)
	o.record(ctx, "start_separation", start, err)
	return order, err
}

func (o *orderUseCaseWithMetrics) EndSeparation(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	start := time.Now()
	order, err := o.next.EndSeparation(ctx, id)
	o.record(ctx, "end_separation", start, err)
	return order, err
}

func (o *orderUseCaseWithMetrics) Cancel(
	ctx context.Context,
	id uuid.UUID,
	code int,
	reason string,
) (*domain.Order, error) {
	start := time.Now()
	order, err := o.next.Cancel(ctx, id, code, reason)
	o.record(ctx, "cancel", start, err)
	return order, err
}

func (o *orderUseCaseWithMetrics) Get(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	return o.next.Get(ctx, id)
}

func (o *orderUseCaseWithMetrics) List(
	ctx context.Context,
	filter domain.Filter,
	offset, limit int,
) ([]*domain.Order, error) {
	return o.next.List(ctx, filter, offset, limit)
}

func (o *orderUseCaseWithMetrics) CancellationReasons() []domain.CancellationReason {
	return o.next.CancellationReasons()
}

func (o *orderUseCaseWithMetrics) DashboardMetrics(ctx context.Context) (*DashboardMetrics, error) {
	return o.next.DashboardMetrics(ctx)
}

func (o *orderUseCaseWithMetrics) Tracking(ctx context.Context, id uuid.UUID) (json.RawMessage, error) {
	return o.next.Tracking(ctx, id)
}

func (o *orderUseCaseWithMetrics) AddPickingItem(ctx context.Context, id uuid.UUID, item json.RawMessage) error {
	start := time.Now()
	err := o.next.AddPickingItem(ctx, id, item)
	o.record(ctx, "add_picking_item", start, err)
	return err
}

func (o *orderUseCaseWithMetrics) ModifyPickingItem(
	ctx context.Context,
	id uuid.UUID,
	uniqueID string,
	changes json.RawMessage,
) error {
	start := time.Now()
	err := o.next.ModifyPickingItem(ctx, id, uniqueID, changes)
	o.record(ctx, "modify_picking_item", start, err)
	return err
}

func (o *orderUseCaseWithMetrics) ReplacePickingItem(
	ctx context.Context,
	id uuid.UUID,
	uniqueID string,
	replacement json.RawMessage,
) error {
	start := time.Now()
	err := o.next.ReplacePickingItem(ctx, id, uniqueID, replacement)
	o.record(ctx, "replace_picking_item", start, err)
	return err
}

func (o *orderUseCaseWithMetrics) RemovePickingItem(ctx context.Context, id uuid.UUID, uniqueID string) error {
	start := time.Now()
	err := o.next.RemovePickingItem(ctx, id, uniqueID)
	o.record(ctx, "remove_picking_item", start, err)
	return err
}
