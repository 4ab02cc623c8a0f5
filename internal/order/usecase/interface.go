// Package usecase implements the order business logic: direct dashboard
// actions going through the remote gateway and inbound event processing
// driven by the polling loop.
package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	eventDomain "github.com/allisson/ifood-integration/internal/event/domain"
	"github.com/allisson/ifood-integration/internal/ifood"
	"github.com/allisson/ifood-integration/internal/order/domain"
)

// OrderRepository defines the interface for order persistence operations.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	GetByRemoteID(ctx context.Context, remoteID string) (*domain.Order, error)
	Update(ctx context.Context, order *domain.Order) error
	List(ctx context.Context, filter domain.Filter, offset, limit int) ([]*domain.Order, error)
	CountByStatus(ctx context.Context) (map[domain.Status]int, error)
	CountOverdue(ctx context.Context, before time.Time) (int, error)
	RevenueSince(ctx context.Context, since time.Time) (float64, error)
}

// EventRecordRepository defines the interface for the event audit trail.
type EventRecordRepository interface {
	Create(ctx context.Context, record *eventDomain.EventRecord) error
	List(ctx context.Context, offset, limit int) ([]*eventDomain.EventRecord, error)
	CountSince(ctx context.Context, since time.Time) (int, error)
}

// Gateway defines the remote order action calls used by the use case.
type Gateway interface {
	ConfirmOrder(ctx context.Context, orderID string) error
	StartPreparation(ctx context.Context, orderID string) error
	ReadyToPickup(ctx context.Context, orderID string) error
	Dispatch(ctx context.Context, orderID string) error
	RequestCancellation(ctx context.Context, orderID string, code int, reason string) error
	StartSeparation(ctx context.Context, orderID string) error
	EndSeparation(ctx context.Context, orderID string) error
	OrderDetails(ctx context.Context, orderID string) (*ifood.OrderDetails, error)
	OrderTracking(ctx context.Context, orderID string) (json.RawMessage, error)
	AddPickingItem(ctx context.Context, orderID string, item interface{}) error
	ModifyPickingItem(ctx context.Context, orderID, uniqueID string, changes interface{}) error
	ReplacePickingItem(ctx context.Context, orderID, uniqueID string, replacement interface{}) error
	RemovePickingItem(ctx context.Context, orderID, uniqueID string) error
}

// DashboardMetrics aggregates order and event counters for the dashboard.
type DashboardMetrics struct {
	TotalOrders    int                   `json:"total_orders"`
	OrdersByStatus map[domain.Status]int `json:"orders_by_status"`
	OverdueOrders  int                   `json:"overdue_orders"`
	EventsLast24h  int                   `json:"events_last_24h"`
	RevenueToday   float64               `json:"revenue_today"`
}

// OrderUseCase defines the interface for order business logic.
type OrderUseCase interface {
	// ProcessEvent applies one inbound remote event: it resolves the order
	// (creating it on the first PLACED event), runs the transition and appends
	// an audit record. Rejected and ignored events are not errors.
	ProcessEvent(ctx context.Context, event ifood.RemoteEvent) (eventDomain.Result, error)

	Confirm(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	StartPreparation(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ReadyToPickup(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	Dispatch(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	StartSeparation(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	EndSeparation(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	Cancel(ctx context.Context, id uuid.UUID, code int, reason string) (*domain.Order, error)

	Get(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	List(ctx context.Context, filter domain.Filter, offset, limit int) ([]*domain.Order, error)
	CancellationReasons() []domain.CancellationReason
	DashboardMetrics(ctx context.Context) (*DashboardMetrics, error)

	// Tracking proxies the courier tracking document from the remote.
	Tracking(ctx context.Context, id uuid.UUID) (json.RawMessage, error)

	// Picking item manipulation during grocery separation. Payloads are
	// forwarded to the remote as-is.
	AddPickingItem(ctx context.Context, id uuid.UUID, item json.RawMessage) error
	ModifyPickingItem(ctx context.Context, id uuid.UUID, uniqueID string, changes json.RawMessage) error
	ReplacePickingItem(ctx context.Context, id uuid.UUID, uniqueID string, replacement json.RawMessage) error
	RemovePickingItem(ctx context.Context, id uuid.UUID, uniqueID string) error
}
