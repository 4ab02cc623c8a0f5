package domain

import (
	"time"

	"github.com/google/uuid"

	apperrors "github.com/allisson/ifood-integration/internal/errors"
)

// Order represents one marketplace order tracked by the integration engine.
// The remote id is the marketplace's identifier; the internal id is ours.
type Order struct {
	ID                 uuid.UUID
	RemoteID           string
	DisplayID          string
	MerchantID         string
	Category           Category
	OrderType          string
	Status             Status
	CustomerName       string
	CustomerPhone      string
	TotalAmount        float64
	RawPayload         []byte
	CancellationCode   *int
	CancellationReason *string
	CreatedAt          time.Time
	UpdatedAt          time.Time

	// One timestamp per lifecycle transition. A nil entry means the order
	// never passed through that status.
	ConfirmedAt          *time.Time
	PreparationStartedAt *time.Time
	SeparationStartedAt  *time.Time
	SeparationEndedAt    *time.Time
	ReadyAt              *time.Time
	DispatchedAt         *time.Time
	ConcludedAt          *time.Time
	CancelledAt          *time.Time
}

// Filter narrows order listings. Nil fields match everything.
type Filter struct {
	Status   *Status
	Category *Category
}

// NewOrder creates an order in the initial PLACED status.
func NewOrder(remoteID, merchantID string, category Category) *Order {
	now := time.Now().UTC()
	return &Order{
		ID:         uuid.Must(uuid.NewV7()),
		RemoteID:   remoteID,
		MerchantID: merchantID,
		Category:   category,
		Status:     StatusPlaced,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// ApplyEvent moves the order to the target status if the transition graph
// allows it. Rejection is a no-op, not an error: redelivered and out-of-order
// events are expected under at-least-once delivery. Returns whether the
// transition was applied.
func (o *Order) ApplyEvent(target Status, at time.Time) bool {
	if !CanTransition(o.Category, o.Status, target) {
		return false
	}
	o.transition(target, at)
	return true
}

// ApplyAction moves the order to the target status for a direct caller
// action. Unlike inbound events, an action from an incompatible status is a
// caller error and is rejected with ErrInvalidTransition.
func (o *Order) ApplyAction(target Status, at time.Time) error {
	if !CanTransition(o.Category, o.Status, target) {
		return apperrors.Wrap(
			apperrors.ErrInvalidTransition,
			"cannot move order from "+string(o.Status)+" to "+string(target),
		)
	}
	o.transition(target, at)
	return nil
}

// Cancel moves the order to CANCELLED recording the cancellation code and
// reason. Terminal orders reject cancellation.
func (o *Order) Cancel(code int, reason string, at time.Time) error {
	if err := o.ApplyAction(StatusCancelled, at); err != nil {
		return err
	}
	o.CancellationCode = &code
	o.CancellationReason = &reason
	return nil
}

// IsOverdue reports whether the order has been waiting for confirmation
// longer than the deadline. Advisory only: the remote cancels unconfirmed
// orders on its side, this flag just surfaces the risk on the dashboard.
func (o *Order) IsOverdue(now time.Time, deadline time.Duration) bool {
	return o.Status == StatusPlaced && now.Sub(o.CreatedAt) > deadline
}

func (o *Order) transition(target Status, at time.Time) {
	o.Status = target
	o.UpdatedAt = at

	switch target {
	case StatusConfirmed:
		o.ConfirmedAt = &at
	case StatusPreparationStarted:
		o.PreparationStartedAt = &at
	case StatusSeparationStarted:
		o.SeparationStartedAt = &at
	case StatusSeparationEnded:
		o.SeparationEndedAt = &at
	case StatusReadyToPickup:
		o.ReadyAt = &at
	case StatusDispatched:
		o.DispatchedAt = &at
	case StatusConcluded:
		o.ConcludedAt = &at
	case StatusCancelled:
		o.CancelledAt = &at
	}
}
