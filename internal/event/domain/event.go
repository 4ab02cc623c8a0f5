// Package domain defines the received-event audit trail entities.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Result records how the engine handled a received event.
type Result string

const (
	// ResultApplied means the event transitioned its order.
	ResultApplied Result = "applied"
	// ResultRejected means the transition graph rejected the event as
	// redelivered or out of order.
	ResultRejected Result = "rejected"
	// ResultIgnored means the event code carries no status transition.
	ResultIgnored Result = "ignored"
	// ResultFailed means processing hit a hard error and the event was left
	// un-acked for redelivery.
	ResultFailed Result = "failed"
)

// EventRecord is one received remote event kept for auditing. Records are
// append-only; the remote event id may appear more than once when the remote
// redelivers before an ack registers.
type EventRecord struct {
	ID            uuid.UUID
	RemoteEventID string
	RemoteOrderID string
	Code          string
	FullCode      string
	Result        Result
	Error         *string
	ReceivedAt    time.Time
}
