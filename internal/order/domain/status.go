// Package domain defines the order lifecycle: statuses, the category-aware
// transition graph and the rules separating inbound events (silently
// deduplicated) from direct actions (rejected with an error).
package domain

// Status represents the lifecycle status of an order
type Status string

const (
	StatusPlaced             Status = "PLACED"
	StatusConfirmed          Status = "CONFIRMED"
	StatusPreparationStarted Status = "PREPARATION_STARTED"
	StatusSeparationStarted  Status = "SEPARATION_STARTED"
	StatusSeparationEnded    Status = "SEPARATION_ENDED"
	StatusReadyToPickup      Status = "READY_TO_PICKUP"
	StatusDispatched         Status = "DISPATCHED"
	StatusConcluded          Status = "CONCLUDED"
	StatusCancelled          Status = "CANCELLED"
)

// Category represents the order category reported by the marketplace.
// Grocery orders go through item separation instead of kitchen preparation.
type Category string

const (
	CategoryFood    Category = "FOOD"
	CategoryGrocery Category = "GROCERY"
)

// foodEdges is the forward transition graph for non-grocery orders.
var foodEdges = map[Status]Status{
	StatusPlaced:             StatusConfirmed,
	StatusConfirmed:          StatusPreparationStarted,
	StatusPreparationStarted: StatusReadyToPickup,
	StatusReadyToPickup:      StatusDispatched,
	StatusDispatched:         StatusConcluded,
}

// groceryEdges is the forward transition graph for grocery orders, where
// separation replaces preparation and pickup readiness.
var groceryEdges = map[Status]Status{
	StatusPlaced:            StatusConfirmed,
	StatusConfirmed:         StatusSeparationStarted,
	StatusSeparationStarted: StatusSeparationEnded,
	StatusSeparationEnded:   StatusDispatched,
	StatusDispatched:        StatusConcluded,
}

// IsTerminal reports whether the status accepts no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusConcluded || s == StatusCancelled
}

// IsValid reports whether the status is a known lifecycle status.
func (s Status) IsValid() bool {
	switch s {
	case StatusPlaced, StatusConfirmed, StatusPreparationStarted,
		StatusSeparationStarted, StatusSeparationEnded,
		StatusReadyToPickup, StatusDispatched, StatusConcluded, StatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether the transition graph for the given category
// has an edge from the current status to the target. Cancellation is
// reachable from any non-terminal status.
func CanTransition(category Category, from, to Status) bool {
	if from.IsTerminal() {
		return false
	}
	if to == StatusCancelled {
		return true
	}

	edges := foodEdges
	if category == CategoryGrocery {
		edges = groceryEdges
	}
	return edges[from] == to
}

// statusByEventCode maps remote event full codes to lifecycle statuses.
// Codes without an entry (e.g. courier arrival notifications) carry no
// transition and are ignored by the state machine.
var statusByEventCode = map[string]Status{
	"PLACED":              StatusPlaced,
	"CONFIRMED":           StatusConfirmed,
	"PREPARATION_STARTED": StatusPreparationStarted,
	"SEPARATION_STARTED":  StatusSeparationStarted,
	"SEPARATION_ENDED":    StatusSeparationEnded,
	"READY_TO_PICKUP":     StatusReadyToPickup,
	"DISPATCHED":          StatusDispatched,
	"CONCLUDED":           StatusConcluded,
	"CANCELLED":           StatusCancelled,
}

// StatusFromEventCode resolves a remote event full code to a lifecycle
// status. The second return value reports whether the code is a
// status-change code.
func StatusFromEventCode(fullCode string) (Status, bool) {
	status, ok := statusByEventCode[fullCode]
	return status, ok
}
