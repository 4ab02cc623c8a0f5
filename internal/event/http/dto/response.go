// Package dto provides data transfer objects for event HTTP responses.
package dto

import (
	"time"

	eventDomain "github.com/allisson/ifood-integration/internal/event/domain"
)

// EventRecordResponse represents one audit trail entry in API responses.
type EventRecordResponse struct {
	ID            string    `json:"id"`
	RemoteEventID string    `json:"remote_event_id"`
	RemoteOrderID string    `json:"remote_order_id"`
	Code          string    `json:"code"`
	FullCode      string    `json:"full_code,omitempty"`
	Result        string    `json:"result"`
	Error         *string   `json:"error,omitempty"`
	ReceivedAt    time.Time `json:"received_at"`
}

// MapEventRecordToResponse converts a domain event record to an API response.
func MapEventRecordToResponse(record *eventDomain.EventRecord) EventRecordResponse {
	return EventRecordResponse{
		ID:            record.ID.String(),
		RemoteEventID: record.RemoteEventID,
		RemoteOrderID: record.RemoteOrderID,
		Code:          record.Code,
		FullCode:      record.FullCode,
		Result:        string(record.Result),
		Error:         record.Error,
		ReceivedAt:    record.ReceivedAt,
	}
}

// ListEventRecordsResponse is the paginated event listing payload.
type ListEventRecordsResponse struct {
	Events []EventRecordResponse `json:"events"`
	Offset int                   `json:"offset"`
	Limit  int                   `json:"limit"`
}

// MapEventRecordsToListResponse converts domain event records to a listing response.
func MapEventRecordsToListResponse(records []*eventDomain.EventRecord, offset, limit int) ListEventRecordsResponse {
	responses := make([]EventRecordResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, MapEventRecordToResponse(record))
	}
	return ListEventRecordsResponse{
		Events: responses,
		Offset: offset,
		Limit:  limit,
	}
}
