package dto

import (
	"time"

	orderDomain "github.com/allisson/ifood-integration/internal/order/domain"
)

// OrderResponse represents an order in API responses.
type OrderResponse struct {
	ID                 string     `json:"id"`
	RemoteID           string     `json:"remote_id"`
	DisplayID          string     `json:"display_id,omitempty"`
	MerchantID         string     `json:"merchant_id"`
	Category           string     `json:"category"`
	OrderType          string     `json:"order_type,omitempty"`
	Status             string     `json:"status"`
	CustomerName       string     `json:"customer_name,omitempty"`
	CustomerPhone      string     `json:"customer_phone,omitempty"`
	TotalAmount        float64    `json:"total_amount"`
	Overdue            bool       `json:"overdue"`
	CancellationCode   *int       `json:"cancellation_code,omitempty"`
	CancellationReason *string    `json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`

	ConfirmedAt          *time.Time `json:"confirmed_at,omitempty"`
	PreparationStartedAt *time.Time `json:"preparation_started_at,omitempty"`
	SeparationStartedAt  *time.Time `json:"separation_started_at,omitempty"`
	SeparationEndedAt    *time.Time `json:"separation_ended_at,omitempty"`
	ReadyAt              *time.Time `json:"ready_at,omitempty"`
	DispatchedAt         *time.Time `json:"dispatched_at,omitempty"`
	ConcludedAt          *time.Time `json:"concluded_at,omitempty"`
	CancelledAt          *time.Time `json:"cancelled_at,omitempty"`
}

// MapOrderToResponse converts a domain order to an API response. The overdue
// flag is derived against the confirmation deadline at response time.
func MapOrderToResponse(order *orderDomain.Order, deadline time.Duration) OrderResponse {
	return OrderResponse{
		ID:                 order.ID.String(),
		RemoteID:           order.RemoteID,
		DisplayID:          order.DisplayID,
		MerchantID:         order.MerchantID,
		Category:           string(order.Category),
		OrderType:          order.OrderType,
		Status:             string(order.Status),
		CustomerName:       order.CustomerName,
		CustomerPhone:      order.CustomerPhone,
		TotalAmount:        order.TotalAmount,
		Overdue:            order.IsOverdue(time.Now().UTC(), deadline),
		CancellationCode:   order.CancellationCode,
		CancellationReason: order.CancellationReason,
		CreatedAt:          order.CreatedAt,
		UpdatedAt:          order.UpdatedAt,

		ConfirmedAt:          order.ConfirmedAt,
		PreparationStartedAt: order.PreparationStartedAt,
		SeparationStartedAt:  order.SeparationStartedAt,
		SeparationEndedAt:    order.SeparationEndedAt,
		ReadyAt:              order.ReadyAt,
		DispatchedAt:         order.DispatchedAt,
		ConcludedAt:          order.ConcludedAt,
		CancelledAt:          order.CancelledAt,
	}
}

// ListOrdersResponse is the paginated order listing payload.
type ListOrdersResponse struct {
	Orders []OrderResponse `json:"orders"`
	Offset int             `json:"offset"`
	Limit  int             `json:"limit"`
}

// MapOrdersToListResponse converts domain orders to a listing response.
func MapOrdersToListResponse(orders []*orderDomain.Order, deadline time.Duration, offset, limit int) ListOrdersResponse {
	responses := make([]OrderResponse, 0, len(orders))
	for _, order := range orders {
		responses = append(responses, MapOrderToResponse(order, deadline))
	}
	return ListOrdersResponse{
		Orders: responses,
		Offset: offset,
		Limit:  limit,
	}
}
