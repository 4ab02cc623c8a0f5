// Package http provides HTTP handlers for order operations: listing, direct
// status actions and cancellation.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/allisson/ifood-integration/internal/errors"
	"github.com/allisson/ifood-integration/internal/httputil"
	orderDomain "github.com/allisson/ifood-integration/internal/order/domain"
	"github.com/allisson/ifood-integration/internal/order/http/dto"
	orderUseCase "github.com/allisson/ifood-integration/internal/order/usecase"
	customValidation "github.com/allisson/ifood-integration/internal/validation"
)

// OrderHandler handles HTTP requests for order operations.
type OrderHandler struct {
	useCase              orderUseCase.OrderUseCase
	confirmationDeadline time.Duration
	logger               *slog.Logger
}

// NewOrderHandler creates a new order handler with required dependencies.
func NewOrderHandler(
	useCase orderUseCase.OrderUseCase,
	confirmationDeadline time.Duration,
	logger *slog.Logger,
) *OrderHandler {
	return &OrderHandler{
		useCase:              useCase,
		confirmationDeadline: confirmationDeadline,
		logger:               logger,
	}
}

// ListHandler lists orders with pagination and an optional status filter.
// GET /v1/orders?status=&offset=&limit=
func (h *OrderHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	var filter orderDomain.Filter
	if raw := c.Query("status"); raw != "" {
		status := orderDomain.Status(raw)
		if !status.IsValid() {
			httputil.HandleBadRequestGin(c, apperrors.New("invalid status filter: "+raw), h.logger)
			return
		}
		filter.Status = &status
	}
	if raw := c.Query("category"); raw != "" {
		category := orderDomain.Category(raw)
		if category != orderDomain.CategoryFood && category != orderDomain.CategoryGrocery {
			httputil.HandleBadRequestGin(c, apperrors.New("invalid category filter: "+raw), h.logger)
			return
		}
		filter.Category = &category
	}

	orders, err := h.useCase.List(c.Request.Context(), filter, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapOrdersToListResponse(orders, h.confirmationDeadline, offset, limit))
}

// GetHandler retrieves a single order.
// GET /v1/orders/:id
func (h *OrderHandler) GetHandler(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	order, err := h.useCase.Get(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapOrderToResponse(order, h.confirmationDeadline))
}

// ConfirmHandler confirms an order.
// POST /v1/orders/:id/confirm
func (h *OrderHandler) ConfirmHandler(c *gin.Context) {
	h.action(c, h.useCase.Confirm)
}

// StartPreparationHandler starts kitchen preparation.
// POST /v1/orders/:id/start-preparation
func (h *OrderHandler) StartPreparationHandler(c *gin.Context) {
	h.action(c, h.useCase.StartPreparation)
}

// ReadyHandler marks an order as ready for pickup.
// POST /v1/orders/:id/ready
func (h *OrderHandler) ReadyHandler(c *gin.Context) {
	h.action(c, h.useCase.ReadyToPickup)
}

// DispatchHandler marks an order as out for delivery.
// POST /v1/orders/:id/dispatch
func (h *OrderHandler) DispatchHandler(c *gin.Context) {
	h.action(c, h.useCase.Dispatch)
}

// StartSeparationHandler starts item separation for a grocery order.
// POST /v1/orders/:id/start-separation
func (h *OrderHandler) StartSeparationHandler(c *gin.Context) {
	h.action(c, h.useCase.StartSeparation)
}

// EndSeparationHandler finishes item separation for a grocery order.
// POST /v1/orders/:id/end-separation
func (h *OrderHandler) EndSeparationHandler(c *gin.Context) {
	h.action(c, h.useCase.EndSeparation)
}

// CancelHandler cancels an order with a cancellation code and reason. The
// code may come from the JSON body or the cancellation_code query parameter.
// POST /v1/orders/:id/cancel
func (h *OrderHandler) CancelHandler(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req dto.CancelOrderRequest
	if c.Request.Body != nil && c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httputil.HandleBadRequestGin(c, err, h.logger)
			return
		}
	}

	if raw := c.Query("cancellation_code"); raw != "" && req.CancellationCode == 0 {
		code, err := strconv.Atoi(raw)
		if err != nil {
			httputil.HandleBadRequestGin(c, apperrors.New("invalid cancellation_code parameter"), h.logger)
			return
		}
		req.CancellationCode = code
	}
	if req.Reason == "" {
		req.Reason = c.Query("reason")
	}
	if req.Reason == "" {
		if reason, ok := orderDomain.CancellationReasonByCode(req.CancellationCode); ok {
			req.Reason = reason.Description
		}
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	order, err := h.useCase.Cancel(c.Request.Context(), id, req.CancellationCode, req.Reason)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapOrderToResponse(order, h.confirmationDeadline))
}

// TrackingHandler proxies the courier tracking document from the remote.
// GET /v1/orders/:id/tracking
func (h *OrderHandler) TrackingHandler(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	tracking, err := h.useCase.Tracking(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusOK, "application/json", tracking)
}

// AddPickingItemHandler adds an item to a grocery order under separation.
// POST /v1/orders/:id/picking/items
func (h *OrderHandler) AddPickingItemHandler(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var payload json.RawMessage
	if err := c.ShouldBindJSON(&payload); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := h.useCase.AddPickingItem(c.Request.Context(), id, payload); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusAccepted)
}

// ModifyPickingItemHandler changes an item of a grocery order under separation.
// PATCH /v1/orders/:id/picking/items/:unique_id
func (h *OrderHandler) ModifyPickingItemHandler(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var payload json.RawMessage
	if err := c.ShouldBindJSON(&payload); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := h.useCase.ModifyPickingItem(c.Request.Context(), id, c.Param("unique_id"), payload); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusAccepted)
}

// ReplacePickingItemHandler swaps an item of a grocery order for another one.
// POST /v1/orders/:id/picking/items/:unique_id/replace
func (h *OrderHandler) ReplacePickingItemHandler(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var payload json.RawMessage
	if err := c.ShouldBindJSON(&payload); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := h.useCase.ReplacePickingItem(c.Request.Context(), id, c.Param("unique_id"), payload); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusAccepted)
}

// RemovePickingItemHandler removes an item from a grocery order under
// separation.
// DELETE /v1/orders/:id/picking/items/:unique_id
func (h *OrderHandler) RemovePickingItemHandler(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.useCase.RemovePickingItem(c.Request.Context(), id, c.Param("unique_id")); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// CancellationReasonsHandler lists the accepted cancellation codes.
// GET /v1/orders/cancellation-reasons
func (h *OrderHandler) CancellationReasonsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"reasons": h.useCase.CancellationReasons()})
}

// DashboardMetricsHandler aggregates order and event counters.
// GET /v1/metrics/dashboard
func (h *OrderHandler) DashboardMetricsHandler(c *gin.Context) {
	metrics, err := h.useCase.DashboardMetrics(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, metrics)
}

// action runs one direct order action handler.
func (h *OrderHandler) action(
	c *gin.Context,
	call func(ctx context.Context, id uuid.UUID) (*orderDomain.Order, error),
) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	order, err := call(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapOrderToResponse(order, h.confirmationDeadline))
}

// parseID extracts and validates the order id URL parameter.
func (h *OrderHandler) parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, apperrors.New("invalid order id"), h.logger)
		return uuid.Nil, false
	}
	return id, true
}
