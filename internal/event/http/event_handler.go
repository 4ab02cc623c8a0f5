// Package http provides HTTP handlers for the event audit trail.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/ifood-integration/internal/event/http/dto"
	eventUseCase "github.com/allisson/ifood-integration/internal/event/usecase"
	"github.com/allisson/ifood-integration/internal/httputil"
)

// EventHandler handles HTTP requests for the event audit trail.
type EventHandler struct {
	useCase eventUseCase.EventUseCase
	logger  *slog.Logger
}

// NewEventHandler creates a new event handler with required dependencies.
func NewEventHandler(useCase eventUseCase.EventUseCase, logger *slog.Logger) *EventHandler {
	return &EventHandler{
		useCase: useCase,
		logger:  logger,
	}
}

// ListHandler lists processed events with pagination, most recent first.
// GET /v1/events?offset=&limit=
func (h *EventHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	records, err := h.useCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapEventRecordsToListResponse(records, offset, limit))
}
