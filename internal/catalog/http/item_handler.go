// Package http provides HTTP handlers for catalog item management.
package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/ifood-integration/internal/catalog/domain"
	"github.com/allisson/ifood-integration/internal/catalog/http/dto"
	catalogUseCase "github.com/allisson/ifood-integration/internal/catalog/usecase"
	apperrors "github.com/allisson/ifood-integration/internal/errors"
	"github.com/allisson/ifood-integration/internal/httputil"
	customValidation "github.com/allisson/ifood-integration/internal/validation"
)

// ItemHandler handles HTTP requests for catalog items.
type ItemHandler struct {
	useCase    catalogUseCase.ItemUseCase
	merchantID string
	logger     *slog.Logger
}

// NewItemHandler creates a new item handler with required dependencies.
func NewItemHandler(useCase catalogUseCase.ItemUseCase, merchantID string, logger *slog.Logger) *ItemHandler {
	return &ItemHandler{
		useCase:    useCase,
		merchantID: merchantID,
		logger:     logger,
	}
}

// ListHandler lists catalog items with pagination and optional category and
// availability filters.
// GET /v1/items?category=&available=&offset=&limit=
func (h *ItemHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	var filter domain.Filter
	if raw := c.Query("category"); raw != "" {
		filter.Category = &raw
	}
	if raw := c.Query("available"); raw != "" {
		available, err := strconv.ParseBool(raw)
		if err != nil {
			httputil.HandleBadRequestGin(c, apperrors.New("invalid available parameter"), h.logger)
			return
		}
		filter.Available = &available
	}

	items, err := h.useCase.List(c.Request.Context(), filter, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapItemsToListResponse(items, offset, limit))
}

// GetHandler retrieves a single catalog item.
// GET /v1/items/:id
func (h *ItemHandler) GetHandler(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	item, err := h.useCase.Get(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapItemToResponse(item))
}

// CreateHandler creates a catalog item.
// POST /v1/items
func (h *ItemHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	item, err := h.useCase.Create(c.Request.Context(), req.ToItem(h.merchantID))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapItemToResponse(item))
}

// UpdateHandler applies a partial update to a catalog item.
// PATCH /v1/items/:id
func (h *ItemHandler) UpdateHandler(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req dto.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	item, err := h.useCase.Update(c.Request.Context(), id, req.ToUpdate())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapItemToResponse(item))
}

// DeleteHandler removes a catalog item.
// DELETE /v1/items/:id
func (h *ItemHandler) DeleteHandler(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.useCase.Delete(c.Request.Context(), id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// AvailabilityHandler toggles whether an item can be sold.
// PATCH /v1/items/:id/availability?available=true|false
func (h *ItemHandler) AvailabilityHandler(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	available, err := strconv.ParseBool(c.Query("available"))
	if err != nil {
		httputil.HandleBadRequestGin(c, apperrors.New("invalid available parameter"), h.logger)
		return
	}

	item, err := h.useCase.SetAvailability(c.Request.Context(), id, available)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapItemToResponse(item))
}

// parseID extracts and validates the item id URL parameter.
func (h *ItemHandler) parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, apperrors.New("invalid item id"), h.logger)
		return uuid.Nil, false
	}
	return id, true
}
