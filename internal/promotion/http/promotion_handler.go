// Package http provides HTTP handlers for promotion management.
package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/allisson/ifood-integration/internal/errors"
	"github.com/allisson/ifood-integration/internal/httputil"
	"github.com/allisson/ifood-integration/internal/promotion/http/dto"
	promotionUseCase "github.com/allisson/ifood-integration/internal/promotion/usecase"
	customValidation "github.com/allisson/ifood-integration/internal/validation"
)

// PromotionHandler handles HTTP requests for promotions.
type PromotionHandler struct {
	useCase    promotionUseCase.PromotionUseCase
	merchantID string
	logger     *slog.Logger
}

// NewPromotionHandler creates a new promotion handler with required dependencies.
func NewPromotionHandler(
	useCase promotionUseCase.PromotionUseCase,
	merchantID string,
	logger *slog.Logger,
) *PromotionHandler {
	return &PromotionHandler{
		useCase:    useCase,
		merchantID: merchantID,
		logger:     logger,
	}
}

// ListHandler lists promotions with pagination and an optional active filter.
// GET /v1/promotions?active=&offset=&limit=
func (h *PromotionHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	var active *bool
	if raw := c.Query("active"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			httputil.HandleBadRequestGin(c, apperrors.New("invalid active parameter"), h.logger)
			return
		}
		active = &parsed
	}

	promotions, err := h.useCase.List(c.Request.Context(), active, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapPromotionsToListResponse(promotions, offset, limit))
}

// GetHandler retrieves a single promotion.
// GET /v1/promotions/:id
func (h *PromotionHandler) GetHandler(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	promotion, err := h.useCase.Get(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapPromotionToResponse(promotion))
}

// CreateHandler creates a promotion.
// POST /v1/promotions
func (h *PromotionHandler) CreateHandler(c *gin.Context) {
	var req dto.CreatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	promotion, err := h.useCase.Create(c.Request.Context(), req.ToPromotion(h.merchantID))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapPromotionToResponse(promotion))
}

// DeleteHandler removes a promotion.
// DELETE /v1/promotions/:id
func (h *PromotionHandler) DeleteHandler(c *gin.Context) {
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

// parseID extracts and validates the promotion id URL parameter.
func (h *PromotionHandler) parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, apperrors.New("invalid promotion id"), h.logger)
		return uuid.Nil, false
	}
	return id, true
}
