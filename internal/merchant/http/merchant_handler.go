// Package http provides HTTP handlers for merchant and authentication status
// pass-through queries against the remote marketplace.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/ifood-integration/internal/httputil"
	"github.com/allisson/ifood-integration/internal/ifood"
	customValidation "github.com/allisson/ifood-integration/internal/validation"
)

// Gateway defines the remote merchant queries exposed over HTTP.
type Gateway interface {
	MerchantDetails(ctx context.Context) (json.RawMessage, error)
	MerchantStatus(ctx context.Context) (*ifood.MerchantStatus, error)
	AuthStatus() ifood.AuthStatus
	Interruptions(ctx context.Context) (json.RawMessage, error)
	CreateInterruption(ctx context.Context, interruption interface{}) (json.RawMessage, error)
	DeleteInterruption(ctx context.Context, interruptionID string) error
	OpeningHours(ctx context.Context) (json.RawMessage, error)
	SetOpeningHours(ctx context.Context, payload interface{}) (json.RawMessage, error)
}

// MerchantHandler handles HTTP requests for merchant queries.
type MerchantHandler struct {
	gateway Gateway
	logger  *slog.Logger
}

// NewMerchantHandler creates a new merchant handler with required dependencies.
func NewMerchantHandler(gateway Gateway, logger *slog.Logger) *MerchantHandler {
	return &MerchantHandler{
		gateway: gateway,
		logger:  logger,
	}
}

// DetailsHandler returns the merchant details as reported by the remote.
// GET /v1/merchant
func (h *MerchantHandler) DetailsHandler(c *gin.Context) {
	details, err := h.gateway.MerchantDetails(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusOK, "application/json", details)
}

// StatusHandler returns the merchant availability as reported by the remote.
// GET /v1/merchant/status
func (h *MerchantHandler) StatusHandler(c *gin.Context) {
	status, err := h.gateway.MerchantStatus(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, status)
}

// AuthStatusHandler returns the local view of the remote authentication state.
// GET /v1/auth/status
func (h *MerchantHandler) AuthStatusHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.gateway.AuthStatus())
}

// InterruptionsHandler lists the active sales interruptions.
// GET /v1/merchant/interruptions
func (h *MerchantHandler) InterruptionsHandler(c *gin.Context) {
	interruptions, err := h.gateway.Interruptions(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusOK, "application/json", interruptions)
}

// CreateInterruptionHandler opens a sales interruption window on the remote.
// POST /v1/merchant/interruptions
func (h *MerchantHandler) CreateInterruptionHandler(c *gin.Context) {
	var req InterruptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	created, err := h.gateway.CreateInterruption(c.Request.Context(), req)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusCreated, "application/json", created)
}

// DeleteInterruptionHandler removes a sales interruption on the remote.
// DELETE /v1/merchant/interruptions/:id
func (h *MerchantHandler) DeleteInterruptionHandler(c *gin.Context) {
	if err := h.gateway.DeleteInterruption(c.Request.Context(), c.Param("id")); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// OpeningHoursHandler returns the weekly opening schedule from the remote.
// GET /v1/merchant/opening-hours
func (h *MerchantHandler) OpeningHoursHandler(c *gin.Context) {
	hours, err := h.gateway.OpeningHours(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusOK, "application/json", hours)
}

// SetOpeningHoursHandler replaces the whole weekly opening schedule on the
// remote. Days without a shift in the payload become closed.
// PUT /v1/merchant/opening-hours
func (h *MerchantHandler) SetOpeningHoursHandler(c *gin.Context) {
	var req OpeningHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	updated, err := h.gateway.SetOpeningHours(c.Request.Context(), req)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusOK, "application/json", updated)
}
