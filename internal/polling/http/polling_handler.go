// Package http provides HTTP handlers for controlling the polling engine.
package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/ifood-integration/internal/httputil"
	"github.com/allisson/ifood-integration/internal/polling"
)

// Engine defines the polling engine operations exposed over HTTP.
type Engine interface {
	Start(ctx context.Context) error
	Stop() error
	ForcePollOnce(ctx context.Context) error
	Status() polling.Status
}

// PollingHandler handles HTTP requests for polling control.
type PollingHandler struct {
	engine Engine
	logger *slog.Logger
}

// NewPollingHandler creates a new polling handler with required dependencies.
func NewPollingHandler(engine Engine, logger *slog.Logger) *PollingHandler {
	return &PollingHandler{
		engine: engine,
		logger: logger,
	}
}

// StatusHandler returns a snapshot of the polling engine state.
// GET /v1/polling/status
func (h *PollingHandler) StatusHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.engine.Status())
}

// StartHandler starts the background polling loop. The loop keeps running
// after the request context ends, so it is detached from it here.
// POST /v1/polling/start
func (h *PollingHandler) StartHandler(c *gin.Context) {
	if err := h.engine.Start(context.WithoutCancel(c.Request.Context())); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, h.engine.Status())
}

// StopHandler stops the background polling loop after its current cycle.
// POST /v1/polling/stop
func (h *PollingHandler) StopHandler(c *gin.Context) {
	if err := h.engine.Stop(); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, h.engine.Status())
}

// ForceHandler runs one polling cycle synchronously.
// POST /v1/polling/force
func (h *PollingHandler) ForceHandler(c *gin.Context) {
	if err := h.engine.ForcePollOnce(c.Request.Context()); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, h.engine.Status())
}
