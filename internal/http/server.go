// Package http provides the dashboard HTTP server and its route wiring.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"

	catalogHTTP "github.com/allisson/ifood-integration/internal/catalog/http"
	eventHTTP "github.com/allisson/ifood-integration/internal/event/http"
	merchantHTTP "github.com/allisson/ifood-integration/internal/merchant/http"
	"github.com/allisson/ifood-integration/internal/metrics"
	orderHTTP "github.com/allisson/ifood-integration/internal/order/http"
	pollingHTTP "github.com/allisson/ifood-integration/internal/polling/http"
	promotionHTTP "github.com/allisson/ifood-integration/internal/promotion/http"
)

// RouterConfig holds the handlers and middleware settings for the API router.
type RouterConfig struct {
	OrderHandler     *orderHTTP.OrderHandler
	EventHandler     *eventHTTP.EventHandler
	PollingHandler   *pollingHTTP.PollingHandler
	MerchantHandler  *merchantHTTP.MerchantHandler
	ItemHandler      *catalogHTTP.ItemHandler
	PromotionHandler *promotionHTTP.PromotionHandler

	MeterProvider    metric.MeterProvider
	MetricsNamespace string

	CORSEnabled      bool
	CORSAllowOrigins string

	RateLimitEnabled        bool
	RateLimitRequestsPerSec float64
	RateLimitBurst          int
}

// Server represents the dashboard HTTP server.
type Server struct {
	server *http.Server
	router *gin.Engine
	db     *sql.DB
	logger *slog.Logger
}

// NewServer creates a new HTTP server. The database handle is used by the
// readiness probe and may be nil in tests.
func NewServer(
	db *sql.DB,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter builds the Gin router and registers all API routes.
func (s *Server) SetupRouter(cfg RouterConfig) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if cfg.MeterProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(cfg.MeterProvider, cfg.MetricsNamespace))
	}

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")
	if cfg.RateLimitEnabled {
		v1.Use(RateLimitMiddleware(cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst))
	}

	if cfg.OrderHandler != nil {
		orders := v1.Group("/orders")
		orders.GET("", cfg.OrderHandler.ListHandler)
		orders.GET("/cancellation-reasons", cfg.OrderHandler.CancellationReasonsHandler)
		orders.GET("/:id", cfg.OrderHandler.GetHandler)
		orders.POST("/:id/confirm", cfg.OrderHandler.ConfirmHandler)
		orders.POST("/:id/start-preparation", cfg.OrderHandler.StartPreparationHandler)
		orders.POST("/:id/ready", cfg.OrderHandler.ReadyHandler)
		orders.POST("/:id/dispatch", cfg.OrderHandler.DispatchHandler)
		orders.POST("/:id/start-separation", cfg.OrderHandler.StartSeparationHandler)
		orders.POST("/:id/end-separation", cfg.OrderHandler.EndSeparationHandler)
		orders.POST("/:id/cancel", cfg.OrderHandler.CancelHandler)
		orders.GET("/:id/tracking", cfg.OrderHandler.TrackingHandler)
		orders.POST("/:id/picking/items", cfg.OrderHandler.AddPickingItemHandler)
		orders.PATCH("/:id/picking/items/:unique_id", cfg.OrderHandler.ModifyPickingItemHandler)
		orders.POST("/:id/picking/items/:unique_id/replace", cfg.OrderHandler.ReplacePickingItemHandler)
		orders.DELETE("/:id/picking/items/:unique_id", cfg.OrderHandler.RemovePickingItemHandler)

		v1.GET("/metrics/dashboard", cfg.OrderHandler.DashboardMetricsHandler)
	}

	if cfg.EventHandler != nil {
		v1.GET("/events", cfg.EventHandler.ListHandler)
	}

	if cfg.PollingHandler != nil {
		polling := v1.Group("/polling")
		polling.GET("/status", cfg.PollingHandler.StatusHandler)
		polling.POST("/start", cfg.PollingHandler.StartHandler)
		polling.POST("/stop", cfg.PollingHandler.StopHandler)
		polling.POST("/force", cfg.PollingHandler.ForceHandler)
	}

	if cfg.MerchantHandler != nil {
		v1.GET("/merchant", cfg.MerchantHandler.DetailsHandler)
		v1.GET("/merchant/status", cfg.MerchantHandler.StatusHandler)
		v1.GET("/merchant/interruptions", cfg.MerchantHandler.InterruptionsHandler)
		v1.POST("/merchant/interruptions", cfg.MerchantHandler.CreateInterruptionHandler)
		v1.DELETE("/merchant/interruptions/:id", cfg.MerchantHandler.DeleteInterruptionHandler)
		v1.GET("/merchant/opening-hours", cfg.MerchantHandler.OpeningHoursHandler)
		v1.PUT("/merchant/opening-hours", cfg.MerchantHandler.SetOpeningHoursHandler)
		v1.GET("/auth/status", cfg.MerchantHandler.AuthStatusHandler)
	}

	if cfg.ItemHandler != nil {
		items := v1.Group("/items")
		items.GET("", cfg.ItemHandler.ListHandler)
		items.POST("", cfg.ItemHandler.CreateHandler)
		items.GET("/:id", cfg.ItemHandler.GetHandler)
		items.PATCH("/:id", cfg.ItemHandler.UpdateHandler)
		items.DELETE("/:id", cfg.ItemHandler.DeleteHandler)
		items.PATCH("/:id/availability", cfg.ItemHandler.AvailabilityHandler)
	}

	if cfg.PromotionHandler != nil {
		promotions := v1.Group("/promotions")
		promotions.GET("", cfg.PromotionHandler.ListHandler)
		promotions.POST("", cfg.PromotionHandler.CreateHandler)
		promotions.GET("/:id", cfg.PromotionHandler.GetHandler)
		promotions.DELETE("/:id", cfg.PromotionHandler.DeleteHandler)
	}

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return fmt.Errorf("router is not configured")
	}
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the server can reach its dependencies.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{"database": "ok"}

	if s.db == nil {
		components["database"] = "error"
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "components": components})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		components["database"] = "error"
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "components": components})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready", "components": components})
}
