package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogHTTP "github.com/allisson/ifood-integration/internal/catalog/http"
	eventHTTP "github.com/allisson/ifood-integration/internal/event/http"
	merchantHTTP "github.com/allisson/ifood-integration/internal/merchant/http"
	"github.com/allisson/ifood-integration/internal/metrics"
	orderHTTP "github.com/allisson/ifood-integration/internal/order/http"
	pollingHTTP "github.com/allisson/ifood-integration/internal/polling/http"
	promotionHTTP "github.com/allisson/ifood-integration/internal/promotion/http"
)

// TestMain sets Gin to test mode for all tests in this package.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// createTestServer creates a test server with a discarding logger.
func createTestServer() *Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(nil, "localhost", 8080, logger)
}

// fullRouterConfig builds a RouterConfig with every handler set. The handlers
// hold nil dependencies, which is fine for route registration tests.
func fullRouterConfig() RouterConfig {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return RouterConfig{
		OrderHandler:     orderHTTP.NewOrderHandler(nil, 8*time.Minute, logger),
		EventHandler:     eventHTTP.NewEventHandler(nil, logger),
		PollingHandler:   pollingHTTP.NewPollingHandler(nil, logger),
		MerchantHandler:  merchantHTTP.NewMerchantHandler(nil, logger),
		ItemHandler:      catalogHTTP.NewItemHandler(nil, "merchant-1", logger),
		PromotionHandler: promotionHTTP.NewPromotionHandler(nil, "merchant-1", logger),
	}
}

func TestHealthHandler(t *testing.T) {
	server := createTestServer()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	server.healthHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, "healthy", response["status"])
}

func TestReadinessHandler_NotReady_NilDB(t *testing.T) {
	server := createTestServer()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)

	server.readinessHandler(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, "not_ready", response["status"])

	components, ok := response["components"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "error", components["database"])
}

func TestSetupRouter_RegistersAllRoutes(t *testing.T) {
	server := createTestServer()
	server.SetupRouter(fullRouterConfig())

	registered := make(map[string]bool)
	for _, route := range server.router.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"GET /v1/orders",
		"GET /v1/orders/cancellation-reasons",
		"GET /v1/orders/:id",
		"POST /v1/orders/:id/confirm",
		"POST /v1/orders/:id/start-preparation",
		"POST /v1/orders/:id/ready",
		"POST /v1/orders/:id/dispatch",
		"POST /v1/orders/:id/start-separation",
		"POST /v1/orders/:id/end-separation",
		"POST /v1/orders/:id/cancel",
		"GET /v1/orders/:id/tracking",
		"POST /v1/orders/:id/picking/items",
		"PATCH /v1/orders/:id/picking/items/:unique_id",
		"POST /v1/orders/:id/picking/items/:unique_id/replace",
		"DELETE /v1/orders/:id/picking/items/:unique_id",
		"GET /v1/metrics/dashboard",
		"GET /v1/events",
		"GET /v1/polling/status",
		"POST /v1/polling/start",
		"POST /v1/polling/stop",
		"POST /v1/polling/force",
		"GET /v1/merchant",
		"GET /v1/merchant/status",
		"GET /v1/merchant/interruptions",
		"POST /v1/merchant/interruptions",
		"DELETE /v1/merchant/interruptions/:id",
		"GET /v1/merchant/opening-hours",
		"PUT /v1/merchant/opening-hours",
		"GET /v1/auth/status",
		"GET /v1/items",
		"POST /v1/items",
		"GET /v1/items/:id",
		"PATCH /v1/items/:id",
		"DELETE /v1/items/:id",
		"PATCH /v1/items/:id/availability",
		"GET /v1/promotions",
		"POST /v1/promotions",
		"GET /v1/promotions/:id",
		"DELETE /v1/promotions/:id",
	}

	for _, route := range expected {
		assert.True(t, registered[route], "route %s should be registered", route)
	}
}

func TestRouter_HealthEndpoint(t *testing.T) {
	server := createTestServer()
	server.SetupRouter(fullRouterConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	server.GetHandler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_NotFoundEndpoint(t *testing.T) {
	server := createTestServer()
	server.SetupRouter(fullRouterConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/nonexistent", nil)
	server.GetHandler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCustomLoggerMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := gin.New()
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(logger))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "test"})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestIDMiddleware_HeaderPresent(t *testing.T) {
	server := createTestServer()
	server.SetupRouter(fullRouterConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	server.GetHandler().ServeHTTP(w, req)

	requestID := w.Header().Get("X-Request-Id")
	assert.NotEmpty(t, requestID)

	parsedUUID, err := uuid.Parse(requestID)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, parsedUUID)
}

func TestRateLimitMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(RateLimitMiddleware(1.0, 2))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "test"})
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, http.StatusOK, codes[0])
	assert.Equal(t, http.StatusOK, codes[1])
	assert.Equal(t, http.StatusTooManyRequests, codes[2])
}

func TestRecoveryMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(CustomLoggerMiddleware(logger))
	router.GET("/panic", func(c *gin.Context) {
		panic("test panic")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/panic", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestServer_ShutdownGracefully(t *testing.T) {
	server := createTestServer()
	server.SetupRouter(fullRouterConfig())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errChan := make(chan error, 1)
	go func() {
		if err := server.Start(ctx); err != nil {
			errChan <- err
		}
	}()

	// Give server time to start
	time.Sleep(100 * time.Millisecond)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	err := server.Shutdown(shutdownCtx)
	assert.NoError(t, err)

	select {
	case err := <-errChan:
		t.Fatalf("server startup failed: %v", err)
	default:
	}
}

func TestMetricsServer_Endpoints(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	provider, err := metrics.NewProvider("test_app")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	metricsServer := NewMetricsServer("localhost", 8081, logger, provider)
	require.NotNil(t, metricsServer)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	metricsServer.GetHandler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
}

// TestServer_NoMetricsEndpoint verifies the API server does not expose /metrics.
func TestServer_NoMetricsEndpoint(t *testing.T) {
	server := createTestServer()
	server.SetupRouter(fullRouterConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	server.GetHandler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
