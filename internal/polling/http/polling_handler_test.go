package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/ifood-integration/internal/errors"
	"github.com/allisson/ifood-integration/internal/polling"
)

type mockEngine struct {
	mock.Mock
}

func (m *mockEngine) Start(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockEngine) Stop() error {
	return m.Called().Error(0)
}

func (m *mockEngine) ForcePollOnce(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockEngine) Status() polling.Status {
	return m.Called().Get(0).(polling.Status)
}

func setupTestHandler(t *testing.T) (*PollingHandler, *mockEngine) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	engine := &mockEngine{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewPollingHandler(engine, logger), engine
}

func createTestContext(method, path string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, path, nil)
	return c, w
}

func TestPollingHandler_StatusHandler(t *testing.T) {
	handler, engine := setupTestHandler(t)

	now := time.Now().UTC()
	engine.On("Status").Return(polling.Status{
		PollingActive:  true,
		LastPollAt:     &now,
		EventsReceived: 7,
	}).Once()

	c, w := createTestContext(http.MethodGet, "/v1/polling/status")

	handler.StatusHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response polling.Status
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response.PollingActive)
	assert.Equal(t, int64(7), response.EventsReceived)
}

func TestPollingHandler_StartHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, engine := setupTestHandler(t)

		engine.On("Start", mock.Anything).Return(nil).Once()
		engine.On("Status").Return(polling.Status{PollingActive: true}).Once()

		c, w := createTestContext(http.MethodPost, "/v1/polling/start")

		handler.StartHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		engine.AssertExpectations(t)
	})

	t.Run("Error_AlreadyRunning", func(t *testing.T) {
		handler, engine := setupTestHandler(t)

		engine.On("Start", mock.Anything).
			Return(apperrors.Wrap(apperrors.ErrConflict, "polling is already running")).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/polling/start")

		handler.StartHandler(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestPollingHandler_StopHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, engine := setupTestHandler(t)

		engine.On("Stop").Return(nil).Once()
		engine.On("Status").Return(polling.Status{PollingActive: false}).Once()

		c, w := createTestContext(http.MethodPost, "/v1/polling/stop")

		handler.StopHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		engine.AssertExpectations(t)
	})

	t.Run("Error_NotRunning", func(t *testing.T) {
		handler, engine := setupTestHandler(t)

		engine.On("Stop").
			Return(apperrors.Wrap(apperrors.ErrConflict, "polling is not running")).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/polling/stop")

		handler.StopHandler(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestPollingHandler_ForceHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, engine := setupTestHandler(t)

		engine.On("ForcePollOnce", mock.Anything).Return(nil).Once()
		engine.On("Status").Return(polling.Status{}).Once()

		c, w := createTestContext(http.MethodPost, "/v1/polling/force")

		handler.ForceHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		engine.AssertExpectations(t)
	})

	t.Run("Error_RemoteUnavailable", func(t *testing.T) {
		handler, engine := setupTestHandler(t)

		engine.On("ForcePollOnce", mock.Anything).
			Return(apperrors.Wrap(apperrors.ErrTransient, "remote down")).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/polling/force")

		handler.ForceHandler(c)

		assert.Equal(t, http.StatusBadGateway, w.Code)
	})
}
