package ifood

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/ifood-integration/internal/errors"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestTokenManager(baseURL string) *TokenManager {
	return NewTokenManager(TokenManagerConfig{
		BaseURL:             baseURL,
		ClientID:            "client-id",
		ClientSecret:        "client-secret",
		SafetyMargin:        5 * time.Minute,
		RetryMaxAttempts:    3,
		RetryInitialBackoff: time.Millisecond,
	}, nil, testLogger())
}

func TestTokenManager_Token_RefreshesOnFirstUse(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)

		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, tokenPath, r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostForm.Get("grantType"))
		assert.Equal(t, "client-id", r.PostForm.Get("clientId"))
		assert.Equal(t, "client-secret", r.PostForm.Get("clientSecret"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"accessToken":"token-1","type":"bearer","expiresIn":10800}`))
	}))
	defer server.Close()

	manager := newTestTokenManager(server.URL)

	token, err := manager.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "token-1", token.AccessToken)
	assert.WithinDuration(t, time.Now().Add(3*time.Hour), token.ExpiresAt, 5*time.Second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&requests))

	// Second call reuses the cached token.
	again, err := manager.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, token, again)
	assert.Equal(t, int32(1), atomic.LoadInt32(&requests))
}

func TestTokenManager_Token_RefreshesWithinSafetyMargin(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		_, _ = w.Write([]byte(`{"accessToken":"fresh-token","type":"bearer","expiresIn":10800}`))
	}))
	defer server.Close()

	manager := newTestTokenManager(server.URL)
	manager.token = &Token{
		AccessToken: "stale-token",
		ExpiresAt:   time.Now().Add(120 * time.Second),
	}

	// The cached token expires in 120s, inside the 5-minute margin.
	token, err := manager.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", token.AccessToken)
	assert.Equal(t, int32(1), atomic.LoadInt32(&requests))
}

func TestTokenManager_Invalidate(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		_, _ = w.Write([]byte(`{"accessToken":"fresh-token","type":"bearer","expiresIn":10800}`))
	}))
	defer server.Close()

	manager := newTestTokenManager(server.URL)
	manager.token = &Token{
		AccessToken: "revoked-token",
		ExpiresAt:   time.Now().Add(3 * time.Hour),
	}

	manager.Invalidate()

	token, err := manager.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", token.AccessToken)
	assert.Equal(t, int32(1), atomic.LoadInt32(&requests))
}

func TestTokenManager_Token_SingleRefreshUnderConcurrency(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		time.Sleep(20 * time.Millisecond)
		_, _ = w.Write([]byte(`{"accessToken":"shared-token","type":"bearer","expiresIn":10800}`))
	}))
	defer server.Close()

	manager := newTestTokenManager(server.URL)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			token, err := manager.Token(context.Background())
			assert.NoError(t, err)
			assert.Equal(t, "shared-token", token.AccessToken)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&requests))
}

func TestTokenManager_Token_CredentialsRejected(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	manager := newTestTokenManager(server.URL)

	_, err := manager.Token(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrAuth)

	// Credential rejections are configuration errors and are never retried.
	assert.Equal(t, int32(1), atomic.LoadInt32(&requests))
}

func TestTokenManager_Token_MissingCredentials(t *testing.T) {
	manager := NewTokenManager(TokenManagerConfig{
		BaseURL:      "http://localhost",
		SafetyMargin: 5 * time.Minute,
	}, nil, testLogger())

	_, err := manager.Token(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrAuth)
}

func TestTokenManager_Token_RetriesTransientFailures(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&requests, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"accessToken":"recovered-token","type":"bearer","expiresIn":10800}`))
	}))
	defer server.Close()

	manager := newTestTokenManager(server.URL)

	token, err := manager.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "recovered-token", token.AccessToken)
	assert.Equal(t, int32(3), atomic.LoadInt32(&requests))
}

func TestTokenManager_Token_TransientFailureExhaustsAttempts(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	manager := newTestTokenManager(server.URL)

	_, err := manager.Token(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrTransient)
	assert.Equal(t, int32(3), atomic.LoadInt32(&requests))
}

func TestTokenManager_Status(t *testing.T) {
	manager := newTestTokenManager("http://localhost")

	status := manager.Status()
	assert.True(t, status.HasCredentials)
	assert.False(t, status.HasToken)
	assert.False(t, status.TokenValid)
	assert.Nil(t, status.TokenExpiresAt)

	expiresAt := time.Now().Add(3 * time.Hour)
	manager.token = &Token{AccessToken: "token-1", ExpiresAt: expiresAt}

	status = manager.Status()
	assert.True(t, status.HasToken)
	assert.True(t, status.TokenValid)
	require.NotNil(t, status.TokenExpiresAt)
	assert.Equal(t, expiresAt, *status.TokenExpiresAt)

	// A token inside the safety margin is reported as invalid.
	manager.token = &Token{AccessToken: "token-1", ExpiresAt: time.Now().Add(time.Minute)}
	status = manager.Status()
	assert.True(t, status.HasToken)
	assert.False(t, status.TokenValid)
}

func TestToken_ValidFor(t *testing.T) {
	now := time.Now()
	margin := 5 * time.Minute

	var nilToken *Token
	assert.False(t, nilToken.ValidFor(now, margin))
	assert.False(t, (&Token{}).ValidFor(now, margin))
	assert.False(t, (&Token{AccessToken: "t", ExpiresAt: now.Add(margin)}).ValidFor(now, margin))
	assert.True(t, (&Token{AccessToken: "t", ExpiresAt: now.Add(margin + time.Second)}).ValidFor(now, margin))
}
