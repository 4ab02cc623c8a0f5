package ifood

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	apperrors "github.com/allisson/ifood-integration/internal/errors"
)

const tokenPath = "/authentication/v1.0/oauth/token"

// TokenManagerConfig holds the settings for a TokenManager.
type TokenManagerConfig struct {
	BaseURL             string
	ClientID            string
	ClientSecret        string
	SafetyMargin        time.Duration
	RetryMaxAttempts    int
	RetryInitialBackoff time.Duration
}

// TokenManager owns the single live token for a credential pair. Callers ask
// for a valid token and the manager refreshes transparently when the cached
// one is missing, near expiry or was invalidated after a 401.
type TokenManager struct {
	cfg        TokenManagerConfig
	httpClient *http.Client
	logger     *slog.Logger
	nowFn      func() time.Time

	mu    sync.Mutex
	token *Token

	group singleflight.Group
}

// NewTokenManager creates a new TokenManager.
func NewTokenManager(cfg TokenManagerConfig, httpClient *http.Client, logger *slog.Logger) *TokenManager {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if cfg.RetryMaxAttempts < 1 {
		cfg.RetryMaxAttempts = 1
	}
	return &TokenManager{
		cfg:        cfg,
		httpClient: httpClient,
		logger:     logger,
		nowFn:      time.Now,
	}
}

// Token returns a token guaranteed valid for at least the configured safety
// margin. Concurrent calls during an expired-token window share a single
// refresh request.
func (m *TokenManager) Token(ctx context.Context) (*Token, error) {
	m.mu.Lock()
	cached := m.token
	m.mu.Unlock()

	if cached.ValidFor(m.nowFn(), m.cfg.SafetyMargin) {
		return cached, nil
	}

	result, err, _ := m.group.Do("refresh", func() (interface{}, error) {
		// Another caller may have finished a refresh while this one waited.
		m.mu.Lock()
		cached := m.token
		m.mu.Unlock()
		if cached.ValidFor(m.nowFn(), m.cfg.SafetyMargin) {
			return cached, nil
		}

		token, err := m.refresh(ctx)
		if err != nil {
			return nil, err
		}

		m.mu.Lock()
		m.token = token
		m.mu.Unlock()

		m.logger.Info("token refreshed",
			slog.Time("expires_at", token.ExpiresAt),
		)
		return token, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*Token), nil
}

// Invalidate discards the cached token so the next Token call refreshes even
// if the cached expiry has not elapsed. Called by the gateway after a 401.
func (m *TokenManager) Invalidate() {
	m.mu.Lock()
	m.token = nil
	m.mu.Unlock()

	m.logger.Warn("token invalidated")
}

// Status returns a snapshot of the credential state for the dashboard.
func (m *TokenManager) Status() AuthStatus {
	m.mu.Lock()
	token := m.token
	m.mu.Unlock()

	status := AuthStatus{
		HasCredentials: m.cfg.ClientID != "" && m.cfg.ClientSecret != "",
	}
	if token != nil {
		status.HasToken = true
		status.TokenValid = token.ValidFor(m.nowFn(), m.cfg.SafetyMargin)
		expiresAt := token.ExpiresAt
		status.TokenExpiresAt = &expiresAt
	}
	return status
}

// refresh performs the client-credential grant exchange. Credential rejections
// are fatal and never retried; 5xx and network failures are retried with
// exponential backoff up to the attempt ceiling.
func (m *TokenManager) refresh(ctx context.Context) (*Token, error) {
	if m.cfg.ClientID == "" || m.cfg.ClientSecret == "" {
		return nil, apperrors.Wrap(apperrors.ErrAuth, "client credentials are not configured")
	}

	var lastErr error
	for attempt := 0; attempt < m.cfg.RetryMaxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(m.cfg.RetryInitialBackoff << (attempt - 1)):
			}
		}

		token, retryable, err := m.exchange(ctx)
		if err == nil {
			return token, nil
		}
		if !retryable {
			return nil, err
		}
		lastErr = err

		m.logger.Warn("token refresh attempt failed",
			slog.Int("attempt", attempt+1),
			slog.Any("error", err),
		)
	}

	return nil, lastErr
}

// exchange issues one grant request. The second return value reports whether
// the failure is retryable.
func (m *TokenManager) exchange(ctx context.Context) (*Token, bool, error) {
	form := url.Values{}
	form.Set("grantType", "client_credentials")
	form.Set("clientId", m.cfg.ClientID)
	form.Set("clientSecret", m.cfg.ClientSecret)

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		m.cfg.BaseURL+tokenPath,
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return nil, false, apperrors.Wrap(err, "failed to build token request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	issuedAt := m.nowFn()
	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, true, apperrors.Wrap(apperrors.ErrTransient, err.Error())
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, apperrors.Wrap(apperrors.ErrTransient, err.Error())
	}

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, false, apperrors.Wrap(apperrors.ErrAuth, "credentials rejected by remote")
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, true, apperrors.Wrap(apperrors.ErrTransient, "token endpoint returned "+resp.Status)
	default:
		return nil, false, apperrors.Wrap(apperrors.ErrAuth, "unexpected token response "+resp.Status)
	}

	var payload tokenResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, false, apperrors.Wrap(err, "failed to decode token response")
	}
	if payload.AccessToken == "" {
		return nil, false, apperrors.Wrap(apperrors.ErrAuth, "token response missing access token")
	}

	return &Token{
		AccessToken: payload.AccessToken,
		Type:        payload.Type,
		IssuedAt:    issuedAt,
		ExpiresAt:   issuedAt.Add(time.Duration(payload.ExpiresIn) * time.Second),
	}, false, nil
}
