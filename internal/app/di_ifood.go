package app

import (
	"fmt"
	nethttp "net/http"

	"github.com/allisson/ifood-integration/internal/ifood"
	merchantHTTP "github.com/allisson/ifood-integration/internal/merchant/http"
)

// TokenManager returns the iFood token manager instance.
func (c *Container) TokenManager() (*ifood.TokenManager, error) {
	c.tokenManagerInit.Do(func() {
		if !c.config.HasCredentials() {
			c.initErrors["tokenManager"] = fmt.Errorf("ifood credentials are not configured")
			return
		}

		c.tokenManager = ifood.NewTokenManager(ifood.TokenManagerConfig{
			BaseURL:             c.config.IfoodBaseURL,
			ClientID:            c.config.IfoodClientID,
			ClientSecret:        c.config.IfoodClientSecret,
			SafetyMargin:        c.config.TokenSafetyMargin,
			RetryMaxAttempts:    c.config.RetryMaxAttempts,
			RetryInitialBackoff: c.config.RetryInitialBackoff,
		}, c.httpClient(), c.Logger())
	})
	if storedErr, exists := c.initErrors["tokenManager"]; exists {
		return nil, storedErr
	}
	return c.tokenManager, nil
}

// IfoodClient returns the iFood API client instance.
func (c *Container) IfoodClient() (*ifood.Client, error) {
	c.ifoodClientInit.Do(func() {
		tokenManager, err := c.TokenManager()
		if err != nil {
			c.initErrors["ifoodClient"] = fmt.Errorf("failed to get token manager for ifood client: %w", err)
			return
		}

		c.ifoodClient = ifood.NewClient(ifood.ClientConfig{
			BaseURL:             c.config.IfoodBaseURL,
			MerchantID:          c.config.IfoodMerchantID,
			RetryMaxAttempts:    c.config.RetryMaxAttempts,
			RetryInitialBackoff: c.config.RetryInitialBackoff,
		}, tokenManager, c.httpClient(), c.Logger())
	})
	if storedErr, exists := c.initErrors["ifoodClient"]; exists {
		return nil, storedErr
	}
	return c.ifoodClient, nil
}

// httpClient builds the HTTP client shared by the remote integration.
func (c *Container) httpClient() *nethttp.Client {
	return &nethttp.Client{Timeout: c.config.IfoodRequestTimeout}
}

// merchantHandler creates the merchant pass-through handler.
func (c *Container) merchantHandler() (*merchantHTTP.MerchantHandler, error) {
	client, err := c.IfoodClient()
	if err != nil {
		return nil, fmt.Errorf("failed to get ifood client for merchant handler: %w", err)
	}
	return merchantHTTP.NewMerchantHandler(client, c.Logger()), nil
}
