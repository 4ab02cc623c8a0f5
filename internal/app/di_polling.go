package app

import (
	"fmt"

	"github.com/allisson/ifood-integration/internal/polling"
	pollingHTTP "github.com/allisson/ifood-integration/internal/polling/http"
)

// PollingEngine returns the event polling engine instance.
func (c *Container) PollingEngine() (*polling.Engine, error) {
	c.pollingEngineInit.Do(func() {
		gateway, err := c.IfoodClient()
		if err != nil {
			c.initErrors["pollingEngine"] = fmt.Errorf("failed to get ifood client for polling engine: %w", err)
			return
		}

		processor, err := c.OrderUseCase()
		if err != nil {
			c.initErrors["pollingEngine"] = fmt.Errorf("failed to get order use case for polling engine: %w", err)
			return
		}

		c.pollingEngine = polling.NewEngine(
			c.config.PollingInterval,
			gateway,
			processor,
			c.Deduplicator(),
			c.Logger(),
		)
	})
	if storedErr, exists := c.initErrors["pollingEngine"]; exists {
		return nil, storedErr
	}
	return c.pollingEngine, nil
}

// pollingHandler creates the polling control HTTP handler.
func (c *Container) pollingHandler() (*pollingHTTP.PollingHandler, error) {
	engine, err := c.PollingEngine()
	if err != nil {
		return nil, fmt.Errorf("failed to get polling engine for polling handler: %w", err)
	}
	return pollingHTTP.NewPollingHandler(engine, c.Logger()), nil
}
