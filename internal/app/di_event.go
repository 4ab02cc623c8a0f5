package app

import (
	"fmt"

	"github.com/allisson/ifood-integration/internal/event"
	eventHTTP "github.com/allisson/ifood-integration/internal/event/http"
	eventRepository "github.com/allisson/ifood-integration/internal/event/repository"
	eventUsecase "github.com/allisson/ifood-integration/internal/event/usecase"
	orderUsecase "github.com/allisson/ifood-integration/internal/order/usecase"
)

// EventRepository returns the event record repository instance.
func (c *Container) EventRepository() (orderUsecase.EventRecordRepository, error) {
	c.eventRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["eventRepo"] = fmt.Errorf("failed to get database for event repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.eventRepo = eventRepository.NewMySQLEventRepository(db)
		case "postgres":
			c.eventRepo = eventRepository.NewPostgreSQLEventRepository(db)
		default:
			c.initErrors["eventRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["eventRepo"]; exists {
		return nil, storedErr
	}
	return c.eventRepo, nil
}

// EventUseCase returns the event audit trail use case instance.
func (c *Container) EventUseCase() (eventUsecase.EventUseCase, error) {
	c.eventUseCaseInit.Do(func() {
		eventRepo, err := c.EventRepository()
		if err != nil {
			c.initErrors["eventUseCase"] = fmt.Errorf("failed to get event repository for event use case: %w", err)
			return
		}
		c.eventUseCase = eventUsecase.NewDefaultEventUseCase(eventRepo, c.Logger())
	})
	if storedErr, exists := c.initErrors["eventUseCase"]; exists {
		return nil, storedErr
	}
	return c.eventUseCase, nil
}

// Deduplicator returns the processed event id cache.
func (c *Container) Deduplicator() *event.Deduplicator {
	c.deduplicatorInit.Do(func() {
		c.deduplicator = event.NewDeduplicator(c.config.DedupRetention)
	})
	return c.deduplicator
}

// eventHandler creates the event audit trail HTTP handler.
func (c *Container) eventHandler() (*eventHTTP.EventHandler, error) {
	useCase, err := c.EventUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get event use case for event handler: %w", err)
	}
	return eventHTTP.NewEventHandler(useCase, c.Logger()), nil
}
