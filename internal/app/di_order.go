package app

import (
	"fmt"

	orderHTTP "github.com/allisson/ifood-integration/internal/order/http"
	orderRepository "github.com/allisson/ifood-integration/internal/order/repository"
	orderUsecase "github.com/allisson/ifood-integration/internal/order/usecase"
)

// OrderRepository returns the order repository instance.
func (c *Container) OrderRepository() (orderUsecase.OrderRepository, error) {
	c.orderRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["orderRepo"] = fmt.Errorf("failed to get database for order repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.orderRepo = orderRepository.NewMySQLOrderRepository(db)
		case "postgres":
			c.orderRepo = orderRepository.NewPostgreSQLOrderRepository(db)
		default:
			c.initErrors["orderRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["orderRepo"]; exists {
		return nil, storedErr
	}
	return c.orderRepo, nil
}

// OrderUseCase returns the order use case instance, wrapped with business
// metrics when metrics are enabled.
func (c *Container) OrderUseCase() (orderUsecase.OrderUseCase, error) {
	c.orderUseCaseInit.Do(func() {
		useCase, err := c.initOrderUseCase()
		if err != nil {
			c.initErrors["orderUseCase"] = err
			return
		}
		c.orderUseCase = useCase
	})
	if storedErr, exists := c.initErrors["orderUseCase"]; exists {
		return nil, storedErr
	}
	return c.orderUseCase, nil
}

// initOrderUseCase creates the order use case with all its dependencies.
func (c *Container) initOrderUseCase() (orderUsecase.OrderUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for order use case: %w", err)
	}

	orderRepo, err := c.OrderRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get order repository for order use case: %w", err)
	}

	eventRepo, err := c.EventRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get event repository for order use case: %w", err)
	}

	gateway, err := c.IfoodClient()
	if err != nil {
		return nil, fmt.Errorf("failed to get ifood client for order use case: %w", err)
	}

	useCaseConfig := orderUsecase.Config{
		ConfirmationDeadline: c.config.ConfirmationDeadline,
	}

	var useCase orderUsecase.OrderUseCase = orderUsecase.NewOrderUseCase(
		useCaseConfig,
		txManager,
		orderRepo,
		eventRepo,
		gateway,
		c.Logger(),
	)

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for order use case: %w", err)
	}
	useCase = orderUsecase.NewOrderUseCaseWithMetrics(useCase, businessMetrics)

	return useCase, nil
}

// orderHandler creates the order HTTP handler.
func (c *Container) orderHandler() (*orderHTTP.OrderHandler, error) {
	useCase, err := c.OrderUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get order use case for order handler: %w", err)
	}
	return orderHTTP.NewOrderHandler(useCase, c.config.ConfirmationDeadline, c.Logger()), nil
}
