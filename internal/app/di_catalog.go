package app

import (
	"fmt"

	catalogHTTP "github.com/allisson/ifood-integration/internal/catalog/http"
	catalogRepository "github.com/allisson/ifood-integration/internal/catalog/repository"
	catalogUsecase "github.com/allisson/ifood-integration/internal/catalog/usecase"
)

// ItemRepository returns the catalog item repository instance.
func (c *Container) ItemRepository() (catalogUsecase.ItemRepository, error) {
	c.itemRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["itemRepo"] = fmt.Errorf("failed to get database for item repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.itemRepo = catalogRepository.NewMySQLItemRepository(db)
		case "postgres":
			c.itemRepo = catalogRepository.NewPostgreSQLItemRepository(db)
		default:
			c.initErrors["itemRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["itemRepo"]; exists {
		return nil, storedErr
	}
	return c.itemRepo, nil
}

// ItemUseCase returns the catalog item use case instance.
func (c *Container) ItemUseCase() (catalogUsecase.ItemUseCase, error) {
	c.itemUseCaseInit.Do(func() {
		itemRepo, err := c.ItemRepository()
		if err != nil {
			c.initErrors["itemUseCase"] = fmt.Errorf("failed to get item repository for item use case: %w", err)
			return
		}

		gateway, err := c.IfoodClient()
		if err != nil {
			c.initErrors["itemUseCase"] = fmt.Errorf("failed to get ifood client for item use case: %w", err)
			return
		}

		c.itemUseCase = catalogUsecase.NewItemUseCase(itemRepo, gateway, c.Logger())
	})
	if storedErr, exists := c.initErrors["itemUseCase"]; exists {
		return nil, storedErr
	}
	return c.itemUseCase, nil
}

// itemHandler creates the catalog item HTTP handler.
func (c *Container) itemHandler() (*catalogHTTP.ItemHandler, error) {
	useCase, err := c.ItemUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get item use case for item handler: %w", err)
	}
	return catalogHTTP.NewItemHandler(useCase, c.config.IfoodMerchantID, c.Logger()), nil
}
