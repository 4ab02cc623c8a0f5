package app

import (
	"fmt"

	promotionHTTP "github.com/allisson/ifood-integration/internal/promotion/http"
	promotionRepository "github.com/allisson/ifood-integration/internal/promotion/repository"
	promotionUsecase "github.com/allisson/ifood-integration/internal/promotion/usecase"
)

// PromotionRepository returns the promotion repository instance.
func (c *Container) PromotionRepository() (promotionUsecase.PromotionRepository, error) {
	c.promotionRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["promotionRepo"] = fmt.Errorf("failed to get database for promotion repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.promotionRepo = promotionRepository.NewMySQLPromotionRepository(db)
		case "postgres":
			c.promotionRepo = promotionRepository.NewPostgreSQLPromotionRepository(db)
		default:
			c.initErrors["promotionRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["promotionRepo"]; exists {
		return nil, storedErr
	}
	return c.promotionRepo, nil
}

// PromotionUseCase returns the promotion use case instance.
func (c *Container) PromotionUseCase() (promotionUsecase.PromotionUseCase, error) {
	c.promotionUseCaseInit.Do(func() {
		promotionRepo, err := c.PromotionRepository()
		if err != nil {
			c.initErrors["promotionUseCase"] = fmt.Errorf(
				"failed to get promotion repository for promotion use case: %w", err)
			return
		}

		gateway, err := c.IfoodClient()
		if err != nil {
			c.initErrors["promotionUseCase"] = fmt.Errorf(
				"failed to get ifood client for promotion use case: %w", err)
			return
		}

		c.promotionUseCase = promotionUsecase.NewPromotionUseCase(promotionRepo, gateway, c.Logger())
	})
	if storedErr, exists := c.initErrors["promotionUseCase"]; exists {
		return nil, storedErr
	}
	return c.promotionUseCase, nil
}

// promotionHandler creates the promotion HTTP handler.
func (c *Container) promotionHandler() (*promotionHTTP.PromotionHandler, error) {
	useCase, err := c.PromotionUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get promotion use case for promotion handler: %w", err)
	}
	return promotionHTTP.NewPromotionHandler(useCase, c.config.IfoodMerchantID, c.Logger()), nil
}
