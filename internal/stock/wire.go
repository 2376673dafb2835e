package stock

import (
	"go.uber.org/zap"

	"inventario/internal/config"
	"inventario/internal/stock/controller"
	"inventario/internal/stock/repository"
	"inventario/internal/stock/service"
)

type Module struct {
	Controller *controller.StockController
	Service    *service.StockService
}

func NewModule(cfg config.StockConfig, recorder service.MovementRecorder, logger *zap.Logger) *Module {
	repo := repository.NewMemoryRepository()
	svc := service.NewService(repo, recorder, logger.Named("stock"), cfg.MinThreshold)
	return &Module{
		Controller: controller.NewStockController(svc, logger.Named("stock")),
		Service:    svc,
	}
}
