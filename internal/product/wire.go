package product

import (
	"go.uber.org/zap"

	"inventario/internal/product/controller"
	"inventario/internal/product/repository"
	"inventario/internal/product/service"
)

type Module struct {
	Controller *controller.ProductsController
	Service    *service.ProductService
}

func NewModule(recorder service.CatalogRecorder, logger *zap.Logger) *Module {
	repo := repository.NewMemoryRepository()
	svc := service.NewService(repo, recorder, logger.Named("products"))
	return &Module{
		Controller: controller.NewProductsController(svc, logger.Named("products")),
		Service:    svc,
	}
}
