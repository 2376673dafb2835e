package commons

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"go.yaml.in/yaml/v3"

	"inventario/internal/domain"
)

// Seed is the optional startup catalog. Products get ids in file order
// starting at 1; stock entries refer to those ids.
type Seed struct {
	Products []SeedProduct `yaml:"products"`
	Stocks   []SeedStock   `yaml:"stocks"`
}

type SeedProduct struct {
	Name        string          `yaml:"name"`
	Description string          `yaml:"description"`
	Price       decimal.Decimal `yaml:"price"`
	Category    string          `yaml:"category"`
	Inactive    bool            `yaml:"inactive"`
}

type SeedStock struct {
	ProductID       int `yaml:"productId"`
	InitialQuantity int `yaml:"initialQuantity"`
}

func LoadSeed(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}

	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parsing seed file: %w", err)
	}

	return &seed, nil
}

type ProductSeeder interface {
	Create(ctx context.Context, name, description string, price decimal.Decimal, category string) (domain.Product, error)
	Deactivate(ctx context.Context, id int) (domain.Product, error)
}

type StockSeeder interface {
	CreateStock(ctx context.Context, productID, initialQuantity int) (domain.StockView, error)
}

// Apply creates the seeded products and stocks through the services, so the
// same validation applies as for HTTP requests. It stops at the first error.
func (s *Seed) Apply(ctx context.Context, products ProductSeeder, stocks StockSeeder, logger *zap.Logger) error {
	for i, sp := range s.Products {
		p, err := products.Create(ctx, sp.Name, sp.Description, sp.Price, sp.Category)
		if err != nil {
			return fmt.Errorf("seeding product #%d (%s): %w", i+1, sp.Name, err)
		}
		if sp.Inactive {
			if _, err := products.Deactivate(ctx, p.ID); err != nil {
				return fmt.Errorf("deactivating seeded product %d: %w", p.ID, err)
			}
		}
	}

	for _, ss := range s.Stocks {
		if _, err := stocks.CreateStock(ctx, ss.ProductID, ss.InitialQuantity); err != nil {
			return fmt.Errorf("seeding stock for product %d: %w", ss.ProductID, err)
		}
	}

	logger.Info("seed applied", zap.Int("products", len(s.Products)), zap.Int("stocks", len(s.Stocks)))
	return nil
}
