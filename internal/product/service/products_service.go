package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"inventario/internal/domain"
	apperrors "inventario/internal/errors"
	"inventario/internal/product/repository"
)

type Repository interface {
	Insert(p domain.Product) domain.Product
	FindByID(id int) (domain.Product, error)
	FindAll() []domain.Product
	Update(id int, fn func(p *domain.Product) error) (domain.Product, error)
	Delete(id int) error
	Counts() (total, active int)
}

type CatalogRecorder interface {
	SetProductCounts(total, active int)
}

// ProductService owns the product catalog rules. The repository serializes
// access, so every operation here is atomic with respect to the others.
type ProductService struct {
	repo     Repository
	recorder CatalogRecorder
	logger   *zap.Logger
	now      func() time.Time

	// countsMu pairs each counts snapshot with its gauge write, so the last
	// write always carries the newest snapshot.
	countsMu sync.Mutex
}

func NewService(repo Repository, recorder CatalogRecorder, logger *zap.Logger) *ProductService {
	return &ProductService{
		repo:     repo,
		recorder: recorder,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *ProductService) Create(ctx context.Context, name, description string, price decimal.Decimal, category string) (domain.Product, error) {
	if strings.TrimSpace(name) == "" {
		return domain.Product{}, apperrors.NewValidationError("product name is required", apperrors.ValidationDetail{
			Field:   "name",
			Message: "name must not be empty",
		})
	}

	if !price.IsPositive() {
		return domain.Product{}, apperrors.NewValidationError("price must be greater than 0", apperrors.ValidationDetail{
			Field:   "price",
			Message: "price must be greater than 0",
		})
	}

	product := s.repo.Insert(domain.NewProduct(0, name, description, price, category, s.now()))
	s.refreshCounts()

	s.logger.Info("product created",
		zap.Int("productId", product.ID),
		zap.String("name", product.Name),
		zap.String("category", product.Category),
		zap.String("price", product.Price.String()),
	)
	return product, nil
}

func (s *ProductService) FindAll(ctx context.Context, onlyActive bool) []domain.Product {
	all := s.repo.FindAll()
	if !onlyActive {
		return all
	}

	products := make([]domain.Product, 0, len(all))
	for _, p := range all {
		if p.IsActive {
			products = append(products, p)
		}
	}
	return products
}

func (s *ProductService) FindOne(ctx context.Context, id int) (domain.Product, error) {
	product, err := s.repo.FindByID(id)
	if err != nil {
		return domain.Product{}, s.translate(id, err)
	}
	return product, nil
}

// Search matches term case-insensitively anywhere in the product name.
// Inactive products are included.
func (s *ProductService) Search(ctx context.Context, term string) ([]domain.Product, error) {
	if strings.TrimSpace(term) == "" {
		return nil, apperrors.NewValidationError("search term is required")
	}

	needle := strings.ToLower(term)
	results := []domain.Product{}
	for _, p := range s.repo.FindAll() {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			results = append(results, p)
		}
	}
	return results, nil
}

func (s *ProductService) FindByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	if strings.TrimSpace(category) == "" {
		return nil, apperrors.NewValidationError("category is required")
	}

	results := []domain.Product{}
	for _, p := range s.repo.FindAll() {
		if p.IsActive && strings.EqualFold(p.Category, category) {
			results = append(results, p)
		}
	}
	return results, nil
}

func (s *ProductService) FindByPriceRange(ctx context.Context, minPrice, maxPrice decimal.Decimal) ([]domain.Product, error) {
	if minPrice.IsNegative() || maxPrice.IsNegative() {
		return nil, apperrors.NewValidationError("prices cannot be negative")
	}

	if minPrice.GreaterThan(maxPrice) {
		return nil, apperrors.NewValidationError("minimum price cannot be greater than maximum price")
	}

	results := []domain.Product{}
	for _, p := range s.repo.FindAll() {
		if p.IsActive && p.Price.GreaterThanOrEqual(minPrice) && p.Price.LessThanOrEqual(maxPrice) {
			results = append(results, p)
		}
	}
	return results, nil
}

// Update applies only the fields present in fields. Nothing is stored when
// any field is rejected.
func (s *ProductService) Update(ctx context.Context, id int, fields domain.ProductUpdate) (domain.Product, error) {
	product, err := s.repo.Update(id, func(p *domain.Product) error {
		now := s.now()
		stamped := false

		if fields.Name != nil {
			if strings.TrimSpace(*fields.Name) == "" {
				return apperrors.NewValidationError("product name cannot be empty", apperrors.ValidationDetail{
					Field:   "name",
					Message: "name must not be empty",
				})
			}
			p.Name = *fields.Name
		}

		if fields.Description != nil {
			p.Description = *fields.Description
		}

		if fields.Price != nil {
			if err := p.UpdatePrice(*fields.Price, now); err != nil {
				return apperrors.NewValidationError(fmt.Sprintf("failed to update product: %v", err), apperrors.ValidationDetail{
					Field:   "price",
					Message: err.Error(),
				})
			}
			stamped = true
		}

		if fields.Category != nil {
			p.Category = *fields.Category
		}

		// UpdatePrice stamps UpdatedAt itself.
		if !stamped {
			p.Touch(now)
		}
		return nil
	})
	if err != nil {
		return domain.Product{}, s.translate(id, err)
	}

	s.logger.Info("product updated", zap.Int("productId", id))
	return product, nil
}

// Deactivate is idempotent: an inactive product is simply re-stamped.
func (s *ProductService) Deactivate(ctx context.Context, id int) (domain.Product, error) {
	product, err := s.repo.Update(id, func(p *domain.Product) error {
		p.Deactivate(s.now())
		return nil
	})
	if err != nil {
		return domain.Product{}, s.translate(id, err)
	}
	s.refreshCounts()

	s.logger.Info("product deactivated", zap.Int("productId", id))
	return product, nil
}

func (s *ProductService) Activate(ctx context.Context, id int) (domain.Product, error) {
	product, err := s.repo.Update(id, func(p *domain.Product) error {
		p.Activate(s.now())
		return nil
	})
	if err != nil {
		return domain.Product{}, s.translate(id, err)
	}
	s.refreshCounts()

	s.logger.Info("product activated", zap.Int("productId", id))
	return product, nil
}

func (s *ProductService) Remove(ctx context.Context, id int) error {
	if err := s.repo.Delete(id); err != nil {
		return s.translate(id, err)
	}
	s.refreshCounts()

	s.logger.Info("product removed", zap.Int("productId", id))
	return nil
}

func (s *ProductService) Statistics(ctx context.Context) domain.CatalogStatistics {
	all := s.repo.FindAll()

	stats := domain.CatalogStatistics{
		TotalProducts: len(all),
		AveragePrice:  decimal.Zero,
		Categories:    []string{},
	}

	seen := make(map[string]struct{})
	total := decimal.Zero
	for _, p := range all {
		if !p.IsActive {
			continue
		}
		stats.ActiveProducts++
		total = total.Add(p.Price)
		if _, ok := seen[p.Category]; !ok {
			seen[p.Category] = struct{}{}
			stats.Categories = append(stats.Categories, p.Category)
		}
	}
	stats.InactiveProducts = stats.TotalProducts - stats.ActiveProducts

	if stats.ActiveProducts > 0 {
		stats.AveragePrice = total.Div(decimal.NewFromInt(int64(stats.ActiveProducts))).Round(2)
	}
	return stats
}

func (s *ProductService) refreshCounts() {
	if s.recorder == nil {
		return
	}
	s.countsMu.Lock()
	defer s.countsMu.Unlock()

	total, active := s.repo.Counts()
	s.recorder.SetProductCounts(total, active)
}

// translate turns repository sentinels into domain errors; domain errors pass through.
func (s *ProductService) translate(id int, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFoundError(fmt.Sprintf("product with ID %d not found", id))
	}
	if _, ok := apperrors.IsValidationError(err); ok {
		return err
	}
	return apperrors.NewValidationError(fmt.Sprintf("failed to process product %d: %v", id, err))
}
