package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"inventario/internal/domain"
)

type CreateProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
}

// UpdateProductRequest fields are pointers so absent keys can be told apart from zero values.
type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Category    *string          `json:"category"`
}

func (r UpdateProductRequest) ToDomain() domain.ProductUpdate {
	return domain.ProductUpdate{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Category:    r.Category,
	}
}

type ProductDTO struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	IsActive    bool      `json:"isActive"`
}

func NewProductDTO(p domain.Product) ProductDTO {
	return ProductDTO{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.InexactFloat64(),
		Category:    p.Category,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		IsActive:    p.IsActive,
	}
}

func NewProductDTOs(products []domain.Product) []ProductDTO {
	dtos := make([]ProductDTO, 0, len(products))
	for _, p := range products {
		dtos = append(dtos, NewProductDTO(p))
	}
	return dtos
}

type ProductMessageResponse struct {
	Message string     `json:"message"`
	Product ProductDTO `json:"product"`
}

type StatisticsResponse struct {
	TotalProducts    int      `json:"totalProducts"`
	ActiveProducts   int      `json:"activeProducts"`
	InactiveProducts int      `json:"inactiveProducts"`
	AveragePrice     float64  `json:"averagePrice"`
	Categories       []string `json:"categories"`
}

func NewStatisticsResponse(s domain.CatalogStatistics) StatisticsResponse {
	categories := s.Categories
	if categories == nil {
		categories = []string{}
	}
	return StatisticsResponse{
		TotalProducts:    s.TotalProducts,
		ActiveProducts:   s.ActiveProducts,
		InactiveProducts: s.InactiveProducts,
		AveragePrice:     s.AveragePrice.InexactFloat64(),
		Categories:       categories,
	}
}
