package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrNegativePrice = errors.New("price cannot be negative")

type Product struct {
	ID          int
	Name        string
	Description string
	Price       decimal.Decimal
	Category    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	IsActive    bool
}

// NewProduct builds an active product stamped with now.
func NewProduct(id int, name, description string, price decimal.Decimal, category string, now time.Time) Product {
	return Product{
		ID:          id,
		Name:        name,
		Description: description,
		Price:       price,
		Category:    category,
		CreatedAt:   now,
		UpdatedAt:   now,
		IsActive:    true,
	}
}

// UpdatePrice is the single rule for changing a price.
func (p *Product) UpdatePrice(price decimal.Decimal, now time.Time) error {
	if price.IsNegative() {
		return ErrNegativePrice
	}
	p.Price = price
	p.Touch(now)
	return nil
}

func (p *Product) Deactivate(now time.Time) {
	p.IsActive = false
	p.Touch(now)
}

func (p *Product) Activate(now time.Time) {
	p.IsActive = true
	p.Touch(now)
}

// Touch refreshes UpdatedAt. The stamp never goes backwards or repeats,
// even when the clock does not advance between two mutations.
func (p *Product) Touch(now time.Time) {
	if !now.After(p.UpdatedAt) {
		now = p.UpdatedAt.Add(time.Nanosecond)
	}
	p.UpdatedAt = now
}

// ProductUpdate carries the fields of a partial update; nil fields are left untouched.
type ProductUpdate struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Category    *string
}

type CatalogStatistics struct {
	TotalProducts    int
	ActiveProducts   int
	InactiveProducts int
	AveragePrice     decimal.Decimal
	Categories       []string
}
