package repository

import (
	"errors"
	"sync"

	"inventario/internal/domain"
)

var (
	ErrNotFound      = errors.New("stock not found")
	ErrAlreadyExists = errors.New("stock already exists")
)

// MemoryRepository keeps one stock record per product id, iterated in
// insertion order. Returned stocks never alias stored movement slices.
type MemoryRepository struct {
	mu     sync.RWMutex
	order  []int
	stocks map[int]*domain.Stock
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		stocks: make(map[int]*domain.Stock),
	}
}

func (r *MemoryRepository) Insert(s domain.Stock) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.stocks[s.ProductID]; ok {
		return ErrAlreadyExists
	}

	stored := s.Clone()
	r.stocks[s.ProductID] = &stored
	r.order = append(r.order, s.ProductID)
	return nil
}

func (r *MemoryRepository) FindByProductID(productID int) (domain.Stock, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.stocks[productID]
	if !ok {
		return domain.Stock{}, ErrNotFound
	}
	return s.Clone(), nil
}

func (r *MemoryRepository) FindAll() []domain.Stock {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stocks := make([]domain.Stock, 0, len(r.order))
	for _, id := range r.order {
		stocks = append(stocks, r.stocks[id].Clone())
	}
	return stocks
}

// Update runs fn on a working copy under the write lock and keeps the result
// only when fn returns nil.
func (r *MemoryRepository) Update(productID int, fn func(s *domain.Stock) error) (domain.Stock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.stocks[productID]
	if !ok {
		return domain.Stock{}, ErrNotFound
	}

	working := current.Clone()
	if err := fn(&working); err != nil {
		return domain.Stock{}, err
	}
	*current = working
	return working.Clone(), nil
}

func (r *MemoryRepository) Delete(productID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.stocks[productID]; !ok {
		return ErrNotFound
	}
	delete(r.stocks, productID)
	for i, id := range r.order {
		if id == productID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
