package repository

import (
	"errors"
	"sync"

	"inventario/internal/domain"
)

var ErrNotFound = errors.New("product not found")

// MemoryRepository keeps products in memory, keyed by id, iterated in insertion order.
// All methods are safe for concurrent use; Update runs its callback under the write lock.
type MemoryRepository struct {
	mu       sync.RWMutex
	nextID   int
	order    []int
	products map[int]*domain.Product
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		nextID:   1,
		products: make(map[int]*domain.Product),
	}
}

// Insert assigns the next sequential id and stores the product.
func (r *MemoryRepository) Insert(p domain.Product) domain.Product {
	r.mu.Lock()
	defer r.mu.Unlock()

	p.ID = r.nextID
	r.nextID++

	stored := p
	r.products[p.ID] = &stored
	r.order = append(r.order, p.ID)
	return p
}

func (r *MemoryRepository) FindByID(id int) (domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return domain.Product{}, ErrNotFound
	}
	return *p, nil
}

func (r *MemoryRepository) FindAll() []domain.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]domain.Product, 0, len(r.order))
	for _, id := range r.order {
		products = append(products, *r.products[id])
	}
	return products
}

// Update applies fn to a working copy and stores it only if fn succeeds.
func (r *MemoryRepository) Update(id int, fn func(p *domain.Product) error) (domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.products[id]
	if !ok {
		return domain.Product{}, ErrNotFound
	}

	working := *current
	if err := fn(&working); err != nil {
		return domain.Product{}, err
	}
	*current = working
	return working, nil
}

func (r *MemoryRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return ErrNotFound
	}
	delete(r.products, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *MemoryRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.products)
}

// Counts reports total and active products from one consistent snapshot.
func (r *MemoryRepository) Counts() (total, active int) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.IsActive {
			active++
		}
	}
	return len(r.products), active
}
