package domain

import (
	"fmt"
	"time"
)

const DefaultMinThreshold = 10

type MovementType string

const (
	MovementEntrada    MovementType = "entrada"
	MovementSalida     MovementType = "salida"
	MovementAjuste     MovementType = "ajuste"
	MovementDevolucion MovementType = "devolución"
)

func (t MovementType) Valid() bool {
	switch t {
	case MovementEntrada, MovementSalida, MovementAjuste, MovementDevolucion:
		return true
	}
	return false
}

type StockStatus string

const (
	StatusAvailable  StockStatus = "available"
	StatusLow        StockStatus = "low"
	StatusOutOfStock StockStatus = "out_of_stock"
)

// StockMovement is an immutable entry in a stock's history.
type StockMovement struct {
	Type             MovementType
	Quantity         int
	Reason           string
	Timestamp        time.Time
	PreviousQuantity int
	NewQuantity      int
}

type Stock struct {
	ProductID    int
	Quantity     int
	MinThreshold int
	LastUpdated  time.Time
	Movements    []StockMovement
}

func NewStock(productID, minThreshold int, now time.Time) Stock {
	return Stock{
		ProductID:    productID,
		MinThreshold: minThreshold,
		LastUpdated:  now,
		Movements:    []StockMovement{},
	}
}

func (s Stock) IsAvailable() bool {
	return s.Quantity > 0
}

// IsLow reports 0 < quantity <= minThreshold.
func (s Stock) IsLow() bool {
	return s.Quantity > 0 && s.Quantity <= s.MinThreshold
}

// Status is derived on every call and never stored.
func (s Stock) Status() StockStatus {
	switch {
	case s.Quantity == 0:
		return StatusOutOfStock
	case s.IsLow():
		return StatusLow
	default:
		return StatusAvailable
	}
}

// InsufficientStockError is returned when a salida asks for more than is on hand.
type InsufficientStockError struct {
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: available %d, requested %d", e.Available, e.Requested)
}

// NextQuantity computes the quantity a movement would leave behind.
// The stock itself is not modified.
func (s Stock) NextQuantity(t MovementType, quantity int) (int, error) {
	switch t {
	case MovementEntrada, MovementDevolucion:
		return s.Quantity + quantity, nil
	case MovementSalida:
		if s.Quantity < quantity {
			return 0, &InsufficientStockError{Available: s.Quantity, Requested: quantity}
		}
		return s.Quantity - quantity, nil
	case MovementAjuste:
		return quantity, nil
	default:
		return 0, fmt.Errorf("unsupported movement type %q", t)
	}
}

// Apply performs the movement and appends it to the history.
// On error the stock is left unchanged.
func (s *Stock) Apply(t MovementType, quantity int, reason string, now time.Time) (StockMovement, error) {
	next, err := s.NextQuantity(t, quantity)
	if err != nil {
		return StockMovement{}, err
	}

	movement := StockMovement{
		Type:             t,
		Quantity:         quantity,
		Reason:           reason,
		Timestamp:        now,
		PreviousQuantity: s.Quantity,
		NewQuantity:      next,
	}
	s.Quantity = next
	s.LastUpdated = now
	s.Movements = append(s.Movements, movement)
	return movement, nil
}

// Clone returns a copy whose movement history does not alias the receiver's.
func (s Stock) Clone() Stock {
	movements := make([]StockMovement, len(s.Movements))
	copy(movements, s.Movements)
	s.Movements = movements
	return s
}

// StockView is the read model returned to callers; Status is computed at build time.
type StockView struct {
	ProductID   int
	Quantity    int
	LastUpdated time.Time
	Status      StockStatus
}

func (s Stock) View() StockView {
	return StockView{
		ProductID:   s.ProductID,
		Quantity:    s.Quantity,
		LastUpdated: s.LastUpdated,
		Status:      s.Status(),
	}
}
