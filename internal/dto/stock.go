package dto

import (
	"time"

	"inventario/internal/domain"
)

type CreateStockRequest struct {
	ProductID       int  `json:"productId"`
	InitialQuantity *int `json:"initialQuantity"`
}

type StockMovementRequest struct {
	Quantity *int   `json:"quantity"`
	Reason   string `json:"reason"`
}

type StockDTO struct {
	ProductID   int       `json:"productId"`
	Quantity    int       `json:"quantity"`
	LastUpdated time.Time `json:"lastUpdated"`
	Status      string    `json:"status"`
}

func NewStockDTO(v domain.StockView) StockDTO {
	return StockDTO{
		ProductID:   v.ProductID,
		Quantity:    v.Quantity,
		LastUpdated: v.LastUpdated,
		Status:      string(v.Status),
	}
}

func NewStockDTOs(views []domain.StockView) []StockDTO {
	dtos := make([]StockDTO, 0, len(views))
	for _, v := range views {
		dtos = append(dtos, NewStockDTO(v))
	}
	return dtos
}

type StockMovementDTO struct {
	Type             string    `json:"type"`
	Quantity         int       `json:"quantity"`
	Reason           string    `json:"reason"`
	Timestamp        time.Time `json:"timestamp"`
	PreviousQuantity int       `json:"previousQuantity"`
	NewQuantity      int       `json:"newQuantity"`
}

func NewStockMovementDTOs(movements []domain.StockMovement) []StockMovementDTO {
	dtos := make([]StockMovementDTO, 0, len(movements))
	for _, m := range movements {
		dtos = append(dtos, StockMovementDTO{
			Type:             string(m.Type),
			Quantity:         m.Quantity,
			Reason:           m.Reason,
			Timestamp:        m.Timestamp,
			PreviousQuantity: m.PreviousQuantity,
			NewQuantity:      m.NewQuantity,
		})
	}
	return dtos
}
