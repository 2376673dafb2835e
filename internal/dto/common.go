package dto

import (
	"time"

	apperrors "inventario/internal/errors"
)

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	TraceID   string                       `json:"traceId"`
	Status    int                          `json:"status"`
	Code      string                       `json:"code"`
	Message   string                       `json:"message"`
	Details   []apperrors.ValidationDetail `json:"details,omitempty"`
	Timestamp time.Time                    `json:"timestamp"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
