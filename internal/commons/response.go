package commons

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"inventario/internal/dto"
	apperrors "inventario/internal/errors"
)

func WriteJSON(w http.ResponseWriter, status int, data interface{}, logger *zap.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}

// WriteError renders err with the status its kind maps to. Messages of
// unexpected errors are logged and replaced with a generic one.
func WriteError(w http.ResponseWriter, r *http.Request, err error, logger *zap.Logger) {
	traceID := TraceID(r.Context())
	status, code := apperrors.HTTPStatus(err)

	message := err.Error()
	var details []apperrors.ValidationDetail
	if ve, ok := apperrors.IsValidationError(err); ok {
		details = ve.Details
	}

	if status == http.StatusInternalServerError {
		logger.Error("unexpected error", zap.String("traceId", traceID), zap.Error(err))
		message = "an unexpected error occurred"
	}

	WriteJSON(w, status, dto.ErrorResponse{
		TraceID:   traceID,
		Status:    status,
		Code:      code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now().UTC(),
	}, logger)
}

func WriteValidationError(w http.ResponseWriter, r *http.Request, message string, logger *zap.Logger, details ...apperrors.ValidationDetail) {
	WriteError(w, r, apperrors.NewValidationError(message, details...), logger)
}
