package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"inventario/internal/commons"
	"inventario/internal/domain"
	"inventario/internal/dto"
	apperrors "inventario/internal/errors"
)

type StockService interface {
	CreateStock(ctx context.Context, productID, initialQuantity int) (domain.StockView, error)
	GetStock(ctx context.Context, productID int) (domain.StockView, error)
	UpdateStock(ctx context.Context, productID, quantity int, reason string, movementType domain.MovementType) (domain.StockView, error)
	GetLowStockProducts(ctx context.Context) []domain.StockView
	GetStockMovements(ctx context.Context, productID int) ([]domain.StockMovement, error)
	GetAllStocks(ctx context.Context) []domain.StockView
	DeleteStock(ctx context.Context, productID int) error
}

type StockController struct {
	service StockService
	logger  *zap.Logger
}

func NewStockController(service StockService, logger *zap.Logger) *StockController {
	return &StockController{
		service: service,
		logger:  logger,
	}
}

// Routes is mounted under /stock.
func (c *StockController) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", c.Create)
	r.Get("/", c.List)
	r.Get("/{productId}", c.Get)
	r.Get("/{productId}/movements", c.Movements)
	r.Post("/{productId}/entrada", c.movement(domain.MovementEntrada))
	r.Post("/{productId}/salida", c.movement(domain.MovementSalida))
	r.Post("/{productId}/devolucion", c.movement(domain.MovementDevolucion))
	r.Put("/{productId}", c.movement(domain.MovementAjuste))
	r.Delete("/{productId}", c.Delete)
	return r
}

func (c *StockController) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeInvalidBody(w, r, err)
		return
	}

	if err := validateCreateStockRequest(req); err != nil {
		commons.WriteError(w, r, err, c.logger)
		return
	}

	initial := 0
	if req.InitialQuantity != nil {
		initial = *req.InitialQuantity
	}

	stock, err := c.service.CreateStock(r.Context(), req.ProductID, initial)
	if err != nil {
		commons.WriteError(w, r, err, c.logger)
		return
	}

	commons.WriteJSON(w, http.StatusCreated, dto.NewStockDTO(stock), c.logger)
}

// List returns every stock, or only the low ones when type=low.
func (c *StockController) List(w http.ResponseWriter, r *http.Request) {
	var stocks []domain.StockView
	if r.URL.Query().Get("type") == "low" {
		stocks = c.service.GetLowStockProducts(r.Context())
	} else {
		stocks = c.service.GetAllStocks(r.Context())
	}
	commons.WriteJSON(w, http.StatusOK, dto.NewStockDTOs(stocks), c.logger)
}

func (c *StockController) Get(w http.ResponseWriter, r *http.Request) {
	productID, ok := c.productID(w, r)
	if !ok {
		return
	}

	stock, err := c.service.GetStock(r.Context(), productID)
	if err != nil {
		commons.WriteError(w, r, err, c.logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, dto.NewStockDTO(stock), c.logger)
}

func (c *StockController) Movements(w http.ResponseWriter, r *http.Request) {
	productID, ok := c.productID(w, r)
	if !ok {
		return
	}

	movements, err := c.service.GetStockMovements(r.Context(), productID)
	if err != nil {
		commons.WriteError(w, r, err, c.logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, dto.NewStockMovementDTOs(movements), c.logger)
}

func (c *StockController) movement(t domain.MovementType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, ok := c.productID(w, r)
		if !ok {
			return
		}

		var req dto.StockMovementRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			c.writeInvalidBody(w, r, err)
			return
		}

		if req.Quantity == nil || *req.Quantity <= 0 {
			commons.WriteValidationError(w, r, "validation failed", c.logger, apperrors.ValidationDetail{
				Field:   "quantity",
				Message: "quantity must be a positive integer",
			})
			return
		}

		stock, err := c.service.UpdateStock(r.Context(), productID, *req.Quantity, req.Reason, t)
		if err != nil {
			commons.WriteError(w, r, err, c.logger)
			return
		}

		commons.WriteJSON(w, http.StatusOK, dto.NewStockDTO(stock), c.logger)
	}
}

func (c *StockController) Delete(w http.ResponseWriter, r *http.Request) {
	productID, ok := c.productID(w, r)
	if !ok {
		return
	}

	if err := c.service.DeleteStock(r.Context(), productID); err != nil {
		commons.WriteError(w, r, err, c.logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, dto.MessageResponse{
		Message: fmt.Sprintf("Stock for product %d deleted", productID),
	}, c.logger)
}

func validateCreateStockRequest(req dto.CreateStockRequest) error {
	var details []apperrors.ValidationDetail

	if req.ProductID <= 0 {
		msg := "productId must be a positive integer"
		if req.ProductID == 0 {
			msg = "productId is required"
		}
		details = append(details, apperrors.ValidationDetail{
			Field:   "productId",
			Message: msg,
		})
	}

	if req.InitialQuantity != nil && *req.InitialQuantity < 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "initialQuantity",
			Message: "initialQuantity must be zero or greater",
		})
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}
	return nil
}

func (c *StockController) productID(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "productId")
	id, err := strconv.Atoi(raw)
	if err != nil {
		c.logger.Warn("invalid productId in path", zap.String("value", raw))
		commons.WriteValidationError(w, r, "invalid productId", c.logger, apperrors.ValidationDetail{
			Field:   "productId",
			Message: "productId must be an integer",
		})
		return 0, false
	}
	return id, true
}

func (c *StockController) writeInvalidBody(w http.ResponseWriter, r *http.Request, err error) {
	c.logger.Warn("invalid JSON body", zap.Error(err))
	commons.WriteValidationError(w, r, "invalid JSON body", c.logger, apperrors.ValidationDetail{
		Field:   "body",
		Message: "request body must be valid JSON",
	})
}
