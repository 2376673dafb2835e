package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"inventario/internal/domain"
	apperrors "inventario/internal/errors"
	"inventario/internal/stock/repository"
)

const initialStockReason = "Initial stock"

type Repository interface {
	Insert(s domain.Stock) error
	FindByProductID(productID int) (domain.Stock, error)
	FindAll() []domain.Stock
	Update(productID int, fn func(s *domain.Stock) error) (domain.Stock, error)
	Delete(productID int) error
}

type MovementRecorder interface {
	RecordMovement(movementType string)
	RecordRejectedMovement(movementType, reason string)
}

// StockService owns the stock ledger: one record per product id plus its
// append-only movement history. Stocks reference products by id only.
type StockService struct {
	repo         Repository
	recorder     MovementRecorder
	logger       *zap.Logger
	minThreshold int
	now          func() time.Time
}

func NewService(repo Repository, recorder MovementRecorder, logger *zap.Logger, minThreshold int) *StockService {
	if minThreshold <= 0 {
		minThreshold = domain.DefaultMinThreshold
	}
	return &StockService{
		repo:         repo,
		recorder:     recorder,
		logger:       logger,
		minThreshold: minThreshold,
		now:          time.Now,
	}
}

func (s *StockService) CreateStock(ctx context.Context, productID, initialQuantity int) (domain.StockView, error) {
	if initialQuantity < 0 {
		return domain.StockView{}, apperrors.NewValidationError("initial quantity cannot be negative", apperrors.ValidationDetail{
			Field:   "initialQuantity",
			Message: "initialQuantity must be zero or greater",
		})
	}

	now := s.now()
	stock := domain.NewStock(productID, s.minThreshold, now)
	if initialQuantity > 0 {
		if _, err := stock.Apply(domain.MovementEntrada, initialQuantity, initialStockReason, now); err != nil {
			return domain.StockView{}, apperrors.NewValidationError(fmt.Sprintf("failed to create stock: %v", err))
		}
	}

	if err := s.repo.Insert(stock); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return domain.StockView{}, apperrors.NewConflictError(fmt.Sprintf("product %d already has stock registered", productID))
		}
		return domain.StockView{}, apperrors.NewValidationError(fmt.Sprintf("failed to create stock: %v", err))
	}

	if initialQuantity > 0 {
		s.recordMovement(domain.MovementEntrada)
	}
	s.logger.Info("stock created", zap.Int("productId", productID), zap.Int("quantity", initialQuantity))
	return stock.View(), nil
}

func (s *StockService) GetStock(ctx context.Context, productID int) (domain.StockView, error) {
	stock, err := s.repo.FindByProductID(productID)
	if err != nil {
		return domain.StockView{}, s.translate(productID, err)
	}
	return stock.View(), nil
}

// UpdateStock applies a single movement. quantity must be positive for every
// movement type, ajuste included, so ajuste can never set stock to zero.
func (s *StockService) UpdateStock(ctx context.Context, productID, quantity int, reason string, movementType domain.MovementType) (domain.StockView, error) {
	if reason == "" {
		reason = fmt.Sprintf("Movement of %s", movementType)
	}

	var applied domain.StockMovement
	rejection := "invalid"
	stock, err := s.repo.Update(productID, func(st *domain.Stock) error {
		if quantity <= 0 {
			return apperrors.NewValidationError("quantity must be greater than zero", apperrors.ValidationDetail{
				Field:   "quantity",
				Message: "quantity must be greater than zero",
			})
		}

		if !movementType.Valid() {
			return apperrors.NewValidationError(fmt.Sprintf("unsupported movement type %q", movementType))
		}

		movement, err := st.Apply(movementType, quantity, reason, s.now())
		if err != nil {
			var insufficient *domain.InsufficientStockError
			if errors.As(err, &insufficient) {
				rejection = "insufficient_stock"
				return apperrors.NewValidationError(insufficient.Error(), apperrors.ValidationDetail{
					Field:   "quantity",
					Message: fmt.Sprintf("only %d units available", insufficient.Available),
				})
			}
			return apperrors.NewValidationError(fmt.Sprintf("failed to update stock: %v", err))
		}
		applied = movement
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			rejection = "not_found"
		}
		s.rejectMovement(productID, quantity, movementType, rejection)
		return domain.StockView{}, s.translate(productID, err)
	}

	s.recordMovement(movementType)
	s.logger.Info("stock movement applied",
		zap.Int("productId", productID),
		zap.String("type", string(movementType)),
		zap.Int("quantity", quantity),
		zap.Int("previousQuantity", applied.PreviousQuantity),
		zap.Int("newQuantity", applied.NewQuantity),
	)
	return stock.View(), nil
}

// GetLowStockProducts returns stocks with 0 < quantity <= minThreshold.
func (s *StockService) GetLowStockProducts(ctx context.Context) []domain.StockView {
	views := []domain.StockView{}
	for _, stock := range s.repo.FindAll() {
		if stock.IsLow() {
			views = append(views, stock.View())
		}
	}
	return views
}

func (s *StockService) GetStockMovements(ctx context.Context, productID int) ([]domain.StockMovement, error) {
	stock, err := s.repo.FindByProductID(productID)
	if err != nil {
		return nil, s.translate(productID, err)
	}
	return stock.Movements, nil
}

func (s *StockService) GetAllStocks(ctx context.Context) []domain.StockView {
	stocks := s.repo.FindAll()
	views := make([]domain.StockView, 0, len(stocks))
	for _, stock := range stocks {
		views = append(views, stock.View())
	}
	return views
}

func (s *StockService) DeleteStock(ctx context.Context, productID int) error {
	if err := s.repo.Delete(productID); err != nil {
		return s.translate(productID, err)
	}
	s.logger.Info("stock deleted", zap.Int("productId", productID))
	return nil
}

func (s *StockService) recordMovement(t domain.MovementType) {
	if s.recorder != nil {
		s.recorder.RecordMovement(string(t))
	}
}

func (s *StockService) rejectMovement(productID, quantity int, t domain.MovementType, reason string) {
	if reason == "insufficient_stock" {
		s.logger.Warn("insufficient stock",
			zap.Int("productId", productID),
			zap.String("type", string(t)),
			zap.Int("requested", quantity),
		)
	}
	if s.recorder != nil {
		s.recorder.RecordRejectedMovement(string(t), reason)
	}
}

func (s *StockService) translate(productID int, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFoundError(fmt.Sprintf("no stock found for product %d", productID))
	}
	if _, ok := apperrors.IsValidationError(err); ok {
		return err
	}
	return apperrors.NewValidationError(fmt.Sprintf("failed to process stock for product %d: %v", productID, err))
}
