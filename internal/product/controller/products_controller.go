package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"inventario/internal/commons"
	"inventario/internal/domain"
	"inventario/internal/dto"
	apperrors "inventario/internal/errors"
)

const (
	minNameLength        = 3
	maxNameLength        = 100
	maxDescriptionLength = 500
)

type ProductService interface {
	Create(ctx context.Context, name, description string, price decimal.Decimal, category string) (domain.Product, error)
	FindAll(ctx context.Context, onlyActive bool) []domain.Product
	FindOne(ctx context.Context, id int) (domain.Product, error)
	Search(ctx context.Context, term string) ([]domain.Product, error)
	FindByCategory(ctx context.Context, category string) ([]domain.Product, error)
	FindByPriceRange(ctx context.Context, minPrice, maxPrice decimal.Decimal) ([]domain.Product, error)
	Update(ctx context.Context, id int, fields domain.ProductUpdate) (domain.Product, error)
	Deactivate(ctx context.Context, id int) (domain.Product, error)
	Activate(ctx context.Context, id int) (domain.Product, error)
	Remove(ctx context.Context, id int) error
	Statistics(ctx context.Context) domain.CatalogStatistics
}

type ProductsController struct {
	service ProductService
	logger  *zap.Logger
}

func NewProductsController(service ProductService, logger *zap.Logger) *ProductsController {
	return &ProductsController{
		service: service,
		logger:  logger,
	}
}

// Routes is mounted under /products.
func (c *ProductsController) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", c.Create)
	r.Get("/", c.List)
	r.Get("/search/{term}", c.Search)
	r.Get("/category/{name}", c.FindByCategory)
	r.Get("/price-range/{min}/{max}", c.FindByPriceRange)
	r.Get("/admin/statistics", c.Statistics)
	r.Get("/{id}", c.Get)
	r.Put("/{id}", c.Update)
	r.Put("/{id}/activate", c.Activate)
	r.Delete("/{id}/deactivate", c.Deactivate)
	r.Delete("/{id}", c.Remove)
	return r
}

func (c *ProductsController) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeInvalidBody(w, r, err)
		return
	}

	if err := validateCreateProductRequest(req); err != nil {
		commons.WriteError(w, r, err, c.logger)
		return
	}

	product, err := c.service.Create(r.Context(), req.Name, req.Description, req.Price, req.Category)
	if err != nil {
		commons.WriteError(w, r, err, c.logger)
		return
	}

	commons.WriteJSON(w, http.StatusCreated, dto.NewProductDTO(product), c.logger)
}

// List filters to active products unless onlyActive is exactly "false".
func (c *ProductsController) List(w http.ResponseWriter, r *http.Request) {
	onlyActive := r.URL.Query().Get("onlyActive") != "false"

	products := c.service.FindAll(r.Context(), onlyActive)
	commons.WriteJSON(w, http.StatusOK, dto.NewProductDTOs(products), c.logger)
}

func (c *ProductsController) Search(w http.ResponseWriter, r *http.Request) {
	term, ok := c.pathText(w, r, "term")
	if !ok {
		return
	}

	products, err := c.service.Search(r.Context(), term)
	if err != nil {
		commons.WriteError(w, r, err, c.logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, dto.NewProductDTOs(products), c.logger)
}

func (c *ProductsController) FindByCategory(w http.ResponseWriter, r *http.Request) {
	category, ok := c.pathText(w, r, "name")
	if !ok {
		return
	}

	products, err := c.service.FindByCategory(r.Context(), category)
	if err != nil {
		commons.WriteError(w, r, err, c.logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, dto.NewProductDTOs(products), c.logger)
}

func (c *ProductsController) FindByPriceRange(w http.ResponseWriter, r *http.Request) {
	minPrice, ok := c.pathInt(w, r, "min")
	if !ok {
		return
	}
	maxPrice, ok := c.pathInt(w, r, "max")
	if !ok {
		return
	}

	products, err := c.service.FindByPriceRange(r.Context(), decimal.NewFromInt(int64(minPrice)), decimal.NewFromInt(int64(maxPrice)))
	if err != nil {
		commons.WriteError(w, r, err, c.logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, dto.NewProductDTOs(products), c.logger)
}

func (c *ProductsController) Statistics(w http.ResponseWriter, r *http.Request) {
	stats := c.service.Statistics(r.Context())
	commons.WriteJSON(w, http.StatusOK, dto.NewStatisticsResponse(stats), c.logger)
}

func (c *ProductsController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := c.pathInt(w, r, "id")
	if !ok {
		return
	}

	product, err := c.service.FindOne(r.Context(), id)
	if err != nil {
		commons.WriteError(w, r, err, c.logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, dto.NewProductDTO(product), c.logger)
}

func (c *ProductsController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := c.pathInt(w, r, "id")
	if !ok {
		return
	}

	var req dto.UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeInvalidBody(w, r, err)
		return
	}

	if err := validateUpdateProductRequest(req); err != nil {
		commons.WriteError(w, r, err, c.logger)
		return
	}

	product, err := c.service.Update(r.Context(), id, req.ToDomain())
	if err != nil {
		commons.WriteError(w, r, err, c.logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, dto.NewProductDTO(product), c.logger)
}

func (c *ProductsController) Activate(w http.ResponseWriter, r *http.Request) {
	id, ok := c.pathInt(w, r, "id")
	if !ok {
		return
	}

	product, err := c.service.Activate(r.Context(), id)
	if err != nil {
		commons.WriteError(w, r, err, c.logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, dto.ProductMessageResponse{
		Message: fmt.Sprintf("Product %d activated", id),
		Product: dto.NewProductDTO(product),
	}, c.logger)
}

func (c *ProductsController) Deactivate(w http.ResponseWriter, r *http.Request) {
	id, ok := c.pathInt(w, r, "id")
	if !ok {
		return
	}

	product, err := c.service.Deactivate(r.Context(), id)
	if err != nil {
		commons.WriteError(w, r, err, c.logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, dto.ProductMessageResponse{
		Message: fmt.Sprintf("Product %d deactivated", id),
		Product: dto.NewProductDTO(product),
	}, c.logger)
}

func (c *ProductsController) Remove(w http.ResponseWriter, r *http.Request) {
	id, ok := c.pathInt(w, r, "id")
	if !ok {
		return
	}

	if err := c.service.Remove(r.Context(), id); err != nil {
		commons.WriteError(w, r, err, c.logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, dto.MessageResponse{
		Message: fmt.Sprintf("Product %d permanently deleted", id),
	}, c.logger)
}

func validateCreateProductRequest(req dto.CreateProductRequest) error {
	var details []apperrors.ValidationDetail

	nameLength := utf8.RuneCountInString(req.Name)
	if nameLength < minNameLength || nameLength > maxNameLength {
		details = append(details, apperrors.ValidationDetail{
			Field:   "name",
			Message: fmt.Sprintf("name must be between %d and %d characters", minNameLength, maxNameLength),
		})
	}

	if utf8.RuneCountInString(req.Description) > maxDescriptionLength {
		details = append(details, apperrors.ValidationDetail{
			Field:   "description",
			Message: fmt.Sprintf("description must be at most %d characters", maxDescriptionLength),
		})
	}

	if !req.Price.IsPositive() {
		details = append(details, apperrors.ValidationDetail{
			Field:   "price",
			Message: "price must be a positive number",
		})
	}

	if req.Category == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "category",
			Message: "category is required",
		})
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}
	return nil
}

func validateUpdateProductRequest(req dto.UpdateProductRequest) error {
	var details []apperrors.ValidationDetail

	if req.Name != nil && utf8.RuneCountInString(*req.Name) < minNameLength {
		details = append(details, apperrors.ValidationDetail{
			Field:   "name",
			Message: fmt.Sprintf("name must be at least %d characters", minNameLength),
		})
	}

	if req.Price != nil && !req.Price.IsPositive() {
		details = append(details, apperrors.ValidationDetail{
			Field:   "price",
			Message: "price must be a positive number",
		})
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}
	return nil
}

func (c *ProductsController) pathInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := chi.URLParam(r, name)
	value, err := strconv.Atoi(raw)
	if err != nil {
		c.logger.Warn("invalid path parameter", zap.String("param", name), zap.String("value", raw))
		commons.WriteValidationError(w, r, "invalid "+name, c.logger, apperrors.ValidationDetail{
			Field:   name,
			Message: name + " must be an integer",
		})
		return 0, false
	}
	return value, true
}

// pathText returns the decoded path segment. chi matches on RawPath when the
// request has one, so only then is the segment still escaped.
func (c *ProductsController) pathText(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	value := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		return value, true
	}

	value, err := url.PathUnescape(value)
	if err != nil {
		commons.WriteValidationError(w, r, "invalid "+name, c.logger, apperrors.ValidationDetail{
			Field:   name,
			Message: name + " is not a valid path segment",
		})
		return "", false
	}
	return value, true
}

func (c *ProductsController) writeInvalidBody(w http.ResponseWriter, r *http.Request, err error) {
	c.logger.Warn("invalid JSON body", zap.Error(err))
	commons.WriteValidationError(w, r, "invalid JSON body", c.logger, apperrors.ValidationDetail{
		Field:   "body",
		Message: "request body must be valid JSON",
	})
}
