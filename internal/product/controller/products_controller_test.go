package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"inventario/internal/dto"
	"inventario/internal/product/repository"
	"inventario/internal/product/service"
)

func newTestRouter() http.Handler {
	svc := service.NewService(repository.NewMemoryRepository(), nil, zap.NewNop())
	return NewProductsController(svc, zap.NewNop()).Routes()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func createProduct(t *testing.T, h http.Handler, name string, price string, category string) dto.ProductDTO {
	t.Helper()
	body := `{"name":"` + name + `","description":"d","price":` + price + `,"category":"` + category + `"}`
	rec := do(t, h, http.MethodPost, "/", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[dto.ProductDTO](t, rec)
}

func TestProductsController_Create(t *testing.T) {
	h := newTestRouter()

	rec := do(t, h, http.MethodPost, "/", `{"name":"Laptop","description":"x","price":999.99,"category":"Electronics"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	p := decode[dto.ProductDTO](t, rec)
	assert.Equal(t, 1, p.ID)
	assert.Equal(t, "Laptop", p.Name)
	assert.Equal(t, 999.99, p.Price)
	assert.True(t, p.IsActive)
	assert.Equal(t, p.CreatedAt, p.UpdatedAt)
}

func TestProductsController_Create_ValidationErrors(t *testing.T) {
	h := newTestRouter()

	rec := do(t, h, http.MethodPost, "/", `{"name":"ab","price":0}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decode[dto.ErrorResponse](t, rec)
	assert.Equal(t, "VALIDATION_ERROR", resp.Code)
	assert.Equal(t, "validation failed", resp.Message)

	fields := make([]string, 0, len(resp.Details))
	for _, d := range resp.Details {
		fields = append(fields, d.Field)
	}
	assert.ElementsMatch(t, []string{"name", "price", "category"}, fields)
}

func TestProductsController_Create_InvalidJSON(t *testing.T) {
	h := newTestRouter()

	rec := do(t, h, http.MethodPost, "/", `{not json`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decode[dto.ErrorResponse](t, rec)
	assert.Equal(t, "invalid JSON body", resp.Message)
}

func TestProductsController_List_OnlyActive(t *testing.T) {
	h := newTestRouter()
	createProduct(t, h, "Laptop", "100", "Electronics")
	second := createProduct(t, h, "Mouse", "20", "Electronics")

	rec := do(t, h, http.MethodDelete, "/2/deactivate", "")
	require.Equal(t, http.StatusOK, rec.Code)

	active := decode[[]dto.ProductDTO](t, do(t, h, http.MethodGet, "/", ""))
	require.Len(t, active, 1)
	assert.Equal(t, "Laptop", active[0].Name)

	garbage := decode[[]dto.ProductDTO](t, do(t, h, http.MethodGet, "/?onlyActive=no", ""))
	assert.Len(t, garbage, 1)

	all := decode[[]dto.ProductDTO](t, do(t, h, http.MethodGet, "/?onlyActive=false", ""))
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[1].ID)
	assert.False(t, all[1].IsActive)
}

func TestProductsController_Get(t *testing.T) {
	h := newTestRouter()
	created := createProduct(t, h, "Laptop", "100", "Electronics")

	rec := do(t, h, http.MethodGet, "/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created, decode[dto.ProductDTO](t, rec))

	rec = do(t, h, http.MethodGet, "/99", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	resp := decode[dto.ErrorResponse](t, rec)
	assert.Equal(t, "product with ID 99 not found", resp.Message)
	assert.Equal(t, http.StatusNotFound, resp.Status)

	rec = do(t, h, http.MethodGet, "/abc", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp = decode[dto.ErrorResponse](t, rec)
	assert.Equal(t, "invalid id", resp.Message)
}

func TestProductsController_Search(t *testing.T) {
	h := newTestRouter()
	createProduct(t, h, "Blue Widget", "10", "Tools")
	createProduct(t, h, "Red Gadget", "10", "Tools")

	rec := do(t, h, http.MethodGet, "/search/blue%20WID", "")

	require.Equal(t, http.StatusOK, rec.Code)
	results := decode[[]dto.ProductDTO](t, rec)
	require.Len(t, results, 1)
	assert.Equal(t, "Blue Widget", results[0].Name)
}

func TestProductsController_PathSegmentsDecodedOnce(t *testing.T) {
	h := newTestRouter()
	createProduct(t, h, "Promo 100% cotton", "10", "Apparel")
	createProduct(t, h, "Item aA", "10", "a%41")
	createProduct(t, h, "Cable a/b switch", "10", "Cables")

	rec := do(t, h, http.MethodGet, "/search/100%25", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	results := decode[[]dto.ProductDTO](t, rec)
	require.Len(t, results, 1)
	assert.Equal(t, "Promo 100% cotton", results[0].Name)

	rec = do(t, h, http.MethodGet, "/search/a%2541", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]dto.ProductDTO](t, rec))

	rec = do(t, h, http.MethodGet, "/category/a%2541", "")
	require.Equal(t, http.StatusOK, rec.Code)
	results = decode[[]dto.ProductDTO](t, rec)
	require.Len(t, results, 1)
	assert.Equal(t, "Item aA", results[0].Name)

	rec = do(t, h, http.MethodGet, "/search/a%2Fb", "")
	require.Equal(t, http.StatusOK, rec.Code)
	results = decode[[]dto.ProductDTO](t, rec)
	require.Len(t, results, 1)
	assert.Equal(t, "Cable a/b switch", results[0].Name)
}

func TestProductsController_FindByCategory(t *testing.T) {
	h := newTestRouter()
	createProduct(t, h, "Laptop", "100", "Electronics")
	createProduct(t, h, "Hammer", "15", "Tools")

	results := decode[[]dto.ProductDTO](t, do(t, h, http.MethodGet, "/category/electronics", ""))

	require.Len(t, results, 1)
	assert.Equal(t, "Laptop", results[0].Name)
}

func TestProductsController_FindByPriceRange(t *testing.T) {
	h := newTestRouter()
	createProduct(t, h, "Cheap", "5", "Misc")
	createProduct(t, h, "Middle", "50", "Misc")
	createProduct(t, h, "Pricey", "500", "Misc")

	rec := do(t, h, http.MethodGet, "/price-range/10/100", "")
	require.Equal(t, http.StatusOK, rec.Code)
	results := decode[[]dto.ProductDTO](t, rec)
	require.Len(t, results, 1)
	assert.Equal(t, "Middle", results[0].Name)

	rec = do(t, h, http.MethodGet, "/price-range/100/10", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "minimum price cannot be greater than maximum price", decode[dto.ErrorResponse](t, rec).Message)

	rec = do(t, h, http.MethodGet, "/price-range/1.5/10", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid min", decode[dto.ErrorResponse](t, rec).Message)
}

func TestProductsController_Update(t *testing.T) {
	h := newTestRouter()
	created := createProduct(t, h, "Laptop", "100", "Electronics")

	rec := do(t, h, http.MethodPut, "/1", `{"price":120.5}`)

	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode[dto.ProductDTO](t, rec)
	assert.Equal(t, 120.5, updated.Price)
	assert.Equal(t, "Laptop", updated.Name)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	rec = do(t, h, http.MethodPut, "/1", `{"name":"ab"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPut, "/42", `{"name":"Valid"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductsController_DeactivateAndActivate(t *testing.T) {
	h := newTestRouter()
	createProduct(t, h, "Laptop", "100", "Electronics")

	rec := do(t, h, http.MethodDelete, "/1/deactivate", "")
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[dto.ProductMessageResponse](t, rec)
	assert.Equal(t, "Product 1 deactivated", resp.Message)
	assert.False(t, resp.Product.IsActive)

	rec = do(t, h, http.MethodPut, "/1/activate", "")
	require.Equal(t, http.StatusOK, rec.Code)
	resp = decode[dto.ProductMessageResponse](t, rec)
	assert.Equal(t, "Product 1 activated", resp.Message)
	assert.True(t, resp.Product.IsActive)

	rec = do(t, h, http.MethodDelete, "/7/deactivate", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductsController_Remove(t *testing.T) {
	h := newTestRouter()
	createProduct(t, h, "Laptop", "100", "Electronics")

	rec := do(t, h, http.MethodDelete, "/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Product 1 permanently deleted", decode[dto.MessageResponse](t, rec).Message)

	rec = do(t, h, http.MethodGet, "/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodDelete, "/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductsController_Statistics(t *testing.T) {
	h := newTestRouter()

	empty := decode[dto.StatisticsResponse](t, do(t, h, http.MethodGet, "/admin/statistics", ""))
	assert.Equal(t, 0, empty.TotalProducts)
	assert.Equal(t, float64(0), empty.AveragePrice)
	assert.Equal(t, []string{}, empty.Categories)

	createProduct(t, h, "Laptop", "100", "Electronics")
	createProduct(t, h, "Hammer", "15.55", "Tools")
	createProduct(t, h, "Mouse", "20", "Electronics")
	do(t, h, http.MethodDelete, "/3/deactivate", "")

	stats := decode[dto.StatisticsResponse](t, do(t, h, http.MethodGet, "/admin/statistics", ""))
	assert.Equal(t, 3, stats.TotalProducts)
	assert.Equal(t, 2, stats.ActiveProducts)
	assert.Equal(t, 1, stats.InactiveProducts)
	assert.Equal(t, 57.78, stats.AveragePrice)
	assert.Equal(t, []string{"Electronics", "Tools"}, stats.Categories)
}
