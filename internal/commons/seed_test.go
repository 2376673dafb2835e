package commons

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"inventario/internal/domain"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadSeed(t *testing.T) {
	path := writeFile(t, `
products:
  - name: Widget
    description: A widget
    price: 9.99
    category: tools
  - name: Old gadget
    price: "15"
    category: misc
    inactive: true
stocks:
  - productId: 1
    initialQuantity: 5
  - productId: 2
`)

	seed, err := LoadSeed(path)
	require.NoError(t, err)

	require.Len(t, seed.Products, 2)
	assert.Equal(t, "Widget", seed.Products[0].Name)
	assert.Equal(t, "9.99", seed.Products[0].Price.String())
	assert.False(t, seed.Products[0].Inactive)
	assert.Equal(t, "15", seed.Products[1].Price.String())
	assert.True(t, seed.Products[1].Inactive)

	require.Len(t, seed.Stocks, 2)
	assert.Equal(t, 1, seed.Stocks[0].ProductID)
	assert.Equal(t, 5, seed.Stocks[0].InitialQuantity)
	assert.Equal(t, 0, seed.Stocks[1].InitialQuantity)
}

func TestLoadSeed_MissingFile(t *testing.T) {
	_, err := LoadSeed(filepath.Join(t.TempDir(), "nope.yaml"))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "reading seed file")
}

func TestLoadSeed_InvalidYAML(t *testing.T) {
	path := writeFile(t, "products: [unterminated")

	_, err := LoadSeed(path)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parsing seed file")
}

type fakeProducts struct {
	created     []string
	deactivated []int
	failOn      string
}

func (f *fakeProducts) Create(_ context.Context, name, _ string, price decimal.Decimal, _ string) (domain.Product, error) {
	if name == f.failOn {
		return domain.Product{}, errors.New("rejected")
	}
	f.created = append(f.created, name)
	return domain.Product{ID: len(f.created), Name: name, Price: price}, nil
}

func (f *fakeProducts) Deactivate(_ context.Context, id int) (domain.Product, error) {
	f.deactivated = append(f.deactivated, id)
	return domain.Product{ID: id}, nil
}

type fakeStocks struct {
	created map[int]int
}

func (f *fakeStocks) CreateStock(_ context.Context, productID, initialQuantity int) (domain.StockView, error) {
	if _, ok := f.created[productID]; ok {
		return domain.StockView{}, errors.New("duplicate")
	}
	f.created[productID] = initialQuantity
	return domain.StockView{ProductID: productID, Quantity: initialQuantity}, nil
}

func TestSeed_Apply(t *testing.T) {
	seed := &Seed{
		Products: []SeedProduct{
			{Name: "Widget", Price: decimal.RequireFromString("9.99"), Category: "tools"},
			{Name: "Old gadget", Price: decimal.NewFromInt(15), Category: "misc", Inactive: true},
		},
		Stocks: []SeedStock{{ProductID: 1, InitialQuantity: 5}, {ProductID: 2}},
	}
	products := &fakeProducts{}
	stocks := &fakeStocks{created: map[int]int{}}

	err := seed.Apply(context.Background(), products, stocks, zap.NewNop())

	require.NoError(t, err)
	assert.Equal(t, []string{"Widget", "Old gadget"}, products.created)
	assert.Equal(t, []int{2}, products.deactivated)
	assert.Equal(t, map[int]int{1: 5, 2: 0}, stocks.created)
}

func TestSeed_Apply_StopsOnError(t *testing.T) {
	seed := &Seed{
		Products: []SeedProduct{{Name: "Bad"}, {Name: "Never"}},
		Stocks:   []SeedStock{{ProductID: 1}},
	}
	products := &fakeProducts{failOn: "Bad"}
	stocks := &fakeStocks{created: map[int]int{}}

	err := seed.Apply(context.Background(), products, stocks, zap.NewNop())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "seeding product #1 (Bad)")
	assert.Empty(t, products.created)
	assert.Empty(t, stocks.created)
}
