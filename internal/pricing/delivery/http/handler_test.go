package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/periprice/periprice/internal/pricing/domain"
)

type memoryRepo struct {
	mu       sync.Mutex
	products map[uint]domain.Product
	sales    []domain.Sale
	saleID   uint
}

func newMemoryRepo(products ...domain.Product) *memoryRepo {
	r := &memoryRepo{products: make(map[uint]domain.Product)}
	for _, p := range products {
		r.products[p.ProductID] = p
	}
	return r
}

func (r *memoryRepo) FindAll(ctx context.Context) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Product, 0, len(r.products))
	for id := uint(1); id <= uint(len(r.products)); id++ {
		if p, ok := r.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memoryRepo) FindByProductID(ctx context.Context, productID uint) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[productID]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return &p, nil
}

func (r *memoryRepo) UpdatePrice(ctx context.Context, productID uint, price float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[productID]
	if !ok {
		return domain.ErrProductNotFound
	}
	p.Price = price
	r.products[productID] = p
	return nil
}

func (r *memoryRepo) WithTx(ctx context.Context, fn func(tx domain.TxRepository) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := make(map[uint]domain.Product, len(r.products))
	for id, p := range r.products {
		snapshot[id] = p
	}
	salesLen := len(r.sales)

	if err := fn(&memoryTx{repo: r}); err != nil {
		r.products = snapshot
		r.sales = r.sales[:salesLen]
		return err
	}
	return nil
}

func (r *memoryRepo) TotalsByDate(ctx context.Context) ([]domain.DailySales, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	totals := make(map[time.Time]int)
	for _, s := range r.sales {
		totals[s.SaleDate] += s.UnitsSold
	}
	out := make([]domain.DailySales, 0, len(totals))
	for d, units := range totals {
		out = append(out, domain.DailySales{SaleDate: d, TotalUnits: units})
	}
	return out, nil
}

func (r *memoryRepo) findAllSales(ctx context.Context) ([]domain.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Sale(nil), r.sales...), nil
}

// salesView exposes the repo through the sales interface.
type salesView struct {
	repo *memoryRepo
}

func (v salesView) FindAll(ctx context.Context) ([]domain.Sale, error) {
	return v.repo.findAllSales(ctx)
}

func (v salesView) TotalsByDate(ctx context.Context) ([]domain.DailySales, error) {
	return v.repo.TotalsByDate(ctx)
}

type memoryTx struct {
	repo *memoryRepo
}

func (t *memoryTx) GetProductForUpdate(productID uint) (*domain.Product, error) {
	p, ok := t.repo.products[productID]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return &p, nil
}

func (t *memoryTx) DecrementStock(productID uint, quantity int) error {
	p, ok := t.repo.products[productID]
	if !ok {
		return domain.ErrProductNotFound
	}
	p.Stock -= quantity
	t.repo.products[productID] = p
	return nil
}

func (t *memoryTx) AppendSale(sale *domain.Sale) error {
	t.repo.saleID++
	sale.SaleID = t.repo.saleID
	t.repo.sales = append(t.repo.sales, *sale)
	return nil
}

type stubPredictor struct {
	base float64
}

func (s stubPredictor) PredictBasePrice(stock, unitsSold, daysLeft, dayOfWeek, discountFlag int) float64 {
	return s.base
}

func newTestRouter(repo *memoryRepo, base float64) *mux.Router {
	handler := NewPricingHandler(repo, salesView{repo: repo}, stubPredictor{base: base}, nil)
	router := mux.NewRouter()
	handler.RegisterRoutes(router)
	return router
}

func doJSON(t *testing.T, router *mux.Router, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return rec, payload
}

func seedProducts() []domain.Product {
	return []domain.Product{
		{ProductID: 1, Name: "Milk", Stock: 80, UnitsSold: 120, Price: 50, ExpiryDate: time.Now().UTC().AddDate(0, 0, 7)},
		{ProductID: 2, Name: "Yogurt", Stock: 60, UnitsSold: 45, Price: 30, ExpiryDate: time.Now().UTC().AddDate(0, 0, 10)},
	}
}

func TestPredictPriceEndpoint(t *testing.T) {
	router := newTestRouter(newMemoryRepo(seedProducts()...), 100)

	rec, payload := doJSON(t, router, http.MethodPost, "/predict_price",
		`{"stock": 90, "units_sold": 5, "days_left": 1, "day_of_week": 2, "discount_flag": 1}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, 63.00, payload["predicted_price"])
}

func TestPredictPriceEndpoint_ValidationFailure(t *testing.T) {
	router := newTestRouter(newMemoryRepo(seedProducts()...), 100)

	tests := []struct {
		name string
		body string
	}{
		{"missing days_left", `{"stock": 10, "units_sold": 5, "day_of_week": 2, "discount_flag": 0}`},
		{"day_of_week out of range", `{"stock": 10, "units_sold": 5, "days_left": 3, "day_of_week": 9, "discount_flag": 0}`},
		{"negative stock", `{"stock": -1, "units_sold": 5, "days_left": 3, "day_of_week": 2, "discount_flag": 0}`},
		{"discount_flag out of range", `{"stock": 10, "units_sold": 5, "days_left": 3, "day_of_week": 2, "discount_flag": 2}`},
		{"malformed body", `{"stock": `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, payload := doJSON(t, router, http.MethodPost, "/predict_price", tt.body)
			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			assert.Contains(t, payload, "error")
		})
	}
}

func TestGetInventoryEndpoint(t *testing.T) {
	router := newTestRouter(newMemoryRepo(seedProducts()...), 100)

	rec, payload := doJSON(t, router, http.MethodGet, "/get_inventory", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	inventory, ok := payload["inventory"].([]any)
	require.True(t, ok)
	require.Len(t, inventory, 2)

	first, ok := inventory[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1), first["product_id"])
	assert.Equal(t, "Milk", first["product_name"])
	assert.Equal(t, float64(80), first["stock"])
	assert.Contains(t, first, "days_left")
	assert.Contains(t, first, "expiry_date")
}

func TestUpdatePriceEndpoint_RoundTrip(t *testing.T) {
	router := newTestRouter(newMemoryRepo(seedProducts()...), 100)

	rec, payload := doJSON(t, router, http.MethodPost, "/update_price",
		`{"product_id": 2, "new_price": 24.99}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", payload["status"])
	assert.Equal(t, float64(2), payload["updated_product_id"])

	_, inv := doJSON(t, router, http.MethodGet, "/get_inventory", "")
	inventory := inv["inventory"].([]any)
	second := inventory[1].(map[string]any)
	assert.Equal(t, 24.99, second["price"])
}

func TestUpdatePriceEndpoint_Errors(t *testing.T) {
	router := newTestRouter(newMemoryRepo(seedProducts()...), 100)

	rec, payload := doJSON(t, router, http.MethodPost, "/update_price",
		`{"product_id": 99, "new_price": 10}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Product not found", payload["error"])

	rec, _ = doJSON(t, router, http.MethodPost, "/update_price",
		`{"product_id": 1, "new_price": -5}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestPredictAndUpdateEndpoint(t *testing.T) {
	router := newTestRouter(newMemoryRepo(seedProducts()...), 100)

	rec, payload := doJSON(t, router, http.MethodPost, "/predict_and_update",
		`{"product_id": 2, "stock": 90, "units_sold": 5, "days_left": 1, "day_of_week": 2, "discount_flag": 0}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "price_updated", payload["status"])
	assert.Equal(t, 63.00, payload["predicted_price"])

	_, inv := doJSON(t, router, http.MethodGet, "/get_inventory", "")
	inventory := inv["inventory"].([]any)
	second := inventory[1].(map[string]any)
	assert.Equal(t, 63.00, second["price"])
}

func TestPredictAndUpdateEndpoint_UnknownProduct(t *testing.T) {
	router := newTestRouter(newMemoryRepo(seedProducts()...), 100)

	rec, payload := doJSON(t, router, http.MethodPost, "/predict_and_update",
		`{"product_id": 42, "stock": 10, "units_sold": 5, "days_left": 5, "day_of_week": 2, "discount_flag": 0}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Product not found", payload["error"])
}

func TestSellItemEndpoint(t *testing.T) {
	repo := newMemoryRepo(seedProducts()...)
	router := newTestRouter(repo, 100)

	rec, payload := doJSON(t, router, http.MethodPost, "/sell_item",
		`{"product_id": 1, "quantity": 3}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", payload["status"])
	assert.Equal(t, float64(1), payload["product_id"])
	assert.Equal(t, float64(3), payload["quantity_sold"])
	assert.Equal(t, float64(77), payload["remaining_stock"])

	require.Len(t, repo.sales, 1)
	assert.Equal(t, 50.0, repo.sales[0].PriceSold)
}

func TestSellItemEndpoint_ProductNotFound(t *testing.T) {
	router := newTestRouter(newMemoryRepo(seedProducts()...), 100)

	rec, payload := doJSON(t, router, http.MethodPost, "/sell_item",
		`{"product_id": 99, "quantity": 1}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Product not found", payload["error"])
}

func TestSellItemEndpoint_NotEnoughStock(t *testing.T) {
	repo := newMemoryRepo(seedProducts()...)
	router := newTestRouter(repo, 100)

	rec, payload := doJSON(t, router, http.MethodPost, "/sell_item",
		`{"product_id": 2, "quantity": 61}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Not enough stock", payload["error"])

	product, err := repo.FindByProductID(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 60, product.Stock)
}

func TestSellItemEndpoint_InvalidQuantity(t *testing.T) {
	router := newTestRouter(newMemoryRepo(seedProducts()...), 100)

	rec, _ := doJSON(t, router, http.MethodPost, "/sell_item",
		`{"product_id": 1, "quantity": 0}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestSalesEndpoints(t *testing.T) {
	repo := newMemoryRepo(seedProducts()...)
	router := newTestRouter(repo, 100)

	for i := 0; i < 2; i++ {
		rec, _ := doJSON(t, router, http.MethodPost, "/sell_item",
			`{"product_id": 1, "quantity": 2}`)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec, payload := doJSON(t, router, http.MethodGet, "/sales", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	sales, ok := payload["sales"].([]any)
	require.True(t, ok)
	require.Len(t, sales, 2)
	first := sales[0].(map[string]any)
	assert.Equal(t, float64(1), first["sale_id"])
	assert.Equal(t, float64(2), first["units_sold"])
	assert.Equal(t, 50.0, first["price_sold"])

	rec, payload = doJSON(t, router, http.MethodGet, "/sales/summary", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	summary, ok := payload["summary"].([]any)
	require.True(t, ok)
	require.Len(t, summary, 1)
	day := summary[0].(map[string]any)
	assert.Equal(t, float64(4), day["total_units"])
}

func TestRoutesRejectWrongMethod(t *testing.T) {
	router := newTestRouter(newMemoryRepo(seedProducts()...), 100)

	req := httptest.NewRequest(http.MethodGet, "/sell_item", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
