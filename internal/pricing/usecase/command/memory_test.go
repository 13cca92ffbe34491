package command

import (
	"context"
	"errors"
	"sync"

	"github.com/periprice/periprice/internal/pricing/domain"
	"github.com/periprice/periprice/kafka"
)

// memoryRepo is an in-memory InventoryRepository. WithTx serializes on a
// mutex and restores a snapshot when the callback fails, mirroring the row
// lock and rollback semantics of the real store.
type memoryRepo struct {
	mu         sync.Mutex
	products   map[uint]domain.Product
	sales      []domain.Sale
	nextSaleID uint
	failAppend bool
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
	for _, p := range r.products {
		out = append(out, p)
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
	saleID := r.nextSaleID

	if err := fn(&memoryTx{repo: r}); err != nil {
		r.products = snapshot
		r.sales = r.sales[:salesLen]
		r.nextSaleID = saleID
		return err
	}
	return nil
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
	if t.repo.failAppend {
		return errors.New("ledger write failed")
	}
	t.repo.nextSaleID++
	sale.SaleID = t.repo.nextSaleID
	t.repo.sales = append(t.repo.sales, *sale)
	return nil
}

// eventRecorder captures published events for assertions.
type eventRecorder struct {
	mu     sync.Mutex
	sold   []kafka.ItemSoldEvent
	priced []kafka.PriceUpdatedEvent
}

func (e *eventRecorder) PublishItemSold(ctx context.Context, event kafka.ItemSoldEvent) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sold = append(e.sold, event)
	return nil
}

func (e *eventRecorder) PublishPriceUpdated(ctx context.Context, event kafka.PriceUpdatedEvent) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.priced = append(e.priced, event)
	return nil
}

// stubPredictor always returns the same base price.
type stubPredictor struct {
	base float64
}

func (s stubPredictor) PredictBasePrice(stock, unitsSold, daysLeft, dayOfWeek, discountFlag int) float64 {
	return s.base
}
