package query

import (
	"context"
	"errors"
	"time"

	"github.com/periprice/periprice/internal/pricing/domain"
)

type fakeInventoryRepo struct {
	products []domain.Product
	err      error
}

func (f *fakeInventoryRepo) FindAll(ctx context.Context) ([]domain.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.products, nil
}

func (f *fakeInventoryRepo) FindByProductID(ctx context.Context, productID uint) (*domain.Product, error) {
	for i := range f.products {
		if f.products[i].ProductID == productID {
			return &f.products[i], nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (f *fakeInventoryRepo) UpdatePrice(ctx context.Context, productID uint, price float64) error {
	for i := range f.products {
		if f.products[i].ProductID == productID {
			f.products[i].Price = price
			return nil
		}
	}
	return domain.ErrProductNotFound
}

func (f *fakeInventoryRepo) WithTx(ctx context.Context, fn func(tx domain.TxRepository) error) error {
	return errors.New("not supported")
}

type fakeSalesRepo struct {
	sales  []domain.Sale
	totals []domain.DailySales
	err    error
}

func (f *fakeSalesRepo) FindAll(ctx context.Context) ([]domain.Sale, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.sales, nil
}

func (f *fakeSalesRepo) TotalsByDate(ctx context.Context) ([]domain.DailySales, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.totals, nil
}

// stubPredictor always returns the same base price.
type stubPredictor struct {
	base float64
}

func (s stubPredictor) PredictBasePrice(stock, unitsSold, daysLeft, dayOfWeek, discountFlag int) float64 {
	return s.base
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
