package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/periprice/periprice/internal/pricing/domain"
)

var tracer = otel.Tracer("pricing-repository")

// TracingInventoryRepository wraps GormInventoryRepository with tracing
type TracingInventoryRepository struct {
	inner *GormInventoryRepository
}

// NewTracingInventoryRepository creates a new inventory repository with tracing
func NewTracingInventoryRepository(db *gorm.DB) *TracingInventoryRepository {
	return &TracingInventoryRepository{inner: NewGormInventoryRepository(db)}
}

func (r *TracingInventoryRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	ctx, span := tracer.Start(ctx, "repository.FindAll")
	defer span.End()

	products, err := r.inner.FindAll(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("result.count", len(products)))
	return products, nil
}

func (r *TracingInventoryRepository) FindByProductID(ctx context.Context, productID uint) (*domain.Product, error) {
	ctx, span := tracer.Start(ctx, "repository.FindByProductID",
		trace.WithAttributes(attribute.Int("product.id", int(productID))),
	)
	defer span.End()

	product, err := r.inner.FindByProductID(ctx, productID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("product.stock", product.Stock),
		attribute.Float64("product.price", product.Price),
	)
	return product, nil
}

func (r *TracingInventoryRepository) UpdatePrice(ctx context.Context, productID uint, price float64) error {
	ctx, span := tracer.Start(ctx, "repository.UpdatePrice",
		trace.WithAttributes(
			attribute.Int("product.id", int(productID)),
			attribute.Float64("price.new_value", price),
		),
	)
	defer span.End()

	if err := r.inner.UpdatePrice(ctx, productID, price); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

func (r *TracingInventoryRepository) WithTx(ctx context.Context, fn func(tx domain.TxRepository) error) error {
	ctx, span := tracer.Start(ctx, "repository.SellTransaction")
	defer span.End()

	if err := r.inner.WithTx(ctx, fn); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// TracingSalesRepository wraps GormSalesRepository with tracing
type TracingSalesRepository struct {
	inner *GormSalesRepository
}

// NewTracingSalesRepository creates a new sales repository with tracing
func NewTracingSalesRepository(db *gorm.DB) *TracingSalesRepository {
	return &TracingSalesRepository{inner: NewGormSalesRepository(db)}
}

func (r *TracingSalesRepository) FindAll(ctx context.Context) ([]domain.Sale, error) {
	ctx, span := tracer.Start(ctx, "repository.ListSales")
	defer span.End()

	sales, err := r.inner.FindAll(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("result.count", len(sales)))
	return sales, nil
}

func (r *TracingSalesRepository) TotalsByDate(ctx context.Context) ([]domain.DailySales, error) {
	ctx, span := tracer.Start(ctx, "repository.SalesTotalsByDate")
	defer span.End()

	totals, err := r.inner.TotalsByDate(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("result.count", len(totals)))
	return totals, nil
}
