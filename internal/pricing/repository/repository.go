package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/periprice/periprice/internal/pricing/domain"
)

// GormInventoryRepository persists products in the inventory table.
type GormInventoryRepository struct {
	db *gorm.DB
}

func NewGormInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

func (r *GormInventoryRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.WithContext(ctx).Order("product_id").Find(&products).Error
	return products, err
}

func (r *GormInventoryRepository) FindByProductID(ctx context.Context, productID uint) (*domain.Product, error) {
	var product domain.Product
	err := r.db.WithContext(ctx).Where("product_id = ?", productID).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (r *GormInventoryRepository) UpdatePrice(ctx context.Context, productID uint, price float64) error {
	res := r.db.WithContext(ctx).Model(&domain.Product{}).
		Where("product_id = ?", productID).
		Update("price", price)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// WithTx runs fn inside one database transaction. Row locks taken by the
// callback are released on commit or rollback, never earlier.
func (r *GormInventoryRepository) WithTx(ctx context.Context, fn func(tx domain.TxRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTxRepository{tx: tx})
	})
}

type gormTxRepository struct {
	tx *gorm.DB
}

// GetProductForUpdate loads the product under SELECT ... FOR UPDATE so a
// concurrent sell on the same product blocks until this transaction ends.
func (t *gormTxRepository) GetProductForUpdate(productID uint) (*domain.Product, error) {
	var product domain.Product
	err := t.tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("product_id = ?", productID).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (t *gormTxRepository) DecrementStock(productID uint, quantity int) error {
	res := t.tx.Model(&domain.Product{}).
		Where("product_id = ?", productID).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (t *gormTxRepository) AppendSale(sale *domain.Sale) error {
	return t.tx.Create(sale).Error
}
