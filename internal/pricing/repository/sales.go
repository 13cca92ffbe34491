package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/periprice/periprice/internal/pricing/domain"
)

// GormSalesRepository reads the append-only sales ledger. Writes happen
// exclusively inside the sell transaction (TxRepository.AppendSale).
type GormSalesRepository struct {
	db *gorm.DB
}

func NewGormSalesRepository(db *gorm.DB) *GormSalesRepository {
	return &GormSalesRepository{db: db}
}

func (r *GormSalesRepository) FindAll(ctx context.Context) ([]domain.Sale, error) {
	var sales []domain.Sale
	err := r.db.WithContext(ctx).Order("sale_id").Find(&sales).Error
	return sales, err
}

func (r *GormSalesRepository) TotalsByDate(ctx context.Context) ([]domain.DailySales, error) {
	var totals []domain.DailySales
	err := r.db.WithContext(ctx).Model(&domain.Sale{}).
		Select("sale_date, SUM(units_sold) AS total_units").
		Group("sale_date").
		Order("sale_date").
		Scan(&totals).Error
	return totals, err
}
