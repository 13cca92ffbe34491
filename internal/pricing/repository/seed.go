package repository

import (
	"context"
	"time"

	"github.com/periprice/periprice/internal/pricing/domain"
)

// SeedIfEmpty bulk-inserts the given products when the inventory table has
// no rows yet. Reports whether seeding happened.
func (r *GormInventoryRepository) SeedIfEmpty(ctx context.Context, products []domain.Product) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Product{}).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 || len(products) == 0 {
		return false, nil
	}
	if err := r.db.WithContext(ctx).Create(&products).Error; err != nil {
		return false, err
	}
	return true, nil
}

// DefaultSeed returns a small demo catalogue so a fresh instance can serve
// traffic without an external loader.
func DefaultSeed(now time.Time) []domain.Product {
	day := 24 * time.Hour
	return []domain.Product{
		{ProductID: 1, Name: "Milk", Stock: 80, UnitsSold: 0, Price: 50, ExpiryDate: now.Add(7 * day)},
		{ProductID: 2, Name: "Yogurt", Stock: 60, UnitsSold: 0, Price: 30, ExpiryDate: now.Add(10 * day)},
	}
}
