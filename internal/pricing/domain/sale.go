package domain

import (
	"context"
	"time"
)

// Sale is one completed transaction in the append-only sales ledger.
// A row is written exactly once per successful sell and never mutated.
type Sale struct {
	SaleID    uint      `json:"sale_id" gorm:"column:sale_id;primaryKey;autoIncrement"`
	ProductID uint      `json:"product_id" gorm:"not null;index"`
	SaleDate  time.Time `json:"sale_date" gorm:"type:date;not null"`
	UnitsSold int       `json:"units_sold" gorm:"not null"`
	// PriceSold snapshots the product price at the moment of the sale's
	// stock check, not the current price.
	PriceSold float64 `json:"price_sold" gorm:"not null"`
}

// TableName specifies the table name
func (Sale) TableName() string {
	return "sales"
}

// DailySales aggregates units sold per calendar date.
type DailySales struct {
	SaleDate   time.Time `json:"sale_date"`
	TotalUnits int       `json:"total_units"`
}

// SalesRepository defines the read contract for the sales ledger.
// Writes go through TxRepository.AppendSale only, so a ledger entry can
// never exist without its matching stock decrement.
type SalesRepository interface {
	FindAll(ctx context.Context) ([]Sale, error)
	TotalsByDate(ctx context.Context) ([]DailySales, error)
}
