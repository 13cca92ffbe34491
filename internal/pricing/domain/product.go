package domain

import (
	"context"
	"time"
)

// Product represents a perishable item in the inventory table.
// days_left is derived from ExpiryDate at read time rather than stored,
// so it can never go stale.
type Product struct {
	ProductID  uint      `json:"product_id" gorm:"column:product_id;primaryKey"`
	Name       string    `json:"product_name" gorm:"column:product_name;not null"`
	Stock      int       `json:"stock" gorm:"not null;default:0"`
	UnitsSold  int       `json:"units_sold" gorm:"not null;default:0"`
	Price      float64   `json:"price" gorm:"not null"`
	ExpiryDate time.Time `json:"expiry_date" gorm:"type:date;not null"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "inventory"
}

// DaysLeft returns the number of whole days until the product expires,
// relative to now. Expired products report negative values.
func (p *Product) DaysLeft(now time.Time) int {
	expiry := time.Date(p.ExpiryDate.Year(), p.ExpiryDate.Month(), p.ExpiryDate.Day(), 0, 0, 0, 0, time.UTC)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(expiry.Sub(today) / (24 * time.Hour))
}

// InventoryRepository defines the contract for inventory data access.
type InventoryRepository interface {
	FindAll(ctx context.Context) ([]Product, error)
	FindByProductID(ctx context.Context, productID uint) (*Product, error)
	// UpdatePrice overwrites the product's price. Returns ErrProductNotFound
	// when no row matches.
	UpdatePrice(ctx context.Context, productID uint, price float64) error
	// WithTx runs fn inside a single database transaction. The callback's
	// row locks are held until commit or rollback.
	WithTx(ctx context.Context, fn func(tx TxRepository) error) error
}

// TxRepository exposes the operations available inside a sell transaction.
type TxRepository interface {
	// GetProductForUpdate loads the product and locks its row for the
	// remainder of the transaction. Concurrent sells on the same product
	// serialize here.
	GetProductForUpdate(productID uint) (*Product, error)
	DecrementStock(productID uint, quantity int) error
	AppendSale(sale *Sale) error
}
