package query

import (
	"context"
	"fmt"
	"time"

	"github.com/periprice/periprice/internal/pricing/domain"
)

// InventoryRow is one product as exposed to clients. DaysLeft is derived
// from the stored expiry date at read time.
type InventoryRow struct {
	ProductID  uint    `json:"product_id"`
	Name       string  `json:"product_name"`
	Stock      int     `json:"stock"`
	UnitsSold  int     `json:"units_sold"`
	Price      float64 `json:"price"`
	DaysLeft   int     `json:"days_left"`
	ExpiryDate string  `json:"expiry_date"`
}

// GetInventoryHandler handles inventory listing
type GetInventoryHandler struct {
	repo domain.InventoryRepository
	now  func() time.Time
}

// NewGetInventoryHandler creates a new get inventory handler
func NewGetInventoryHandler(repo domain.InventoryRepository) *GetInventoryHandler {
	return &GetInventoryHandler{repo: repo, now: time.Now}
}

// Handle returns every product in stable product_id order.
func (h *GetInventoryHandler) Handle(ctx context.Context) ([]InventoryRow, error) {
	products, err := h.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}

	now := h.now()
	rows := make([]InventoryRow, 0, len(products))
	for i := range products {
		p := &products[i]
		rows = append(rows, InventoryRow{
			ProductID:  p.ProductID,
			Name:       p.Name,
			Stock:      p.Stock,
			UnitsSold:  p.UnitsSold,
			Price:      p.Price,
			DaysLeft:   p.DaysLeft(now),
			ExpiryDate: p.ExpiryDate.Format("2006-01-02"),
		})
	}
	return rows, nil
}
