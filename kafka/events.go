package kafka

import "time"

// ItemSoldEvent is emitted after a sell transaction commits.
type ItemSoldEvent struct {
	EventID        string    `json:"event_id"`
	EventType      string    `json:"event_type"`
	SaleID         uint      `json:"sale_id"`
	ProductID      uint      `json:"product_id"`
	Quantity       int       `json:"quantity"`
	PriceSold      float64   `json:"price_sold"`
	RemainingStock int       `json:"remaining_stock"`
	SaleDate       string    `json:"sale_date"`
	Timestamp      time.Time `json:"timestamp"`
}

// PriceUpdatedEvent is emitted after a price override or a model-driven
// price write.
type PriceUpdatedEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	ProductID uint      `json:"product_id"`
	NewPrice  float64   `json:"new_price"`
	// Source is "manual" for operator overrides, "model" for predicted prices.
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeItemSold     = "item.sold"
	EventTypePriceUpdated = "price.updated"
)

// Kafka topics
const (
	TopicItemSold     = "item-sold"
	TopicPriceUpdated = "price-updated"
)
