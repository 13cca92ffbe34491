package pricing

import (
	"gorm.io/gorm"

	"github.com/periprice/periprice/internal/pricing/domain"
	"github.com/periprice/periprice/internal/pricing/repository"
	"github.com/periprice/periprice/internal/pricing/usecase/command"
	"github.com/periprice/periprice/kafka"
)

// ProvideInventoryRepository provides the inventory repository with tracing
func ProvideInventoryRepository(db *gorm.DB) domain.InventoryRepository {
	return repository.NewTracingInventoryRepository(db)
}

// ProvideSalesRepository provides the sales ledger repository with tracing
func ProvideSalesRepository(db *gorm.DB) domain.SalesRepository {
	return repository.NewTracingSalesRepository(db)
}

// ProvideEventPublisher adapts the optional Kafka publisher. A nil publisher
// disables event publishing without a typed-nil interface value.
func ProvideEventPublisher(publisher *kafka.Publisher) command.EventPublisher {
	if publisher == nil {
		return nil
	}
	return publisher
}
