//go:build wireinject
// +build wireinject

package consumer

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	httpDelivery "github.com/tair/consumer-favorites/internal/consumer/delivery/http"
	"github.com/tair/consumer-favorites/internal/consumer/domain"
	"github.com/tair/consumer-favorites/internal/consumer/repository"
	productdomain "github.com/tair/consumer-favorites/internal/product/domain"
)

// ProvideConsumerRepository provides the consumer repository
func ProvideConsumerRepository(db *gorm.DB) domain.ConsumerRepository {
	return repository.NewGormConsumerRepository(db)
}

// ProvideFavoriteRepository provides the favorite repository
func ProvideFavoriteRepository(db *gorm.DB) domain.FavoriteRepository {
	return repository.NewGormFavoriteRepository(db)
}

var RepositorySet = wire.NewSet(
	ProvideConsumerRepository,
	ProvideFavoriteRepository,
)

// InitializeConsumerHandler initializes the consumer HTTP handler with all
// dependencies
func InitializeConsumerHandler(db *gorm.DB, catalog productdomain.Catalog, events domain.EventPublisher) *httpDelivery.ConsumerHandler {
	wire.Build(
		RepositorySet,
		httpDelivery.NewConsumerHandler,
	)
	return nil
}
