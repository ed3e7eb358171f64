//go:build wireinject
// +build wireinject

package user

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	httpDelivery "github.com/tair/consumer-favorites/internal/user/delivery/http"
	"github.com/tair/consumer-favorites/internal/user/domain"
	"github.com/tair/consumer-favorites/internal/user/repository"
	"github.com/tair/consumer-favorites/pkg/auth"
)

// ProvideUserRepository provides the user repository
func ProvideUserRepository(db *gorm.DB) domain.UserRepository {
	return repository.NewGormUserRepository(db)
}

var RepositorySet = wire.NewSet(
	ProvideUserRepository,
)

// InitializeAuthHandler initializes the auth HTTP handler with all dependencies
func InitializeAuthHandler(db *gorm.DB, credentials *auth.Service) *httpDelivery.AuthHandler {
	wire.Build(
		RepositorySet,
		httpDelivery.NewAuthHandler,
	)
	return nil
}
