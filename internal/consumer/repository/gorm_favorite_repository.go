package repository

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tair/consumer-favorites/internal/consumer/domain"
)

// GormFavoriteRepository implements FavoriteRepository using GORM
type GormFavoriteRepository struct {
	db *gorm.DB
}

// NewGormFavoriteRepository creates a new GORM favorite repository
func NewGormFavoriteRepository(db *gorm.DB) *GormFavoriteRepository {
	return &GormFavoriteRepository{db: db}
}

// Create inserts a new favorite. A uniqueness violation means another
// request favorited the same product concurrently and is reported as
// ErrAlreadyFavorited.
func (r *GormFavoriteRepository) Create(favorite *domain.Favorite) error {
	if err := r.db.Create(favorite).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyFavorited
		}
		return fmt.Errorf("failed to create favorite: %w", err)
	}
	return nil
}

// FindByConsumerAndProduct retrieves a favorite by its owning consumer and
// product id, returning (nil, nil) when absent
func (r *GormFavoriteRepository) FindByConsumerAndProduct(consumerID uuid.UUID, productID string) (*domain.Favorite, error) {
	var favorite domain.Favorite
	err := r.db.Where("consumer_id = ? AND product_id = ?", consumerID, productID).First(&favorite).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find favorite: %w", err)
	}
	return &favorite, nil
}

// Delete removes a favorite by id
func (r *GormFavoriteRepository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&domain.Favorite{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete favorite: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrFavoriteNotFound
	}
	return nil
}
