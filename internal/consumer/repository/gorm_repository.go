package repository

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/tair/consumer-favorites/internal/consumer/domain"
)

// GormConsumerRepository implements ConsumerRepository using GORM
type GormConsumerRepository struct {
	db *gorm.DB
}

// NewGormConsumerRepository creates a new GORM consumer repository
func NewGormConsumerRepository(db *gorm.DB) *GormConsumerRepository {
	return &GormConsumerRepository{db: db}
}

// Create inserts a new consumer into the database
func (r *GormConsumerRepository) Create(consumer *domain.Consumer) error {
	if err := r.db.Create(consumer).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyRegistered
		}
		return fmt.Errorf("failed to create consumer: %w", err)
	}
	return nil
}

// FindByID retrieves a consumer with its favorites
func (r *GormConsumerRepository) FindByID(id uuid.UUID) (*domain.Consumer, error) {
	var consumer domain.Consumer
	err := r.db.Preload("Favorites").Where("id = ?", id).First(&consumer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find consumer: %w", err)
	}
	return &consumer, nil
}

// FindByEmail retrieves a consumer by email
func (r *GormConsumerRepository) FindByEmail(email string) (*domain.Consumer, error) {
	var consumer domain.Consumer
	err := r.db.Where("email = ?", email).First(&consumer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find consumer: %w", err)
	}
	return &consumer, nil
}

// Update persists changed consumer fields
func (r *GormConsumerRepository) Update(consumer *domain.Consumer) error {
	err := r.db.Model(&domain.Consumer{}).
		Where("id = ?", consumer.ID).
		Updates(map[string]interface{}{
			"name":  consumer.Name,
			"email": consumer.Email,
		}).Error
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyRegistered
		}
		return fmt.Errorf("failed to update consumer: %w", err)
	}
	return nil
}

// Delete removes a consumer; the declared cascade removes its favorites
func (r *GormConsumerRepository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&domain.Consumer{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete consumer: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrConsumerNotFound
	}
	return nil
}

// FindAll retrieves one page of consumers with their favorites, ordered by
// creation time so pagination is stable
func (r *GormConsumerRepository) FindAll(limit, offset int) ([]domain.Consumer, error) {
	var consumers []domain.Consumer
	query := r.db.Preload("Favorites").Order("created_at ASC")

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	if err := query.Find(&consumers).Error; err != nil {
		return nil, fmt.Errorf("failed to find consumers: %w", err)
	}
	return consumers, nil
}

// Count returns the total number of consumers
func (r *GormConsumerRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&domain.Consumer{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count consumers: %w", err)
	}
	return count, nil
}

// AutoMigrate runs database migrations for consumers and favorites
func (r *GormConsumerRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Consumer{}, &domain.Favorite{})
}

// isUniqueViolation reports whether err is a uniqueness constraint
// violation, either already translated by GORM or raw from the driver.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
