package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	productdomain "github.com/tair/consumer-favorites/internal/product/domain"
)

// Domain errors
var (
	ErrConsumerNotFound       = errors.New("consumer not found")
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrProductNotFound        = errors.New("product not found")
	ErrFavoriteNotFound       = errors.New("favorite not found")
	ErrAlreadyFavorited       = errors.New("product already favorited")
	ErrInvalidProductID       = errors.New("product id must be a numeric value")
)

// Consumer represents an account holder who can favorite products.
// It exclusively owns its Favorite rows; deleting a consumer cascades.
type Consumer struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string     `json:"name" gorm:"index;not null"`
	Email     string     `json:"email" gorm:"uniqueIndex;not null"`
	Favorites []Favorite `json:"favorites" gorm:"constraint:OnDelete:CASCADE;foreignKey:ConsumerID"`
	CreatedAt time.Time  `json:"created_at"`
}

// TableName specifies the table name
func (Consumer) TableName() string {
	return "consumers"
}

// BeforeCreate assigns the primary key
func (c *Consumer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Favorite is a (consumer, product) association. ProductID only references
// externally-owned catalog data, never a copy of it. The pair
// (consumer_id, product_id) is unique: the database constraint is the sole
// arbitration for concurrent duplicate attempts.
type Favorite struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ConsumerID uuid.UUID `json:"consumer_id" gorm:"type:uuid;not null;uniqueIndex:uq_consumer_product"`
	ProductID  string    `json:"product_id" gorm:"not null;uniqueIndex:uq_consumer_product"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName specifies the table name
func (Favorite) TableName() string {
	return "favorites"
}

// BeforeCreate assigns the primary key
func (f *Favorite) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// ConsumerUpdate carries a partial update; nil fields are left untouched.
type ConsumerUpdate struct {
	Name  *string
	Email *string
}

// ConsumerRepository defines the contract for consumer data access.
// Find operations load the consumer together with its favorites and
// return (nil, nil) when the consumer does not exist.
type ConsumerRepository interface {
	Create(consumer *Consumer) error
	FindByID(id uuid.UUID) (*Consumer, error)
	FindByEmail(email string) (*Consumer, error)
	Update(consumer *Consumer) error
	Delete(id uuid.UUID) error
	FindAll(limit, offset int) ([]Consumer, error)
	Count() (int64, error)
}

// FavoriteRepository defines the contract for favorite data access.
// Create returns ErrAlreadyFavorited when the uniqueness constraint rejects
// the insert.
type FavoriteRepository interface {
	Create(favorite *Favorite) error
	FindByConsumerAndProduct(consumerID uuid.UUID, productID string) (*Favorite, error)
	Delete(id uuid.UUID) error
}

// EventPublisher emits best-effort lifecycle events; failures are logged,
// never surfaced to callers.
type EventPublisher interface {
	ConsumerCreated(ctx context.Context, consumerID uuid.UUID)
	FavoriteAdded(ctx context.Context, consumerID uuid.UUID, productID string)
	FavoriteRemoved(ctx context.Context, consumerID uuid.UUID, productID string)
}

// ConsumerView is a consumer with its favorites resolved against the live
// catalog.
type ConsumerView struct {
	ID        uuid.UUID               `json:"id"`
	Name      string                  `json:"name"`
	Email     string                  `json:"email"`
	Favorites []productdomain.Product `json:"favorites"`
}

// NewConsumerView maps a consumer's favorites through the fetched product
// map. Favorites whose product id is no longer resolvable upstream are
// silently dropped: a stale reference, not an error.
func NewConsumerView(consumer *Consumer, products map[string]productdomain.Product) ConsumerView {
	favorites := []productdomain.Product{}
	for _, fav := range consumer.Favorites {
		if product, ok := products[fav.ProductID]; ok {
			favorites = append(favorites, product)
		}
	}
	return ConsumerView{
		ID:        consumer.ID,
		Name:      consumer.Name,
		Email:     consumer.Email,
		Favorites: favorites,
	}
}

// PaginatedConsumers is one page of enriched consumer views.
type PaginatedConsumers struct {
	Data       []ConsumerView `json:"data"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int            `json:"total_pages"`
}

// FavoriteReport itemizes the outcome of a batch favorite request, in the
// order the product ids were requested.
type FavoriteReport struct {
	Message       string   `json:"message"`
	Added         []string `json:"added"`
	AlreadyExists []string `json:"already_exists"`
	NotFound      []string `json:"not_found"`
}
