package query

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tair/consumer-favorites/internal/consumer/domain"
	productdomain "github.com/tair/consumer-favorites/internal/product/domain"
)

// GetConsumerQuery represents the query for a single enriched consumer
type GetConsumerQuery struct {
	ID uuid.UUID
}

// GetConsumerHandler resolves a single consumer together with the live
// catalog details of its favorites.
type GetConsumerHandler struct {
	repo    domain.ConsumerRepository
	catalog productdomain.Catalog
}

// NewGetConsumerHandler creates a new get consumer handler
func NewGetConsumerHandler(repo domain.ConsumerRepository, catalog productdomain.Catalog) *GetConsumerHandler {
	return &GetConsumerHandler{repo: repo, catalog: catalog}
}

// Handle executes the get consumer query
func (h *GetConsumerHandler) Handle(ctx context.Context, q GetConsumerQuery) (*domain.ConsumerView, error) {
	consumer, err := h.repo.FindByID(q.ID)
	if err != nil {
		return nil, err
	}
	if consumer == nil {
		return nil, domain.ErrConsumerNotFound
	}
	return h.View(ctx, consumer)
}

// View resolves favorite product details for an already loaded consumer.
// Favorites whose product no longer exists upstream are dropped from the
// view.
func (h *GetConsumerHandler) View(ctx context.Context, consumer *domain.Consumer) (*domain.ConsumerView, error) {
	products := make(map[string]productdomain.Product)
	for _, fav := range consumer.Favorites {
		if _, ok := products[fav.ProductID]; ok {
			continue
		}
		product, err := h.catalog.GetProduct(ctx, fav.ProductID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve favorite %s: %w", fav.ProductID, err)
		}
		if product != nil {
			products[fav.ProductID] = *product
		}
	}

	view := domain.NewConsumerView(consumer, products)
	return &view, nil
}
