package query

import (
	"context"
	"fmt"

	"github.com/tair/consumer-favorites/internal/consumer/domain"
	productdomain "github.com/tair/consumer-favorites/internal/product/domain"
)

// ListConsumersQuery represents the query for one page of enriched
// consumers. Page numbers are 1-based.
type ListConsumersQuery struct {
	Page     int
	PageSize int
}

// ListConsumersHandler paginates consumers and enriches their favorites
// against the live catalog.
type ListConsumersHandler struct {
	repo    domain.ConsumerRepository
	catalog productdomain.Catalog
}

// NewListConsumersHandler creates a new list consumers handler
func NewListConsumersHandler(repo domain.ConsumerRepository, catalog productdomain.Catalog) *ListConsumersHandler {
	return &ListConsumersHandler{repo: repo, catalog: catalog}
}

// Handle executes the list consumers query. Each distinct favorited product
// id across the page is fetched from the catalog exactly once. Any page past
// the last one is empty; the page bound is checked before the offset
// multiplication so an arbitrarily large page number cannot overflow.
func (h *ListConsumersHandler) Handle(ctx context.Context, q ListConsumersQuery) (*domain.PaginatedConsumers, error) {
	total, err := h.repo.Count()
	if err != nil {
		return nil, err
	}
	pages := totalPages(total, q.PageSize)

	consumers := []domain.Consumer{}
	if q.Page <= pages {
		consumers, err = h.repo.FindAll(q.PageSize, (q.Page-1)*q.PageSize)
		if err != nil {
			return nil, err
		}
	}

	favoriteIDs := []string{}
	seen := map[string]bool{}
	for _, consumer := range consumers {
		for _, fav := range consumer.Favorites {
			if !seen[fav.ProductID] {
				seen[fav.ProductID] = true
				favoriteIDs = append(favoriteIDs, fav.ProductID)
			}
		}
	}

	products := make(map[string]productdomain.Product, len(favoriteIDs))
	for _, id := range favoriteIDs {
		product, err := h.catalog.GetProduct(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve favorite %s: %w", id, err)
		}
		if product != nil {
			products[id] = *product
		}
	}

	views := make([]domain.ConsumerView, 0, len(consumers))
	for i := range consumers {
		views = append(views, domain.NewConsumerView(&consumers[i], products))
	}

	return &domain.PaginatedConsumers{
		Data:       views,
		Total:      total,
		Page:       q.Page,
		PageSize:   q.PageSize,
		TotalPages: pages,
	}, nil
}

// totalPages is ceil(total/pageSize), never below 1 even for an empty set.
func totalPages(total int64, pageSize int) int {
	pages := (int(total) + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}
