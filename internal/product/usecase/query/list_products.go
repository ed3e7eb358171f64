package query

import (
	"context"

	"github.com/tair/consumer-favorites/internal/product/domain"
)

// ListProductsQuery represents the query for one page of catalog products
type ListProductsQuery struct {
	Page     int
	PageSize int
}

// ListProductsHandler handles the paginated catalog passthrough
type ListProductsHandler struct {
	catalog domain.Catalog
}

// NewListProductsHandler creates a new list products handler
func NewListProductsHandler(catalog domain.Catalog) *ListProductsHandler {
	return &ListProductsHandler{catalog: catalog}
}

// Handle fetches the full catalog and slices out the requested page.
// Page numbers are 1-based; any page past the last one is empty. The page
// bound is checked before the offset multiplication so an arbitrarily large
// page number cannot overflow into a negative slice index.
func (h *ListProductsHandler) Handle(ctx context.Context, q ListProductsQuery) (*domain.PaginatedProducts, error) {
	products, err := h.catalog.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	total := len(products)
	pages := totalPages(total, q.PageSize)

	data := []domain.Product{}
	if q.Page <= pages {
		start := (q.Page - 1) * q.PageSize
		end := start + q.PageSize
		if end > total {
			end = total
		}
		data = products[start:end]
	}

	return &domain.PaginatedProducts{
		Data:       data,
		Total:      total,
		Page:       q.Page,
		PageSize:   q.PageSize,
		TotalPages: pages,
	}, nil
}

// totalPages is ceil(total/pageSize), never below 1 even for an empty set.
func totalPages(total, pageSize int) int {
	pages := (total + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}
