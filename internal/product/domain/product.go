package domain

import (
	"context"
	"errors"
)

// ErrUpstreamUnavailable signals a catalog failure other than not-found.
var ErrUpstreamUnavailable = errors.New("product catalog unavailable")

// ProductRating holds the optional review summary of a catalog product.
type ProductRating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// Product is an externally sourced catalog item. It is never persisted
// locally; responses always reflect the catalog state at request time.
type Product struct {
	ID     int            `json:"id"`
	Title  string         `json:"title"`
	Price  float64        `json:"price"`
	Image  string         `json:"image"`
	Rating *ProductRating `json:"rating,omitempty"`
}

// PaginatedProducts is one page of catalog products.
type PaginatedProducts struct {
	Data       []Product `json:"data"`
	Total      int       `json:"total"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	TotalPages int       `json:"total_pages"`
}

// Catalog is the boundary to the external product catalog. GetProduct
// returns (nil, nil) when the upstream reports not-found.
type Catalog interface {
	ListProducts(ctx context.Context) ([]Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
}
