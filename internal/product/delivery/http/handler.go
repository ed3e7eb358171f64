package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/tair/consumer-favorites/internal/middleware"
	"github.com/tair/consumer-favorites/internal/product/domain"
	"github.com/tair/consumer-favorites/internal/product/usecase/query"
	"github.com/tair/consumer-favorites/pkg/logger"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// ProductHandler handles HTTP requests for the catalog passthrough
type ProductHandler struct {
	listHandler *query.ListProductsHandler
}

// NewProductHandler creates a new product handler
func NewProductHandler(catalog domain.Catalog) *ProductHandler {
	return &ProductHandler{
		listHandler: query.NewListProductsHandler(catalog),
	}
}

// List handles GET /products?page&page_size
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			h.respondError(w, http.StatusUnprocessableEntity, "page must be an integer greater than or equal to 1")
			return
		}
		page = parsed
	}

	pageSize := defaultPageSize
	if raw := r.URL.Query().Get("page_size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxPageSize {
			h.respondError(w, http.StatusUnprocessableEntity, "page_size must be between 1 and "+strconv.Itoa(maxPageSize))
			return
		}
		pageSize = parsed
	}

	result, err := h.listHandler.Handle(r.Context(), query.ListProductsQuery{
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUpstreamUnavailable) {
			h.respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		logger.Logger.Error().Err(err).Msg("Failed to list products")
		h.respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// respondJSON sends a JSON response
func (h *ProductHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func (h *ProductHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// RegisterRoutes registers the product routes behind the auth middleware
func (h *ProductHandler) RegisterRoutes(router *mux.Router, authmw func(http.HandlerFunc) http.HandlerFunc) {
	router.HandleFunc("/products", middleware.Metrics("/products", authmw(h.List))).Methods("GET")
}
