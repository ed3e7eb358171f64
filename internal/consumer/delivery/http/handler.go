package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/tair/consumer-favorites/internal/consumer/domain"
	"github.com/tair/consumer-favorites/internal/consumer/usecase/command"
	"github.com/tair/consumer-favorites/internal/consumer/usecase/query"
	"github.com/tair/consumer-favorites/internal/middleware"
	productdomain "github.com/tair/consumer-favorites/internal/product/domain"
	"github.com/tair/consumer-favorites/pkg/logger"
)

const (
	defaultPageSize = 100
	maxPageSize     = 1000
)

// ConsumerHandler handles HTTP requests for consumers and their favorites
type ConsumerHandler struct {
	// Command handlers
	createHandler         *command.CreateConsumerHandler
	updateHandler         *command.UpdateConsumerHandler
	deleteHandler         *command.DeleteConsumerHandler
	addFavoritesHandler   *command.AddFavoritesHandler
	removeFavoriteHandler *command.RemoveFavoriteHandler

	// Query handlers
	getHandler  *query.GetConsumerHandler
	listHandler *query.ListConsumersHandler
}

// NewConsumerHandler creates a new consumer handler. events may be nil when
// event publishing is disabled.
func NewConsumerHandler(
	consumers domain.ConsumerRepository,
	favorites domain.FavoriteRepository,
	catalog productdomain.Catalog,
	events domain.EventPublisher,
) *ConsumerHandler {
	return &ConsumerHandler{
		createHandler:         command.NewCreateConsumerHandler(consumers, events),
		updateHandler:         command.NewUpdateConsumerHandler(consumers),
		deleteHandler:         command.NewDeleteConsumerHandler(consumers),
		addFavoritesHandler:   command.NewAddFavoritesHandler(consumers, favorites, catalog, events),
		removeFavoriteHandler: command.NewRemoveFavoriteHandler(consumers, favorites, catalog, events),
		getHandler:            query.NewGetConsumerHandler(consumers, catalog),
		listHandler:           query.NewListConsumersHandler(consumers, catalog),
	}
}

// Create handles POST /consumers/
func (h *ConsumerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}

	cmd := command.CreateConsumerCommand{Name: req.Name, Email: req.Email}
	if err := cmd.Validate(); err != nil {
		h.respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	consumer, err := h.createHandler.Handle(r.Context(), cmd)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}

	view := domain.NewConsumerView(consumer, nil)
	h.respondJSON(w, http.StatusCreated, view)
}

// List handles GET /consumers/?page&page_size
func (h *ConsumerHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize, err := parsePageParams(r, defaultPageSize, maxPageSize)
	if err != nil {
		h.respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	result, err := h.listHandler.Handle(r.Context(), query.ListConsumersQuery{
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		h.respondDomainError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// Get handles GET /consumers/{id}
func (h *ConsumerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.consumerID(w, r)
	if !ok {
		return
	}

	view, err := h.getHandler.Handle(r.Context(), query.GetConsumerQuery{ID: id})
	if err != nil {
		h.respondDomainError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, view)
}

// Update handles PUT /consumers/{id}
func (h *ConsumerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.consumerID(w, r)
	if !ok {
		return
	}

	var req struct {
		Name  *string `json:"name"`
		Email *string `json:"email"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}

	consumer, err := h.updateHandler.Handle(command.UpdateConsumerCommand{
		ID:     id,
		Update: domain.ConsumerUpdate{Name: req.Name, Email: req.Email},
	})
	if err != nil {
		h.respondDomainError(w, err)
		return
	}

	view, err := h.getHandler.View(r.Context(), consumer)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, view)
}

// Delete handles DELETE /consumers/{id}
func (h *ConsumerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.consumerID(w, r)
	if !ok {
		return
	}

	if err := h.deleteHandler.Handle(command.DeleteConsumerCommand{ID: id}); err != nil {
		h.respondDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddFavorites handles POST /consumers/{id}/favorites.
// The canonical request shape is {"product_ids": [...]}; the singular
// {"product_id": "..."} is a deprecated alias routed through the shared
// single-item path and answered with the same itemized body.
func (h *ConsumerHandler) AddFavorites(w http.ResponseWriter, r *http.Request) {
	id, ok := h.consumerID(w, r)
	if !ok {
		return
	}

	var req struct {
		ProductIDs []string `json:"product_ids"`
		ProductID  string   `json:"product_id"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}

	// An explicit empty list is a valid no-op answered with empty buckets;
	// only an absent field falls through to the alias or the 422.
	if req.ProductIDs == nil && req.ProductID != "" {
		h.addSingleFavorite(w, r, id, req.ProductID)
		return
	}
	if req.ProductIDs == nil {
		h.respondError(w, http.StatusUnprocessableEntity, "product_ids is required")
		return
	}

	report, err := h.addFavoritesHandler.Handle(r.Context(), command.AddFavoritesCommand{
		ConsumerID: id,
		ProductIDs: req.ProductIDs,
	})
	if err != nil {
		h.respondDomainError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, report)
}

// addSingleFavorite serves the deprecated singular payload. The
// discriminated single-item outcome is folded back into the itemized
// response shape so both payloads answer identically.
func (h *ConsumerHandler) addSingleFavorite(w http.ResponseWriter, r *http.Request, consumerID uuid.UUID, productID string) {
	report := &domain.FavoriteReport{
		Message:       "Favorites added successfully",
		Added:         []string{},
		AlreadyExists: []string{},
		NotFound:      []string{},
	}

	err := h.addFavoritesHandler.HandleOne(r.Context(), consumerID, productID)
	switch {
	case err == nil:
		report.Added = append(report.Added, productID)
	case errors.Is(err, domain.ErrAlreadyFavorited):
		report.AlreadyExists = append(report.AlreadyExists, productID)
	case errors.Is(err, domain.ErrProductNotFound):
		report.NotFound = append(report.NotFound, productID)
	default:
		h.respondDomainError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, report)
}

// RemoveFavorite handles PATCH /consumers/{id}/favorites/{product_id}
func (h *ConsumerHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	id, ok := h.consumerID(w, r)
	if !ok {
		return
	}

	productID := mux.Vars(r)["product_id"]
	err := h.removeFavoriteHandler.Handle(r.Context(), command.RemoveFavoriteCommand{
		ConsumerID: id,
		ProductID:  productID,
	})
	if err != nil {
		h.respondDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// consumerID parses the {id} path variable, answering 422 on a bad uuid
func (h *ConsumerHandler) consumerID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		h.respondError(w, http.StatusUnprocessableEntity, "Invalid consumer ID")
		return uuid.Nil, false
	}
	return id, true
}

// parsePageParams parses and bounds the 1-based pagination query parameters
func parsePageParams(r *http.Request, defaultSize, maxSize int) (int, int, error) {
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return 0, 0, errors.New("page must be an integer greater than or equal to 1")
		}
		page = parsed
	}

	pageSize := defaultSize
	if raw := r.URL.Query().Get("page_size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxSize {
			return 0, 0, errors.New("page_size must be between 1 and " + strconv.Itoa(maxSize))
		}
		pageSize = parsed
	}

	return page, pageSize, nil
}

// respondDomainError maps domain errors onto the HTTP status taxonomy
func (h *ConsumerHandler) respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrConsumerNotFound),
		errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrFavoriteNotFound):
		h.respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrEmailAlreadyRegistered):
		h.respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrInvalidProductID):
		h.respondError(w, http.StatusUnprocessableEntity, "Product ID must be a numeric value")
	case errors.Is(err, productdomain.ErrUpstreamUnavailable):
		h.respondError(w, http.StatusInternalServerError, err.Error())
	default:
		logger.Logger.Error().Err(err).Msg("Unexpected error handling consumer request")
		h.respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// respondJSON sends a JSON response
func (h *ConsumerHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func (h *ConsumerHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// RegisterRoutes registers all consumer routes behind the auth middleware
func (h *ConsumerHandler) RegisterRoutes(router *mux.Router, authmw func(http.HandlerFunc) http.HandlerFunc) {
	router.HandleFunc("/consumers/", middleware.Metrics("/consumers/", authmw(h.Create))).Methods("POST")
	router.HandleFunc("/consumers/", middleware.Metrics("/consumers/", authmw(h.List))).Methods("GET")
	router.HandleFunc("/consumers/{id}", middleware.Metrics("/consumers/{id}", authmw(h.Get))).Methods("GET")
	router.HandleFunc("/consumers/{id}", middleware.Metrics("/consumers/{id}", authmw(h.Update))).Methods("PUT")
	router.HandleFunc("/consumers/{id}", middleware.Metrics("/consumers/{id}", authmw(h.Delete))).Methods("DELETE")
	router.HandleFunc("/consumers/{id}/favorites", middleware.Metrics("/consumers/{id}/favorites", authmw(h.AddFavorites))).Methods("POST")
	router.HandleFunc("/consumers/{id}/favorites/{product_id}", middleware.Metrics("/consumers/{id}/favorites/{product_id}", authmw(h.RemoveFavorite))).Methods("PATCH")
}
