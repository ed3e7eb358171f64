package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/tair/consumer-favorites/internal/consumer/domain"
	productdomain "github.com/tair/consumer-favorites/internal/product/domain"
)

// outcome classifies a single requested product id.
type outcome int

const (
	outcomeAdded outcome = iota
	outcomeAlreadyExists
	outcomeNotFound
)

// AddFavoritesCommand represents a batch favorite request. Product ids are
// processed strictly in input order.
type AddFavoritesCommand struct {
	ConsumerID uuid.UUID
	ProductIDs []string
}

// AddFavoritesHandler reconciles requested product ids against the catalog
// and the favorites store. Best-effort batch with itemized outcome: partial
// success is normal and already-added items are never rolled back.
type AddFavoritesHandler struct {
	consumers domain.ConsumerRepository
	favorites domain.FavoriteRepository
	catalog   productdomain.Catalog
	events    domain.EventPublisher
}

// NewAddFavoritesHandler creates a new add favorites handler. events may be
// nil when event publishing is disabled.
func NewAddFavoritesHandler(
	consumers domain.ConsumerRepository,
	favorites domain.FavoriteRepository,
	catalog productdomain.Catalog,
	events domain.EventPublisher,
) *AddFavoritesHandler {
	return &AddFavoritesHandler{
		consumers: consumers,
		favorites: favorites,
		catalog:   catalog,
		events:    events,
	}
}

// Handle executes the batch favorite command
func (h *AddFavoritesHandler) Handle(ctx context.Context, cmd AddFavoritesCommand) (*domain.FavoriteReport, error) {
	consumer, err := h.consumers.FindByID(cmd.ConsumerID)
	if err != nil {
		return nil, err
	}
	if consumer == nil {
		return nil, domain.ErrConsumerNotFound
	}

	report := &domain.FavoriteReport{
		Message:       "Favorites added successfully",
		Added:         []string{},
		AlreadyExists: []string{},
		NotFound:      []string{},
	}

	for _, productID := range cmd.ProductIDs {
		result, err := h.addOne(ctx, cmd.ConsumerID, productID)
		if err != nil {
			return nil, err
		}
		switch result {
		case outcomeAdded:
			report.Added = append(report.Added, productID)
		case outcomeAlreadyExists:
			report.AlreadyExists = append(report.AlreadyExists, productID)
		case outcomeNotFound:
			report.NotFound = append(report.NotFound, productID)
		}
	}

	return report, nil
}

// HandleOne executes the single-item variant, returning a definite outcome
// instead of classification buckets. It shares the per-item step with Handle.
func (h *AddFavoritesHandler) HandleOne(ctx context.Context, consumerID uuid.UUID, productID string) error {
	consumer, err := h.consumers.FindByID(consumerID)
	if err != nil {
		return err
	}
	if consumer == nil {
		return domain.ErrConsumerNotFound
	}

	result, err := h.addOne(ctx, consumerID, productID)
	if err != nil {
		return err
	}
	switch result {
	case outcomeAlreadyExists:
		return domain.ErrAlreadyFavorited
	case outcomeNotFound:
		return domain.ErrProductNotFound
	default:
		return nil
	}
}

// addOne validates and persists one favorite. A uniqueness rejection from
// the store means a concurrent request won the race and counts as
// already-favorited, not as a failure.
func (h *AddFavoritesHandler) addOne(ctx context.Context, consumerID uuid.UUID, productID string) (outcome, error) {
	product, err := h.catalog.GetProduct(ctx, productID)
	if err != nil {
		return 0, fmt.Errorf("failed to look up product %s: %w", productID, err)
	}
	if product == nil {
		return outcomeNotFound, nil
	}

	existing, err := h.favorites.FindByConsumerAndProduct(consumerID, productID)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return outcomeAlreadyExists, nil
	}

	if err := h.favorites.Create(&domain.Favorite{
		ConsumerID: consumerID,
		ProductID:  productID,
	}); err != nil {
		if errors.Is(err, domain.ErrAlreadyFavorited) {
			return outcomeAlreadyExists, nil
		}
		return 0, err
	}

	if h.events != nil {
		h.events.FavoriteAdded(ctx, consumerID, productID)
	}
	return outcomeAdded, nil
}
