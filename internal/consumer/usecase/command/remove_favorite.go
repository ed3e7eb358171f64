package command

import (
	"context"

	"github.com/google/uuid"

	"github.com/tair/consumer-favorites/internal/consumer/domain"
	productdomain "github.com/tair/consumer-favorites/internal/product/domain"
)

// RemoveFavoriteCommand represents the command to remove a single favorite
type RemoveFavoriteCommand struct {
	ConsumerID uuid.UUID
	ProductID  string
}

// RemoveFavoriteHandler handles favorite removal
type RemoveFavoriteHandler struct {
	consumers domain.ConsumerRepository
	favorites domain.FavoriteRepository
	catalog   productdomain.Catalog
	events    domain.EventPublisher
}

// NewRemoveFavoriteHandler creates a new remove favorite handler. events may
// be nil when event publishing is disabled.
func NewRemoveFavoriteHandler(
	consumers domain.ConsumerRepository,
	favorites domain.FavoriteRepository,
	catalog productdomain.Catalog,
	events domain.EventPublisher,
) *RemoveFavoriteHandler {
	return &RemoveFavoriteHandler{
		consumers: consumers,
		favorites: favorites,
		catalog:   catalog,
		events:    events,
	}
}

// Handle executes the remove favorite command. The product id must be
// strictly numeric, checked before any store or gateway call; afterwards
// consumer, product and favorite existence are verified in that order.
func (h *RemoveFavoriteHandler) Handle(ctx context.Context, cmd RemoveFavoriteCommand) error {
	if !isNumeric(cmd.ProductID) {
		return domain.ErrInvalidProductID
	}

	consumer, err := h.consumers.FindByID(cmd.ConsumerID)
	if err != nil {
		return err
	}
	if consumer == nil {
		return domain.ErrConsumerNotFound
	}

	product, err := h.catalog.GetProduct(ctx, cmd.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrProductNotFound
	}

	favorite, err := h.favorites.FindByConsumerAndProduct(cmd.ConsumerID, cmd.ProductID)
	if err != nil {
		return err
	}
	if favorite == nil {
		return domain.ErrFavoriteNotFound
	}

	if err := h.favorites.Delete(favorite.ID); err != nil {
		return err
	}

	if h.events != nil {
		h.events.FavoriteRemoved(ctx, cmd.ConsumerID, cmd.ProductID)
	}
	return nil
}

// isNumeric reports whether s is a non-empty string of ASCII digits.
func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
