package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/tair/consumer-favorites/internal/consumer/domain"
)

// CreateConsumerCommand represents the command to create a consumer profile
type CreateConsumerCommand struct {
	Name  string
	Email string
}

// Validate checks the request-level constraints before any store access.
func (cmd CreateConsumerCommand) Validate() error {
	if len(cmd.Name) < 1 || len(cmd.Name) > 255 {
		return fmt.Errorf("name must be between 1 and 255 characters")
	}
	if strings.TrimSpace(cmd.Email) == "" {
		return fmt.Errorf("email is required")
	}
	return nil
}

// CreateConsumerHandler handles consumer creation
type CreateConsumerHandler struct {
	repo   domain.ConsumerRepository
	events domain.EventPublisher
}

// NewCreateConsumerHandler creates a new create consumer handler. events may
// be nil when event publishing is disabled.
func NewCreateConsumerHandler(repo domain.ConsumerRepository, events domain.EventPublisher) *CreateConsumerHandler {
	return &CreateConsumerHandler{repo: repo, events: events}
}

// Handle executes the create consumer command
func (h *CreateConsumerHandler) Handle(ctx context.Context, cmd CreateConsumerCommand) (*domain.Consumer, error) {
	existing, err := h.repo.FindByEmail(cmd.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyRegistered
	}

	consumer := &domain.Consumer{
		Name:      cmd.Name,
		Email:     cmd.Email,
		Favorites: []domain.Favorite{},
	}

	if err := h.repo.Create(consumer); err != nil {
		return nil, err
	}

	if h.events != nil {
		h.events.ConsumerCreated(ctx, consumer.ID)
	}
	return consumer, nil
}
