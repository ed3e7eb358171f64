package command

import (
	"github.com/google/uuid"

	"github.com/tair/consumer-favorites/internal/consumer/domain"
)

// UpdateConsumerCommand represents a partial consumer update; nil fields are
// left untouched.
type UpdateConsumerCommand struct {
	ID     uuid.UUID
	Update domain.ConsumerUpdate
}

// UpdateConsumerHandler handles consumer updates
type UpdateConsumerHandler struct {
	repo domain.ConsumerRepository
}

// NewUpdateConsumerHandler creates a new update consumer handler
func NewUpdateConsumerHandler(repo domain.ConsumerRepository) *UpdateConsumerHandler {
	return &UpdateConsumerHandler{repo: repo}
}

// Handle executes the update consumer command. Changing the email conflicts
// only when the new email belongs to a different consumer.
func (h *UpdateConsumerHandler) Handle(cmd UpdateConsumerCommand) (*domain.Consumer, error) {
	consumer, err := h.repo.FindByID(cmd.ID)
	if err != nil {
		return nil, err
	}
	if consumer == nil {
		return nil, domain.ErrConsumerNotFound
	}

	if cmd.Update.Email != nil {
		existing, err := h.repo.FindByEmail(*cmd.Update.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != cmd.ID {
			return nil, domain.ErrEmailAlreadyRegistered
		}
		consumer.Email = *cmd.Update.Email
	}
	if cmd.Update.Name != nil {
		consumer.Name = *cmd.Update.Name
	}

	if err := h.repo.Update(consumer); err != nil {
		return nil, err
	}
	return consumer, nil
}
