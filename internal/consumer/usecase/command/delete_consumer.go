package command

import (
	"github.com/google/uuid"

	"github.com/tair/consumer-favorites/internal/consumer/domain"
)

// DeleteConsumerCommand represents the command to delete a consumer
type DeleteConsumerCommand struct {
	ID uuid.UUID
}

// DeleteConsumerHandler handles consumer deletion
type DeleteConsumerHandler struct {
	repo domain.ConsumerRepository
}

// NewDeleteConsumerHandler creates a new delete consumer handler
func NewDeleteConsumerHandler(repo domain.ConsumerRepository) *DeleteConsumerHandler {
	return &DeleteConsumerHandler{repo: repo}
}

// Handle executes the delete consumer command. The store cascade removes
// the consumer's favorites with it.
func (h *DeleteConsumerHandler) Handle(cmd DeleteConsumerCommand) error {
	return h.repo.Delete(cmd.ID)
}
