package command

import (
	"fmt"
	"strings"

	"github.com/tair/consumer-favorites/internal/user/domain"
	"github.com/tair/consumer-favorites/pkg/auth"
)

// RegisterUserCommand represents the command to register a new user
type RegisterUserCommand struct {
	Email    string
	Password string
}

// Validate checks the request-level constraints before any store access.
func (cmd RegisterUserCommand) Validate() error {
	if strings.TrimSpace(cmd.Email) == "" {
		return fmt.Errorf("email is required")
	}
	if len(cmd.Password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	return nil
}

// RegisterUserHandler handles user registration command
type RegisterUserHandler struct {
	repo        domain.UserRepository
	credentials *auth.Service
}

// NewRegisterUserHandler creates a new register user handler
func NewRegisterUserHandler(repo domain.UserRepository, credentials *auth.Service) *RegisterUserHandler {
	return &RegisterUserHandler{repo: repo, credentials: credentials}
}

// Handle executes the register user command
func (h *RegisterUserHandler) Handle(cmd RegisterUserCommand) (*domain.User, error) {
	if existing, err := h.repo.FindByEmail(cmd.Email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrEmailAlreadyRegistered
	}

	hashed, err := h.credentials.HashPassword(cmd.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:          cmd.Email,
		HashedPassword: hashed,
		IsActive:       true,
	}

	if err := h.repo.Create(user); err != nil {
		return nil, err
	}

	return user, nil
}
