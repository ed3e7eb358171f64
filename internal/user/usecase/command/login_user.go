package command

import (
	"errors"

	"github.com/tair/consumer-favorites/internal/user/domain"
	"github.com/tair/consumer-favorites/pkg/auth"
)

// ErrIncorrectCredentials is returned for both an unknown email and a wrong
// password so the response never reveals which one it was.
var ErrIncorrectCredentials = errors.New("incorrect email or password")

// LoginUserCommand represents the command to login a user
type LoginUserCommand struct {
	Email    string
	Password string
}

// LoginResponse represents the response after successful login
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// LoginUserHandler handles user login command
type LoginUserHandler struct {
	repo        domain.UserRepository
	credentials *auth.Service
}

// NewLoginUserHandler creates a new login user handler
func NewLoginUserHandler(repo domain.UserRepository, credentials *auth.Service) *LoginUserHandler {
	return &LoginUserHandler{repo: repo, credentials: credentials}
}

// Handle executes the login user command
func (h *LoginUserHandler) Handle(cmd LoginUserCommand) (*LoginResponse, error) {
	user, err := h.repo.FindByEmail(cmd.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || !h.credentials.CheckPassword(user.HashedPassword, cmd.Password) {
		return nil, ErrIncorrectCredentials
	}

	token, err := h.credentials.GenerateToken(user.ID.String())
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
	}, nil
}
