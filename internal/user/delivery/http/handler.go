package http

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/tair/consumer-favorites/internal/middleware"
	"github.com/tair/consumer-favorites/internal/user/domain"
	"github.com/tair/consumer-favorites/internal/user/usecase/command"
	"github.com/tair/consumer-favorites/pkg/auth"
	"github.com/tair/consumer-favorites/pkg/logger"
)

// AuthHandler handles HTTP requests for registration and login
type AuthHandler struct {
	registerHandler *command.RegisterUserHandler
	loginHandler    *command.LoginUserHandler
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(repo domain.UserRepository, credentials *auth.Service) *AuthHandler {
	return &AuthHandler{
		registerHandler: command.NewRegisterUserHandler(repo, credentials),
		loginHandler:    command.NewLoginUserHandler(repo, credentials),
	}
}

// userView is the registration response: account email and active flag only.
type userView struct {
	Email    string `json:"email"`
	IsActive bool   `json:"is_active"`
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}

	cmd := command.RegisterUserCommand{
		Email:    req.Email,
		Password: req.Password,
	}
	if err := cmd.Validate(); err != nil {
		h.respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	user, err := h.registerHandler.Handle(cmd)
	if err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyRegistered) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		logger.Logger.Error().Err(err).Msg("Failed to register user")
		h.respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.respondJSON(w, http.StatusCreated, userView{Email: user.Email, IsActive: user.IsActive})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}

	response, err := h.loginHandler.Handle(command.LoginUserCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, command.ErrIncorrectCredentials) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		logger.Logger.Error().Err(err).Msg("Failed to log user in")
		h.respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.respondJSON(w, http.StatusOK, response)
}

// HealthCheck handles GET /health
func (h *AuthHandler) HealthCheck(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			h.respondJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "unhealthy",
				"error":  err.Error(),
			})
			return
		}

		h.respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	}
}

// respondJSON sends a JSON response
func (h *AuthHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func (h *AuthHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// RegisterRoutes registers the auth routes; they require no token
func (h *AuthHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/auth/register", middleware.Metrics("/auth/register", h.Register)).Methods("POST")
	router.HandleFunc("/auth/login", middleware.Metrics("/auth/login", h.Login)).Methods("POST")
}

// RegisterHealthCheck registers the health check endpoint
func (h *AuthHandler) RegisterHealthCheck(router *mux.Router, db *sql.DB) {
	router.HandleFunc("/health", h.HealthCheck(db)).Methods("GET")
}
