package auth

import (
	"time"

	"github.com/plaindes/cms-backend/internal/users"
)

// RegisterRequest captures the payload required to create an account.
type RegisterRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required"`
	Name     string  `json:"name" validate:"required"`
	Lastname *string `json:"lastname,omitempty"`

	// Request metadata captured by the controller, not the client.
	IPAddress *string `json:"-"`
	UserAgent *string `json:"-"`
}

// LoginRequest captures the user credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`

	IPAddress *string `json:"-"`
	UserAgent *string `json:"-"`
}

// TokenResponse contains the bearer token and user produced by a successful
// register, login, or refresh.
type TokenResponse struct {
	AccessToken string         `json:"access_token"`
	TokenType   string         `json:"token_type"`
	ExpiresAt   time.Time      `json:"expires_at"`
	User        *users.UserDTO `json:"user"`
}
