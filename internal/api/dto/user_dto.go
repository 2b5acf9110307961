package dto

import (
	"net/mail"
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// RegisterRequest payload.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Validate applies the registration rules.
func (r RegisterRequest) Validate() map[string]any {
	details := map[string]any{}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		details["email"] = "invalid email format"
	}
	if len(r.Password) < 8 {
		details["password"] = "password must be at least 8 characters"
	}
	if len(r.Name) < 2 || len(r.Name) > 100 {
		details["name"] = "name must be between 2 and 100 characters"
	}
	if len(details) == 0 {
		return nil
	}
	return details
}

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is the serialized user representation.
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// AuthResponse bundles the user with an issued token.
type AuthResponse struct {
	User      UserResponse `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// FromUser maps a domain user onto the response shape.
func FromUser(user *domain.User) UserResponse {
	return UserResponse{
		ID:    user.ID.String(),
		Email: user.Email,
		Name:  user.Name,
	}
}
