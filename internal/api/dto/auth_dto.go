package dto

import (
	"time"

	"github.com/spec-kit/inventory-service/internal/domain"
)

// LoginRequest payload for POST /auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=72"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IdentityResponse describes the caller of GET /auth/me.
type IdentityResponse struct {
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NewIdentityResponse maps a verified identity.
func NewIdentityResponse(id *domain.Identity) IdentityResponse {
	return IdentityResponse{
		Username:  id.Subject,
		Role:      id.Role.String(),
		IssuedAt:  id.IssuedAt,
		ExpiresAt: id.ExpiresAt,
	}
}
