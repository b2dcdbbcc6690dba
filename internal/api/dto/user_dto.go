package dto

import (
	"time"

	"github.com/spec-kit/inventory-service/internal/domain"
)

// UserCreateRequest payload for POST /users. Role defaults to CUSTOMER.
type UserCreateRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=8,max=72,bcryptlen"`
	Role     string `json:"role" validate:"omitempty,role"`
}

// UserResponse is the public projection of a user; the hash never leaves the
// service.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role.String(),
		CreatedAt: u.CreatedAt,
	}
}
