package handlers

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/inventory-service/internal/api/dto"
	"github.com/spec-kit/inventory-service/internal/domain"
)

// UserManager is the user service as seen by the handler.
type UserManager interface {
	Create(ctx context.Context, username, password, role string) (*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
}

// UsersHandler exposes user account endpoints.
type UsersHandler struct {
	users UserManager
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users UserManager) *UsersHandler {
	return &UsersHandler{users: users}
}

// Create handles POST /users.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.UserCreateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user, err := h.users.Create(c.UserContext(), req.Username, req.Password, req.Role)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, dto.NewUserResponse(user))
}

// Get handles GET /users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "user")
	if err != nil {
		return err
	}
	user, err := h.users.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return respondOK(c, dto.NewUserResponse(user))
}
