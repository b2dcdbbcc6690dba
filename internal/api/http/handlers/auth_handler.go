package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/inventory-service/internal/api/dto"
	"github.com/spec-kit/inventory-service/internal/auth"
	"github.com/spec-kit/inventory-service/internal/service"
	apperrors "github.com/spec-kit/inventory-service/pkg/util"
)

// Authenticator exchanges credentials for a token.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*service.LoginResult, error)
}

// AuthHandler exposes login and identity endpoints.
type AuthHandler struct {
	auth   Authenticator
	logger *zap.Logger
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authenticator Authenticator, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{auth: authenticator, logger: logger}
}

// Login handles POST /auth/login. Unknown user and wrong password produce the
// same response.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	result, err := h.auth.Login(c.UserContext(), req.Username, req.Password)
	switch {
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrInvalidCredentials):
		h.logger.Debug("login rejected", zap.String("username", req.Username), zap.Error(err))
		return apperrors.NewUnauthorized("invalid credentials")
	case err != nil:
		return err
	}

	return respondOK(c, dto.AuthResponse{
		Token:     result.Token,
		Role:      result.Role.String(),
		ExpiresAt: result.ExpiresAt,
	})
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	identity, found := auth.IdentityFromContext(c)
	if !found {
		return apperrors.NewUnauthorized("authentication required")
	}
	return respondOK(c, dto.NewIdentityResponse(identity))
}
