package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/inventory-service/internal/auth"
	"github.com/spec-kit/inventory-service/internal/domain"
	"github.com/spec-kit/inventory-service/internal/repository"
)

// Login failures. Callers must not reveal which one occurred.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// LoginResult is handed back after a successful login.
type LoginResult struct {
	Token     string
	Role      domain.Role
	ExpiresAt time.Time
}

// AuthService exchanges username and password for a session token.
type AuthService struct {
	users  repository.UserRepository
	hasher *auth.PasswordHasher
	codec  *auth.TokenCodec
	logger *zap.Logger
}

// AuthDependencies encapsulates the collaborators of the auth service.
type AuthDependencies struct {
	UserRepo repository.UserRepository
	Hasher   *auth.PasswordHasher
	Codec    *auth.TokenCodec
	Logger   *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:  deps.UserRepo,
		hasher: deps.Hasher,
		codec:  deps.Codec,
		logger: logger,
	}
}

// Login verifies the credentials and issues a token whose subject is the
// username. It never modifies the user.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, pgx.ErrNoRows) {
		s.hasher.CompareDummy(password)
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("compare password: %w", err)
	}

	token, expiresAt, err := s.codec.Encode(user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.logger.Info("user logged in", zap.String("username", user.Username), zap.String("role", user.Role.String()))
	return &LoginResult{Token: token, Role: user.Role, ExpiresAt: expiresAt}, nil
}

// TokenCodec exposes the codec for the authorization gate.
func (s *AuthService) TokenCodec() *auth.TokenCodec {
	return s.codec
}
