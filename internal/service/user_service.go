package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/inventory-service/internal/auth"
	"github.com/spec-kit/inventory-service/internal/domain"
	"github.com/spec-kit/inventory-service/internal/repository"
	apperrors "github.com/spec-kit/inventory-service/pkg/util"
)

// UserService manages user accounts.
type UserService struct {
	users  repository.UserRepository
	hasher *auth.PasswordHasher
	logger *zap.Logger
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository, hasher *auth.PasswordHasher, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{users: users, hasher: hasher, logger: logger}
}

// Create registers a user. An empty role means CUSTOMER.
func (s *UserService) Create(ctx context.Context, username, password, role string) (*domain.User, error) {
	parsed := domain.RoleCustomer
	if role != "" {
		var err error
		if parsed, err = domain.ParseRole(role); err != nil {
			return nil, apperrors.NewValidationError("validation failed", map[string]any{
				"role": "must be one of OWNER, MANAGER, CUSTOMER",
			})
		}
	}

	if len(password) > auth.MaxPasswordBytes {
		return nil, apperrors.NewValidationError("validation failed", map[string]any{
			"password": fmt.Sprintf("must be at most %d bytes", auth.MaxPasswordBytes),
		})
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: hash,
		Role:         parsed,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewConflict("username already taken", map[string]any{"username": username})
		}
		return nil, err
	}

	s.logger.Info("user created", zap.String("user_id", user.ID), zap.String("role", user.Role.String()))
	return user, nil
}

// Get returns a user by id.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFound("user", map[string]any{"id": id})
	}
	return user, err
}
