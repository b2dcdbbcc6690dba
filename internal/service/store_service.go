package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/inventory-service/internal/domain"
	"github.com/spec-kit/inventory-service/internal/events"
	"github.com/spec-kit/inventory-service/internal/repository"
	apperrors "github.com/spec-kit/inventory-service/pkg/util"
)

// StoreCreateInput carries the fields of a new store. OwnerID defaults to the
// calling user.
type StoreCreateInput struct {
	Name      string
	Address   string
	OwnerID   *string
	ManagerID *string
}

// StoreUpdateInput carries a partial update; nil fields are left unchanged.
type StoreUpdateInput struct {
	Name         *string
	Address      *string
	ManagerID    *string
	ClearManager bool
}

// StoreService manages stores.
type StoreService struct {
	stores     repository.StoreRepository
	products   repository.ProductRepository
	users      repository.UserRepository
	cache      *CatalogCache
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// StoreDependencies bundles the collaborators of StoreService.
type StoreDependencies struct {
	StoreRepo   repository.StoreRepository
	ProductRepo repository.ProductRepository
	UserRepo    repository.UserRepository
	Cache       *CatalogCache
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// NewStoreService constructs the service.
func NewStoreService(deps StoreDependencies) *StoreService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StoreService{
		stores:     deps.StoreRepo,
		products:   deps.ProductRepo,
		users:      deps.UserRepo,
		cache:      deps.Cache,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// List returns every store, or the stores of ownerID when it is not empty.
func (s *StoreService) List(ctx context.Context, ownerID string) ([]domain.Store, error) {
	if ownerID == "" {
		return readThrough(ctx, s.cache, keyAllStores, s.stores.List)
	}
	return readThrough(ctx, s.cache, storesByOwnerKey(ownerID), func(ctx context.Context) ([]domain.Store, error) {
		return s.stores.ListByOwner(ctx, ownerID)
	})
}

// Get returns a store by id.
func (s *StoreService) Get(ctx context.Context, id string) (*domain.Store, error) {
	return readThrough(ctx, s.cache, storeKey(id), func(ctx context.Context) (*domain.Store, error) {
		return s.load(ctx, id)
	})
}

// Create persists a new store on behalf of actor.
func (s *StoreService) Create(ctx context.Context, actor *domain.Identity, input StoreCreateInput) (*domain.Store, error) {
	ownerID, err := s.resolveOwner(ctx, actor, input.OwnerID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUserExists(ctx, "manager_id", input.ManagerID); err != nil {
		return nil, err
	}

	store := &domain.Store{
		Name:      input.Name,
		Address:   input.Address,
		OwnerID:   ownerID,
		ManagerID: input.ManagerID,
	}
	if err := s.stores.Create(ctx, store); err != nil {
		return nil, s.translateWriteError(err)
	}

	s.logger.Info("store created", zap.String("store_id", store.ID), zap.String("owner_id", store.OwnerID))
	publish(ctx, s.dispatcher, events.New(events.EventStoreCreated, actorName(actor), events.StorePayload{
		StoreID: store.ID,
		OwnerID: store.OwnerID,
	}))
	return store, nil
}

// Update applies a partial update to a store.
func (s *StoreService) Update(ctx context.Context, actor *domain.Identity, id string, input StoreUpdateInput) (*domain.Store, error) {
	store, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		store.Name = *input.Name
	}
	if input.Address != nil {
		store.Address = *input.Address
	}
	switch {
	case input.ClearManager:
		store.ManagerID = nil
	case input.ManagerID != nil:
		if err := s.ensureUserExists(ctx, "manager_id", input.ManagerID); err != nil {
			return nil, err
		}
		store.ManagerID = input.ManagerID
	}

	if err := s.stores.Update(ctx, store); err != nil {
		return nil, s.translateWriteError(err)
	}

	publish(ctx, s.dispatcher, events.New(events.EventStoreUpdated, actorName(actor), events.StorePayload{
		StoreID: store.ID,
		OwnerID: store.OwnerID,
	}))
	return store, nil
}

// Delete removes a store together with its products.
func (s *StoreService) Delete(ctx context.Context, actor *domain.Identity, id string) error {
	store, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	products, err := s.products.ListByStore(ctx, id)
	if err != nil {
		return err
	}
	productIDs := make([]string, 0, len(products))
	for _, p := range products {
		productIDs = append(productIDs, p.ID)
	}

	if err := s.stores.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("store", map[string]any{"id": id})
		}
		return err
	}

	s.logger.Info("store deleted", zap.String("store_id", id), zap.Int("products_removed", len(productIDs)))
	publish(ctx, s.dispatcher, events.New(events.EventStoreDeleted, actorName(actor), events.StorePayload{
		StoreID:    id,
		OwnerID:    store.OwnerID,
		ProductIDs: productIDs,
	}))
	return nil
}

func (s *StoreService) load(ctx context.Context, id string) (*domain.Store, error) {
	store, err := s.stores.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFound("store", map[string]any{"id": id})
	}
	return store, err
}

func (s *StoreService) resolveOwner(ctx context.Context, actor *domain.Identity, requested *string) (string, error) {
	if requested != nil {
		if err := s.ensureUserExists(ctx, "owner_id", requested); err != nil {
			return "", err
		}
		return *requested, nil
	}
	if actor == nil {
		return "", apperrors.NewUnauthorized("authentication required")
	}
	user, err := s.users.GetByUsername(ctx, actor.Subject)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", apperrors.NewUnauthorized("account no longer exists")
	}
	if err != nil {
		return "", err
	}
	return user.ID, nil
}

func (s *StoreService) ensureUserExists(ctx context.Context, field string, id *string) error {
	if id == nil {
		return nil
	}
	_, err := s.users.GetByID(ctx, *id)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewValidationError("validation failed", map[string]any{field: "references an unknown user"})
	}
	return err
}

func (s *StoreService) translateWriteError(err error) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return apperrors.NewConflict("manager already runs another store", nil)
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound("store", nil)
	}
	return err
}

func actorName(actor *domain.Identity) string {
	if actor == nil {
		return ""
	}
	return actor.Subject
}
