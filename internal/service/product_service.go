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

// ProductCreateInput carries the fields of a new product.
type ProductCreateInput struct {
	StoreID string
	Name    string
	Price   float64
	Stock   int
}

// ProductUpdateInput carries a partial update; nil fields are left unchanged.
type ProductUpdateInput struct {
	StoreID *string
	Name    *string
	Price   *float64
	Stock   *int
}

// ProductService manages products.
type ProductService struct {
	products   repository.ProductRepository
	stores     repository.StoreRepository
	cache      *CatalogCache
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// ProductDependencies bundles the collaborators of ProductService.
type ProductDependencies struct {
	ProductRepo repository.ProductRepository
	StoreRepo   repository.StoreRepository
	Cache       *CatalogCache
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// NewProductService constructs the service.
func NewProductService(deps ProductDependencies) *ProductService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{
		products:   deps.ProductRepo,
		stores:     deps.StoreRepo,
		cache:      deps.Cache,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// List returns every product.
func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	return readThrough(ctx, s.cache, keyAllProducts, s.products.List)
}

// ListByStore returns the products of one store; an unknown store is a
// not-found error rather than an empty list.
func (s *ProductService) ListByStore(ctx context.Context, storeID string) ([]domain.Product, error) {
	return readThrough(ctx, s.cache, productsByStoreKey(storeID), func(ctx context.Context) ([]domain.Product, error) {
		if _, err := s.stores.GetByID(ctx, storeID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("store", map[string]any{"id": storeID})
			}
			return nil, err
		}
		return s.products.ListByStore(ctx, storeID)
	})
}

// Get returns a product by id.
func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return readThrough(ctx, s.cache, productKey(id), func(ctx context.Context) (*domain.Product, error) {
		return s.load(ctx, id)
	})
}

// Create adds a product to an existing store.
func (s *ProductService) Create(ctx context.Context, actor *domain.Identity, input ProductCreateInput) (*domain.Product, error) {
	if err := s.ensureStoreExists(ctx, input.StoreID); err != nil {
		return nil, err
	}

	product := &domain.Product{
		StoreID: input.StoreID,
		Name:    input.Name,
		Price:   input.Price,
		Stock:   input.Stock,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("product created", zap.String("product_id", product.ID), zap.String("store_id", product.StoreID))
	publish(ctx, s.dispatcher, events.New(events.EventProductCreated, actorName(actor), events.ProductPayload{
		ProductID: product.ID,
		StoreID:   product.StoreID,
	}))
	return product, nil
}

// Update applies a partial update. Moving a product to another store requires
// the target store to exist.
func (s *ProductService) Update(ctx context.Context, actor *domain.Identity, id string, input ProductUpdateInput) (*domain.Product, error) {
	product, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	previousStore := product.StoreID

	if input.StoreID != nil && *input.StoreID != product.StoreID {
		if err := s.ensureStoreExists(ctx, *input.StoreID); err != nil {
			return nil, err
		}
		product.StoreID = *input.StoreID
	}
	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}

	if err := s.products.Update(ctx, product); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("product", map[string]any{"id": id})
		}
		return nil, err
	}

	publish(ctx, s.dispatcher, events.New(events.EventProductUpdated, actorName(actor), events.ProductPayload{
		ProductID:       product.ID,
		StoreID:         product.StoreID,
		PreviousStoreID: previousStore,
	}))
	return product, nil
}

// Delete removes a product.
func (s *ProductService) Delete(ctx context.Context, actor *domain.Identity, id string) error {
	product, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := s.products.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("product", map[string]any{"id": id})
		}
		return err
	}

	publish(ctx, s.dispatcher, events.New(events.EventProductDeleted, actorName(actor), events.ProductPayload{
		ProductID: id,
		StoreID:   product.StoreID,
	}))
	return nil
}

func (s *ProductService) load(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFound("product", map[string]any{"id": id})
	}
	return product, err
}

func (s *ProductService) ensureStoreExists(ctx context.Context, storeID string) error {
	_, err := s.stores.GetByID(ctx, storeID)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewValidationError("validation failed", map[string]any{"store_id": "references an unknown store"})
	}
	return err
}
