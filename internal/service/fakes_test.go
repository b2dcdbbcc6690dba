package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/inventory-service/internal/domain"
	"github.com/spec-kit/inventory-service/internal/repository"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	byID  map[string]domain.User
	err   error
	calls int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[string]domain.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	for _, u := range f.byID {
		if u.Username == user.Username {
			return repository.ErrDuplicate
		}
	}
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	f.byID[user.ID] = *user
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &u, nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.byID {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type fakeStoreRepo struct {
	mu        sync.Mutex
	byID      map[string]domain.Store
	products  *fakeProductRepo
	listCalls int
}

func newFakeStoreRepo(products *fakeProductRepo) *fakeStoreRepo {
	return &fakeStoreRepo{byID: map[string]domain.Store{}, products: products}
}

func (f *fakeStoreRepo) managerTaken(store *domain.Store) bool {
	if store.ManagerID == nil {
		return false
	}
	for id, s := range f.byID {
		if id != store.ID && s.ManagerID != nil && *s.ManagerID == *store.ManagerID {
			return true
		}
	}
	return false
}

func (f *fakeStoreRepo) Create(_ context.Context, store *domain.Store) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.managerTaken(store) {
		return repository.ErrDuplicate
	}
	store.ID = uuid.NewString()
	store.CreatedAt = time.Now()
	store.UpdatedAt = store.CreatedAt
	f.byID[store.ID] = *store
	return nil
}

func (f *fakeStoreRepo) Update(_ context.Context, store *domain.Store) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[store.ID]; !ok {
		return pgx.ErrNoRows
	}
	if f.managerTaken(store) {
		return repository.ErrDuplicate
	}
	store.UpdatedAt = time.Now()
	f.byID[store.ID] = *store
	return nil
}

func (f *fakeStoreRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.byID, id)
	if f.products != nil {
		f.products.deleteByStore(id)
	}
	return nil
}

func (f *fakeStoreRepo) GetByID(_ context.Context, id string) (*domain.Store, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &s, nil
}

func (f *fakeStoreRepo) List(ctx context.Context) ([]domain.Store, error) {
	return f.filter(func(domain.Store) bool { return true }), nil
}

func (f *fakeStoreRepo) ListByOwner(_ context.Context, ownerID string) ([]domain.Store, error) {
	return f.filter(func(s domain.Store) bool { return s.OwnerID == ownerID }), nil
}

func (f *fakeStoreRepo) filter(keep func(domain.Store) bool) []domain.Store {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	out := []domain.Store{}
	for _, s := range f.byID {
		if keep(s) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

type fakeProductRepo struct {
	mu        sync.Mutex
	byID      map[string]domain.Product
	listCalls int
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{byID: map[string]domain.Product{}}
}

func (f *fakeProductRepo) deleteByStore(storeID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, p := range f.byID {
		if p.StoreID == storeID {
			delete(f.byID, id)
		}
	}
}

func (f *fakeProductRepo) Create(_ context.Context, product *domain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	product.ID = uuid.NewString()
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt
	f.byID[product.ID] = *product
	return nil
}

func (f *fakeProductRepo) Update(_ context.Context, product *domain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[product.ID]; !ok {
		return pgx.ErrNoRows
	}
	product.UpdatedAt = time.Now()
	f.byID[product.ID] = *product
	return nil
}

func (f *fakeProductRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &p, nil
}

func (f *fakeProductRepo) List(context.Context) ([]domain.Product, error) {
	return f.filter(func(domain.Product) bool { return true }), nil
}

func (f *fakeProductRepo) ListByStore(_ context.Context, storeID string) ([]domain.Product, error) {
	return f.filter(func(p domain.Product) bool { return p.StoreID == storeID }), nil
}

func (f *fakeProductRepo) filter(keep func(domain.Product) bool) []domain.Product {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	out := []domain.Product{}
	for _, p := range f.byID {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

var errStoreDown = errors.New("connection refused")
