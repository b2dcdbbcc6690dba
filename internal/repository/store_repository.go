package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/inventory-service/internal/domain"
)

// StoreRepository manages store persistence.
type StoreRepository interface {
	Create(ctx context.Context, store *domain.Store) error
	Update(ctx context.Context, store *domain.Store) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Store, error)
	List(ctx context.Context) ([]domain.Store, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Store, error)
}

type storeRepository struct {
	pool *pgxpool.Pool
}

// NewStoreRepository builds the repository.
func NewStoreRepository(pool *pgxpool.Pool) StoreRepository {
	return &storeRepository{pool: pool}
}

const storeColumns = `id, name, address, owner_id, manager_id, created_at, updated_at`

func (r *storeRepository) Create(ctx context.Context, store *domain.Store) error {
	const query = `
        INSERT INTO stores (name, address, owner_id, manager_id)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, query,
		store.Name,
		store.Address,
		store.OwnerID,
		store.ManagerID,
	).Scan(&store.ID, &store.CreatedAt, &store.UpdatedAt)
	return translate(err)
}

func (r *storeRepository) Update(ctx context.Context, store *domain.Store) error {
	const query = `
        UPDATE stores SET name=$1, address=$2, owner_id=$3, manager_id=$4, updated_at=NOW()
        WHERE id=$5
        RETURNING updated_at`
	err := r.pool.QueryRow(ctx, query,
		store.Name,
		store.Address,
		store.OwnerID,
		store.ManagerID,
		store.ID,
	).Scan(&store.UpdatedAt)
	return translate(err)
}

func (r *storeRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM stores WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *storeRepository) GetByID(ctx context.Context, id string) (*domain.Store, error) {
	query := `SELECT ` + storeColumns + ` FROM stores WHERE id=$1`
	var store domain.Store
	if err := scanStore(r.pool.QueryRow(ctx, query, id), &store); err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *storeRepository) List(ctx context.Context) ([]domain.Store, error) {
	return r.list(ctx, `SELECT `+storeColumns+` FROM stores ORDER BY created_at, id`)
}

func (r *storeRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Store, error) {
	return r.list(ctx, `SELECT `+storeColumns+` FROM stores WHERE owner_id=$1 ORDER BY created_at, id`, ownerID)
}

func (r *storeRepository) list(ctx context.Context, query string, args ...any) ([]domain.Store, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Store{}
	for rows.Next() {
		var store domain.Store
		if err := scanStore(rows, &store); err != nil {
			return nil, err
		}
		result = append(result, store)
	}
	return result, rows.Err()
}

func scanStore(row pgx.Row, store *domain.Store) error {
	return row.Scan(
		&store.ID,
		&store.Name,
		&store.Address,
		&store.OwnerID,
		&store.ManagerID,
		&store.CreatedAt,
		&store.UpdatedAt,
	)
}
