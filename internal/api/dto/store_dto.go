package dto

import (
	"time"

	"github.com/spec-kit/inventory-service/internal/domain"
)

// StoreCreateRequest payload for POST /stores. OwnerID defaults to the caller.
type StoreCreateRequest struct {
	Name      string  `json:"name" validate:"required,min=1,max=255"`
	Address   string  `json:"address" validate:"required,min=1,max=500"`
	OwnerID   *string `json:"owner_id" validate:"omitempty,uuid"`
	ManagerID *string `json:"manager_id" validate:"omitempty,uuid"`
}

// StoreUpdateRequest payload for PUT /stores/:id. Absent fields are kept.
type StoreUpdateRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=1,max=255"`
	Address   *string `json:"address" validate:"omitempty,min=1,max=500"`
	ManagerID *string `json:"manager_id" validate:"omitempty,uuid"`

	// ClearManager removes the current manager.
	ClearManager bool `json:"clear_manager"`
}

// StoreResponse is the JSON view of a store.
type StoreResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	OwnerID   string    `json:"owner_id"`
	ManagerID *string   `json:"manager_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewStoreResponse maps a domain store.
func NewStoreResponse(s *domain.Store) StoreResponse {
	return StoreResponse{
		ID:        s.ID,
		Name:      s.Name,
		Address:   s.Address,
		OwnerID:   s.OwnerID,
		ManagerID: s.ManagerID,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// NewStoreListResponse maps a slice, never returning nil.
func NewStoreListResponse(stores []domain.Store) []StoreResponse {
	out := make([]StoreResponse, 0, len(stores))
	for i := range stores {
		out = append(out, NewStoreResponse(&stores[i]))
	}
	return out
}
