package dto

import (
	"time"

	"github.com/spec-kit/inventory-service/internal/domain"
)

// ProductCreateRequest payload for POST /products.
type ProductCreateRequest struct {
	StoreID string   `json:"store_id" validate:"required,uuid"`
	Name    string   `json:"name" validate:"required,min=1,max=255"`
	Price   *float64 `json:"price" validate:"required,gte=0"`
	Stock   *int     `json:"stock" validate:"omitempty,gte=0"`
}

// ProductUpdateRequest payload for PUT /products/:id. Absent fields are kept.
type ProductUpdateRequest struct {
	StoreID *string  `json:"store_id" validate:"omitempty,uuid"`
	Name    *string  `json:"name" validate:"omitempty,min=1,max=255"`
	Price   *float64 `json:"price" validate:"omitempty,gte=0"`
	Stock   *int     `json:"stock" validate:"omitempty,gte=0"`
}

// ProductResponse is the JSON view of a product.
type ProductResponse struct {
	ID        string    `json:"id"`
	StoreID   string    `json:"store_id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Stock     int       `json:"stock"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewProductResponse maps a domain product.
func NewProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ID:        p.ID,
		StoreID:   p.StoreID,
		Name:      p.Name,
		Price:     p.Price,
		Stock:     p.Stock,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// NewProductListResponse maps a slice, never returning nil.
func NewProductListResponse(products []domain.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, NewProductResponse(&products[i]))
	}
	return out
}
