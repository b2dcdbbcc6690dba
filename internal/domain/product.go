package domain

import "time"

// Product is an item stocked by a single store.
type Product struct {
	ID        string
	StoreID   string
	Name      string
	Price     float64
	Stock     int
	CreatedAt time.Time
	UpdatedAt time.Time
}
