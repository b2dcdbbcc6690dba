package domain

import "time"

// Store is a shop owned by a user and optionally run by a manager.
type Store struct {
	ID        string
	Name      string
	Address   string
	OwnerID   string
	ManagerID *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
