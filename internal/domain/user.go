package domain

import "time"

// User is the durable credential record owned by the Credential Store.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
