package domain

import (
	"fmt"
	"strings"
	"time"
)

// Role is the closed set of roles a user may hold.
type Role string

const (
	RoleOwner    Role = "OWNER"
	RoleManager  Role = "MANAGER"
	RoleCustomer Role = "CUSTOMER"
)

// Roles lists every valid role.
func Roles() []Role {
	return []Role{RoleOwner, RoleManager, RoleCustomer}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleManager, RoleCustomer:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// ParseRole accepts a role name in any case.
func ParseRole(raw string) (Role, error) {
	role := Role(strings.ToUpper(strings.TrimSpace(raw)))
	if !role.Valid() {
		return "", fmt.Errorf("unknown role %q", raw)
	}
	return role, nil
}

// Identity is the claim-set recovered from a verified token. It lives for a
// single request and is never persisted.
type Identity struct {
	Subject   string
	Role      Role
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
