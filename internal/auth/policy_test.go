package auth

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/inventory-service/internal/domain"
)

func TestDefaultPolicyMatch(t *testing.T) {
	policy := DefaultPolicy()

	tests := []struct {
		method string
		path   string
		rule   string
	}{
		{http.MethodGet, "/health/live", "health-probes"},
		{http.MethodPost, "/auth/login", "login-and-registration"},
		{http.MethodGet, "/auth/login", "login-and-registration"},
		{http.MethodPost, "/users", "login-and-registration"},
		{http.MethodGet, "/users/42", "login-and-registration"},
		{http.MethodGet, "/stores", "catalog-read"},
		{http.MethodGet, "/stores/1", "catalog-read"},
		{http.MethodGet, "/products/store/7", "catalog-read"},
		{http.MethodPost, "/stores", "store-write"},
		{http.MethodPut, "/stores/1", "store-write"},
		{http.MethodDelete, "/stores/1", "store-write"},
		{http.MethodPost, "/products", "product-write"},
		{http.MethodPut, "/products/9", "product-write"},
		{http.MethodDelete, "/products/9", "product-write"},
		{http.MethodGet, "/auth/me", "any-authenticated"},
		{http.MethodGet, "/metrics", "any-authenticated"},
		{http.MethodPatch, "/stores/1", "any-authenticated"},
		{http.MethodGet, "/storefront", "any-authenticated"},
		{http.MethodPost, "/auth/login/extra", "any-authenticated"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			assert.Equal(t, tt.rule, policy.Match(tt.method, tt.path).Name)
		})
	}
}

func TestPolicyNormalizesPath(t *testing.T) {
	policy := DefaultPolicy()

	assert.Equal(t, "store-write", policy.Match("post", "/STORES/").Name)
	assert.Equal(t, "product-write", policy.Match(http.MethodDelete, "/Products/3//").Name)
	assert.Equal(t, "catalog-read", policy.Match(http.MethodGet, "/stores/").Name)
}

func TestRulePermits(t *testing.T) {
	policy := DefaultPolicy()

	storeWrite := policy.Match(http.MethodPost, "/stores")
	assert.True(t, storeWrite.Permits(domain.RoleOwner))
	assert.False(t, storeWrite.Permits(domain.RoleManager))
	assert.False(t, storeWrite.Permits(domain.RoleCustomer))

	productWrite := policy.Match(http.MethodPost, "/products")
	assert.True(t, productWrite.Permits(domain.RoleOwner))
	assert.True(t, productWrite.Permits(domain.RoleManager))
	assert.False(t, productWrite.Permits(domain.RoleCustomer))

	fallback := policy.Match(http.MethodGet, "/auth/me")
	for _, role := range domain.Roles() {
		assert.True(t, fallback.Permits(role))
	}
	assert.False(t, fallback.Permits(domain.Role("")))

	assert.False(t, Rule{Requirement: Requirement(99)}.Permits(domain.RoleOwner))
}

func TestPolicyFirstMatchWins(t *testing.T) {
	policy, err := NewPolicy(
		Rule{Name: "narrow", Methods: []string{"delete"}, Patterns: []string{"/stores/**"}, Requirement: RequireRoles, Roles: []domain.Role{domain.RoleOwner}},
		Rule{Name: "broad", Patterns: []string{"/stores/**"}, Requirement: RequirePublic},
	)
	require.NoError(t, err)

	assert.Equal(t, "narrow", policy.Match(http.MethodDelete, "/stores/1").Name)
	assert.Equal(t, "broad", policy.Match(http.MethodPost, "/stores/1").Name)
	assert.Len(t, policy.Rules(), 2)
}

func TestNewPolicyValidation(t *testing.T) {
	tests := []struct {
		name string
		rule Rule
	}{
		{"no patterns", Rule{Name: "x", Requirement: RequirePublic}},
		{"relative pattern", Rule{Name: "x", Patterns: []string{"stores"}, Requirement: RequirePublic}},
		{"roles without role requirement", Rule{Name: "x", Patterns: []string{"/a"}, Requirement: RequireAuthenticated, Roles: []domain.Role{domain.RoleOwner}}},
		{"role rule without roles", Rule{Name: "x", Patterns: []string{"/a"}, Requirement: RequireRoles}},
		{"unknown role", Rule{Name: "x", Patterns: []string{"/a"}, Requirement: RequireRoles, Roles: []domain.Role{"ROOT"}}},
		{"unknown requirement", Rule{Name: "x", Patterns: []string{"/a"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPolicy(tt.rule)
			require.Error(t, err)
		})
	}

	_, err := NewPolicy()
	require.Error(t, err)
}

func TestMatchPattern(t *testing.T) {
	assert.True(t, matchPattern("/stores/**", "/stores"))
	assert.True(t, matchPattern("/stores/**", "/stores/1/products"))
	assert.False(t, matchPattern("/stores/**", "/storesx"))
	assert.True(t, matchPattern("/**", "/anything"))
	assert.True(t, matchPattern("/auth/login", "/auth/login"))
	assert.False(t, matchPattern("/auth/login", "/auth/login/x"))
}
