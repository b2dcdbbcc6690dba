package validation

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/inventory-service/pkg/util"
)

type sample struct {
	Username string   `json:"username" validate:"required,min=3,max=8"`
	Role     string   `json:"role" validate:"omitempty,role"`
	Price    *float64 `json:"price" validate:"required,gte=0"`
	StoreID  string   `json:"store_id" validate:"omitempty,uuid"`
}

func TestValidateStructPasses(t *testing.T) {
	price := 1.5
	require.NoError(t, ValidateStruct(&sample{Username: "olivia", Role: "manager", Price: &price}))
}

func TestValidateStructReportsJSONFieldNames(t *testing.T) {
	price := -1.0
	err := ValidateStruct(&sample{Username: "ab", Role: "ADMIN", Price: &price, StoreID: "nope"})
	require.Error(t, err)

	de := apperrors.ToDomainError(err)
	assert.Equal(t, "VALIDATION_FAILED", de.Code)
	assert.Equal(t, http.StatusBadRequest, de.HTTPStatus)
	assert.Equal(t, map[string]any{
		"username": "must be at least 3 characters",
		"role":     "must be one of OWNER, MANAGER, CUSTOMER",
		"price":    "must be greater than or equal to 0",
		"store_id": "must be a valid UUID",
	}, de.Details)
}

func TestValidateStructRequired(t *testing.T) {
	err := ValidateStruct(&sample{})
	require.Error(t, err)

	de := apperrors.ToDomainError(err)
	assert.Equal(t, "is required", de.Details["username"])
	assert.Equal(t, "is required", de.Details["price"])
	assert.NotContains(t, de.Details, "role")
}

func TestValidateStructPasswordByteLength(t *testing.T) {
	type credentials struct {
		Password string `json:"password" validate:"required,min=8,max=72,bcryptlen"`
	}

	require.NoError(t, ValidateStruct(&credentials{Password: strings.Repeat("é", 36)}))

	err := ValidateStruct(&credentials{Password: strings.Repeat("é", 40)})
	require.Error(t, err)
	de := apperrors.ToDomainError(err)
	assert.Equal(t, "VALIDATION_FAILED", de.Code)
	assert.Equal(t, "must be at most 72 bytes", de.Details["password"])
}

func TestGetValidatorIsShared(t *testing.T) {
	assert.Same(t, GetValidator(), GetValidator())
}
