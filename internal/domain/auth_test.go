package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		raw     string
		want    Role
		wantErr bool
	}{
		{raw: "OWNER", want: RoleOwner},
		{raw: "manager", want: RoleManager},
		{raw: " Customer ", want: RoleCustomer},
		{raw: "ROLE_OWNER", wantErr: true},
		{raw: "", wantErr: true},
		{raw: "admin", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseRole(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRolesAreValid(t *testing.T) {
	for _, role := range Roles() {
		assert.True(t, role.Valid(), role.String())
	}
	assert.False(t, Role("owner").Valid())
}
