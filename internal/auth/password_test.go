package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	require.NoError(t, hasher.Compare(hash, "s3cret-pass"))
	require.ErrorIs(t, hasher.Compare(hash, "wrong"), ErrPasswordMismatch)

	other, err := hasher.Hash("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, hash, other, "hashes are salted")
}

func TestPasswordHasherInvalidCost(t *testing.T) {
	hasher := NewPasswordHasher(1)
	assert.Equal(t, bcrypt.DefaultCost, hasher.cost)
}

func TestPasswordHasherCompareGarbageHash(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)
	err := hasher.Compare("not-a-bcrypt-hash", "pw")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrPasswordMismatch)

	hasher.CompareDummy("anything")
}
