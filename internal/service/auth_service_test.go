package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/inventory-service/internal/auth"
	"github.com/spec-kit/inventory-service/internal/domain"
)

var testSecret = []byte("service-test-secret-of-at-least-32-bytes")

func newTestAuthService(t *testing.T) (*AuthService, *fakeUserRepo, *auth.PasswordHasher) {
	t.Helper()
	codec, err := auth.NewTokenCodec(testSecret, time.Hour)
	require.NoError(t, err)
	hasher := auth.NewPasswordHasher(bcrypt.MinCost)
	users := newFakeUserRepo()
	svc := NewAuthService(AuthDependencies{UserRepo: users, Hasher: hasher, Codec: codec})
	return svc, users, hasher
}

func seedUser(t *testing.T, users *fakeUserRepo, hasher *auth.PasswordHasher, username, password string, role domain.Role) *domain.User {
	t.Helper()
	hash, err := hasher.Hash(password)
	require.NoError(t, err)
	user := &domain.User{Username: username, PasswordHash: hash, Role: role}
	require.NoError(t, users.Create(context.Background(), user))
	return user
}

func TestLoginIssuesTokenForValidCredentials(t *testing.T) {
	svc, users, hasher := newTestAuthService(t)
	seedUser(t, users, hasher, "olivia", "correct horse", domain.RoleOwner)

	result, err := svc.Login(context.Background(), "olivia", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleOwner, result.Role)
	assert.WithinDuration(t, time.Now().Add(time.Hour), result.ExpiresAt, 2*time.Second)

	identity, err := svc.TokenCodec().Verify(result.Token)
	require.NoError(t, err)
	assert.Equal(t, "olivia", identity.Subject)
	assert.Equal(t, domain.RoleOwner, identity.Role)
}

func TestLoginFailures(t *testing.T) {
	svc, users, hasher := newTestAuthService(t)
	seedUser(t, users, hasher, "mark", "s3cret-pass", domain.RoleManager)

	_, err := svc.Login(context.Background(), "nobody", "whatever")
	require.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.Login(context.Background(), "mark", "wrong-pass")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginPropagatesStoreFailure(t *testing.T) {
	svc, users, _ := newTestAuthService(t)
	users.err = errStoreDown

	_, err := svc.Login(context.Background(), "olivia", "pw")
	require.ErrorIs(t, err, errStoreDown)
	assert.NotErrorIs(t, err, ErrUserNotFound)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginDoesNotMutateUser(t *testing.T) {
	svc, users, hasher := newTestAuthService(t)
	user := seedUser(t, users, hasher, "carl", "customer-pass", domain.RoleCustomer)
	before := users.byID[user.ID]

	_, err := svc.Login(context.Background(), "carl", "customer-pass")
	require.NoError(t, err)
	_, _ = svc.Login(context.Background(), "carl", "bad")

	assert.Equal(t, before, users.byID[user.ID])
}
