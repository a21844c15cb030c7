package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hackhub/hackhub/internal/models"
	"github.com/hackhub/hackhub/internal/store"
)

func newAuthService() (*AuthService, *store.MemStore, *TokenBlacklist) {
	st := store.NewMemStore()
	blacklist := NewTokenBlacklist()
	return NewAuthService(st, blacklist), st, blacklist
}

func TestRegisterThenLogin(t *testing.T) {
	ctx := context.Background()
	auth, _, _ := newAuthService()

	registered, token, err := auth.Register(ctx, "Alice", "Alice@Example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "alice@example.com", registered.Email)
	assert.Equal(t, models.RoleUser, registered.Role)
	assert.Empty(t, registered.Password, "session identity must be credential-free")

	// Login with the same credentials, email case-insensitive
	loggedIn, token, err := auth.Login(ctx, "alice@example.COM", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, registered.ID, loggedIn.ID)
	assert.Equal(t, registered.Email, loggedIn.Email)
	assert.Empty(t, loggedIn.Password)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	auth, st, _ := newAuthService()

	_, _, err := auth.Register(ctx, "Alice", "alice@example.com", "password123")
	require.NoError(t, err)

	_, _, err = auth.Register(ctx, "Other Alice", "alice@example.com", "different")
	assert.ErrorIs(t, err, store.ErrDuplicateEmail)

	users, err := st.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1, "a failed registration must not mutate the users collection")
}

func TestRegisterMissingFields(t *testing.T) {
	ctx := context.Background()
	auth, _, _ := newAuthService()

	_, _, err := auth.Register(ctx, "", "alice@example.com", "password123")
	assert.ErrorIs(t, err, ErrMissingFields)

	_, _, err = auth.Register(ctx, "Alice", "   ", "password123")
	assert.ErrorIs(t, err, ErrMissingFields)

	_, _, err = auth.Register(ctx, "Alice", "alice@example.com", "")
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestLoginInvalidCredentials(t *testing.T) {
	ctx := context.Background()
	auth, _, _ := newAuthService()

	_, _, err := auth.Register(ctx, "Alice", "alice@example.com", "password123")
	require.NoError(t, err)

	_, _, err = auth.Login(ctx, "alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = auth.Login(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestPasswordsAreHashed(t *testing.T) {
	ctx := context.Background()
	auth, st, _ := newAuthService()

	_, _, err := auth.Register(ctx, "Alice", "alice@example.com", "password123")
	require.NoError(t, err)

	stored, err := st.FindUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", stored.Password)
	assert.True(t, VerifyPassword("password123", stored.Password))
}

func TestLogoutRevokesToken(t *testing.T) {
	ctx := context.Background()
	auth, _, blacklist := newAuthService()

	_, _, err := auth.Register(ctx, "Alice", "alice@example.com", "password123")
	require.NoError(t, err)

	_, token, err := auth.Login(ctx, "alice@example.com", "password123")
	require.NoError(t, err)

	assert.False(t, blacklist.IsRevoked(token))
	auth.Logout(token)
	assert.True(t, blacklist.IsRevoked(token))
}

func TestEnsureAdmin(t *testing.T) {
	ctx := context.Background()
	auth, st, _ := newAuthService()

	// No-op without credentials
	require.NoError(t, auth.EnsureAdmin(ctx, "Admin", "", ""))
	users, err := st.ListUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	require.NoError(t, auth.EnsureAdmin(ctx, "Admin", "admin@example.com", "secret"))
	admin, err := st.FindUserByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)

	// Second call is idempotent
	require.NoError(t, auth.EnsureAdmin(ctx, "Admin", "admin@example.com", "secret"))
	users, err = st.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestCurrentUser(t *testing.T) {
	ctx := context.Background()
	auth, _, _ := newAuthService()

	registered, _, err := auth.Register(ctx, "Alice", "alice@example.com", "password123")
	require.NoError(t, err)

	current, err := auth.CurrentUser(ctx, registered.ID)
	require.NoError(t, err)
	assert.Equal(t, registered.Email, current.Email)
	assert.Empty(t, current.Password)

	_, err = auth.CurrentUser(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}
