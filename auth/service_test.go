package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/user/resourcebox-go/apperror"
	"github.com/user/resourcebox-go/users"
)

func newTestService() (*Service, *users.MemStore) {
	store := users.NewMemStore()
	tokens := newTestTokenService("test-secret", 48*time.Hour)
	return NewService(store, tokens), store
}

func TestRegisterThenLogin(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterRequest{Username: "alice", Password: "secret"})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "alice", user.Username)

	// The stored digest must never equal the plaintext, and must verify.
	assert.NotEqual(t, "secret", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret")))

	resp, err := svc.Login(ctx, LoginRequest{Username: "alice", Password: "secret"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
}

func TestRegister_MissingFields(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	cases := []RegisterRequest{
		{},
		{Username: "alice"},
		{Password: "secret"},
	}
	for _, req := range cases {
		_, err := svc.Register(ctx, req)
		require.Error(t, err)
		assert.True(t, apperror.IsValidationError(err))
	}

	// No storage row may be created by a rejected registration.
	_, err := store.FindByUsername(ctx, "alice")
	assert.ErrorIs(t, err, users.ErrNotFound)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Username: "alice", Password: "secret"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterRequest{Username: "alice", Password: "other"})
	require.Error(t, err)
	assert.True(t, apperror.IsConflictError(err))
}

func TestLogin_MissingFields(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	for _, req := range []LoginRequest{{}, {Username: "alice"}, {Password: "secret"}} {
		_, err := svc.Login(ctx, req)
		require.Error(t, err)
		assert.True(t, apperror.IsValidationError(err))
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Username: "alice", Password: "secret"})
	require.NoError(t, err)

	// Unknown user and wrong password must be indistinguishable.
	_, errUnknown := svc.Login(ctx, LoginRequest{Username: "nobody", Password: "secret"})
	_, errWrongPw := svc.Login(ctx, LoginRequest{Username: "alice", Password: "wrong"})

	for _, err := range []error{errUnknown, errWrongPw} {
		require.Error(t, err)
		assert.True(t, apperror.IsBadCredentialsError(err))
		assert.Equal(t, "Bad credentials", err.(*apperror.AppError).Message)
	}
}

func TestLogin_TokenRoundTrip(t *testing.T) {
	store := users.NewMemStore()
	tokens := newTestTokenService("test-secret", 48*time.Hour)
	svc := NewService(store, tokens)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Username: "alice", Password: "secret"})
	require.NoError(t, err)

	resp, err := svc.Login(ctx, LoginRequest{Username: "alice", Password: "secret"})
	require.NoError(t, err)

	claims, err := tokens.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
}
