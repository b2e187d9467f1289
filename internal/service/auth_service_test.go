package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"recshelf/internal/auth"
	"recshelf/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type revokerStub struct {
	revoked   map[string]time.Duration
	failCheck bool
}

func (r *revokerStub) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	if r.revoked == nil {
		r.revoked = map[string]time.Duration{}
	}
	r.revoked[jti] = ttl
	return nil
}

func (r *revokerStub) IsRevoked(_ context.Context, jti string) (bool, error) {
	if r.failCheck {
		return false, errors.New("redis down")
	}
	_, ok := r.revoked[jti]
	return ok, nil
}

func authFixture(t *testing.T) (*AuthService, *revokerStub) {
	t.Helper()
	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)

	repo := noopUserRepo()
	repo.getByUsernameFn = func(_ context.Context, username string) (*models.User, error) {
		if username != "reader" {
			return nil, nil
		}
		return &models.User{ID: 7, Username: "reader", HashedPassword: hash}, nil
	}
	repo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		if id != 7 {
			return nil, models.NewNotFoundError("User", id)
		}
		return &models.User{ID: 7, Username: "reader"}, nil
	}

	revoker := &revokerStub{}
	tokens := auth.NewTokenManager("service-test-secret-with-enough-length", time.Hour)
	return NewAuthService(repo, tokens, revoker), revoker
}

func TestAuthService_Login(t *testing.T) {
	t.Parallel()
	svc, _ := authFixture(t)
	ctx := context.Background()

	token, err := svc.Login(ctx, "reader", "password123")
	require.NoError(t, err)
	assert.Equal(t, "bearer", token.TokenType)
	assert.NotEmpty(t, token.AccessToken)

	user, claims, err := svc.CurrentUser(ctx, token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(7), user.ID)
	assert.NotEmpty(t, claims.ID)

	for _, tc := range []struct{ user, pass string }{
		{"reader", "wrong"},
		{"nobody", "password123"},
	} {
		_, err := svc.Login(ctx, tc.user, tc.pass)
		appErr := assertAppError(t, err, models.CodeUnauthorized)
		assert.Equal(t, "Incorrect username or password", appErr.Message)
	}
}

func TestAuthService_CurrentUser_Rejects(t *testing.T) {
	t.Parallel()
	svc, _ := authFixture(t)
	ctx := context.Background()

	_, _, err := svc.CurrentUser(ctx, "garbage")
	appErr := assertAppError(t, err, models.CodeUnauthorized)
	assert.Equal(t, "Could not validate credentials", appErr.Message)

	// token for a user that no longer exists
	issued, err := svc.tokens.Issue(99)
	require.NoError(t, err)
	_, _, err = svc.CurrentUser(ctx, issued.Token)
	assertAppError(t, err, models.CodeUnauthorized)
}

func TestAuthService_Logout(t *testing.T) {
	t.Parallel()
	svc, revoker := authFixture(t)
	ctx := context.Background()

	token, err := svc.Login(ctx, "reader", "password123")
	require.NoError(t, err)
	_, claims, err := svc.CurrentUser(ctx, token.AccessToken)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, claims))
	ttl, ok := revoker.revoked[claims.ID]
	require.True(t, ok)
	assert.InDelta(t, time.Hour.Seconds(), ttl.Seconds(), 5)

	_, _, err = svc.CurrentUser(ctx, token.AccessToken)
	appErr := assertAppError(t, err, models.CodeUnauthorized)
	assert.Equal(t, "Token has been revoked", appErr.Message)
}

func TestAuthService_RevocationFailsOpen(t *testing.T) {
	t.Parallel()
	svc, revoker := authFixture(t)
	revoker.failCheck = true
	ctx := context.Background()

	token, err := svc.Login(ctx, "reader", "password123")
	require.NoError(t, err)
	user, _, err := svc.CurrentUser(ctx, token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(7), user.ID)
}
