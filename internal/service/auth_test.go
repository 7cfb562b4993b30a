package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/deckhaven/deckhaven-server/internal/errors"
)

func TestAuthService_SignupAndLogin(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	user, err := env.auth.Signup(ctx, SignupRequest{
		Username: "alice",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "correct horse battery", user.PasswordHash)

	got, err := env.auth.Login(ctx, LoginRequest{
		Username: "alice",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestAuthService_Signup_DuplicateUsername(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	_, err := env.auth.Signup(ctx, SignupRequest{Username: "alice", Password: "password123"})
	require.NoError(t, err)

	_, err = env.auth.Signup(ctx, SignupRequest{Username: "alice", Password: "password456"})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, http.StatusConflict, domainErr.HTTPStatus())
}

func TestAuthService_Signup_Validation(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	// Username too short.
	_, err := env.auth.Signup(ctx, SignupRequest{Username: "al", Password: "password123"})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	// Password too short.
	_, err = env.auth.Signup(ctx, SignupRequest{Username: "alice", Password: "short"})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestAuthService_Login_BadCredentials(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	_, err := env.auth.Signup(ctx, SignupRequest{Username: "alice", Password: "password123"})
	require.NoError(t, err)

	// Wrong password and unknown user produce the same error.
	_, err = env.auth.Login(ctx, LoginRequest{Username: "alice", Password: "wrong password"})
	wrongPass := err
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)

	_, err = env.auth.Login(ctx, LoginRequest{Username: "nobody", Password: "password123"})
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
	assert.Equal(t, wrongPass.Error(), err.Error())
}
