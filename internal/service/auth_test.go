package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskdeck/internal/apperr"
)

func TestRegisterIssuesUserAndTokens(t *testing.T) {
	e := newEnv()

	result, err := e.auth.Register(context.Background(), "a@x.com", "password1", "A")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", result.User.Email)
	assert.Equal(t, "A", result.User.Name)
	assert.NotEmpty(t, result.Tokens.AccessToken)
	assert.NotEmpty(t, result.Tokens.RefreshToken)

	// The password never leaves as plaintext.
	assert.NotEqual(t, "password1", result.User.PasswordHash)
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	e := newEnv()
	e.registerUser("a@x.com")

	_, err := e.auth.Register(context.Background(), "a@x.com", "password2", "B")
	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))
}

func TestLoginRoundTrip(t *testing.T) {
	e := newEnv()
	user := e.registerUser("a@x.com")

	result, err := e.auth.Login(context.Background(), "a@x.com", "password1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, result.User.ID)

	id, err := e.tokens.Verify(result.Tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)
}

func TestLoginUnknownEmailIsNotFound(t *testing.T) {
	e := newEnv()

	_, err := e.auth.Login(context.Background(), "nobody@x.com", "password1")
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestLoginWrongPasswordIsUnauthenticated(t *testing.T) {
	e := newEnv()
	e.registerUser("a@x.com")

	_, err := e.auth.Login(context.Background(), "a@x.com", "wrong-password")
	require.Error(t, err)
	assert.True(t, apperr.IsUnauthenticated(err))
}

func TestRefreshRotatesPairForSameUser(t *testing.T) {
	e := newEnv()
	user := e.registerUser("a@x.com")

	login, err := e.auth.Login(context.Background(), "a@x.com", "password1")
	require.NoError(t, err)

	rotated, err := e.auth.Refresh(context.Background(), login.Tokens.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, rotated.User.ID)
	assert.NotEmpty(t, rotated.Tokens.AccessToken)
	assert.NotEmpty(t, rotated.Tokens.RefreshToken)

	id, err := e.tokens.Verify(rotated.Tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)
}

func TestRefreshWithGarbageIsUnauthenticated(t *testing.T) {
	e := newEnv()

	_, err := e.auth.Refresh(context.Background(), "not-a-token")
	require.Error(t, err)
	assert.True(t, apperr.IsUnauthenticated(err))
}
