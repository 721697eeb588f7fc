package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskdeck/internal/apperr"
)

var testSecret = []byte("test-secret")

func TestIssueAndVerifyPair(t *testing.T) {
	m := NewManager(testSecret)

	pair, err := m.IssuePair(42)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	id, err := m.Verify(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, 42, id)

	id, err = m.Verify(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, 42, id)
}

func TestRefreshExpiryIsSixtyDaysOut(t *testing.T) {
	issued := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	m := NewManager(testSecret).WithClock(func() time.Time { return issued })

	pair, err := m.IssuePair(7)
	require.NoError(t, err)
	assert.Equal(t, issued.Add(RefreshTokenDays*24*time.Hour), pair.RefreshExpiresAt)
}

func TestExpiredAccessTokenRejectedWhileRefreshStillValid(t *testing.T) {
	// Issue a pair two hours in the past: the 1h access token is already
	// dead, the 60d refresh token is not.
	past := time.Now().Add(-2 * time.Hour)
	m := NewManager(testSecret).WithClock(func() time.Time { return past })

	pair, err := m.IssuePair(9)
	require.NoError(t, err)

	_, err = m.Verify(pair.AccessToken)
	require.Error(t, err)
	assert.True(t, apperr.IsUnauthenticated(err))

	id, err := m.Verify(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, 9, id)
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	other := NewManager([]byte("some-other-secret"))
	pair, err := other.IssuePair(3)
	require.NoError(t, err)

	m := NewManager(testSecret)
	_, err = m.Verify(pair.AccessToken)
	require.Error(t, err)
	assert.True(t, apperr.IsUnauthenticated(err))
}

func TestVerifyRejectsGarbage(t *testing.T) {
	m := NewManager(testSecret)
	_, err := m.Verify("not-a-token")
	require.Error(t, err)
	assert.True(t, apperr.IsUnauthenticated(err))
}
