package helpers

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestUserClaimsRoundTrip(t *testing.T) {
	claims := NewUserClaims(42, "guest", true, time.Hour)
	token, err := SignSession(claims, testSecret)
	require.NoError(t, err)

	parsed, err := ParseSession(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "user:42", parsed.SubmitterID())
	assert.Equal(t, "guest", parsed.Username)
	assert.True(t, parsed.IsAdmin())
	assert.False(t, parsed.IsGuest())
}

func TestGuestClaims(t *testing.T) {
	claims := NewGuestClaims(time.Hour)
	token, err := SignSession(claims, testSecret)
	require.NoError(t, err)

	parsed, err := ParseSession(token, testSecret)
	require.NoError(t, err)
	assert.True(t, parsed.IsGuest())
	assert.False(t, parsed.IsAdmin())
	assert.True(t, strings.HasPrefix(parsed.SubmitterID(), "session:"))

	// each guest session gets its own identity
	other := NewGuestClaims(time.Hour)
	assert.NotEqual(t, claims.SubmitterID(), other.SubmitterID())
}

func TestUserIDOnlyForAccountSubjects(t *testing.T) {
	id, ok := NewUserClaims(42, "maya", false, time.Hour).UserID()
	require.True(t, ok)
	assert.Equal(t, uint(42), id)

	_, ok = NewGuestClaims(time.Hour).UserID()
	assert.False(t, ok)
}

func TestParseSessionWrongSecret(t *testing.T) {
	token, err := SignSession(NewGuestClaims(time.Hour), testSecret)
	require.NoError(t, err)

	_, err = ParseSession(token, "other-secret")
	assert.Error(t, err)
}

func TestParseSessionExpired(t *testing.T) {
	token, err := SignSession(NewGuestClaims(-time.Minute), testSecret)
	require.NoError(t, err)

	_, err = ParseSession(token, testSecret)
	assert.Error(t, err)
}
