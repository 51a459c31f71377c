package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager(testSecret, "amp-report", time.Hour)

	token, expiresAt, err := m.Issue("user-1", "owner@example.com")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "owner@example.com", claims.Email)
	assert.Equal(t, "amp-report", claims.Issuer)
	assert.NotEmpty(t, claims.ID)

	subject, err := m.VerifySubject(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", subject)
}

func TestTokenManager_Expired(t *testing.T) {
	issuedAt := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewTokenManager(testSecret, "amp-report", time.Hour)
	m.now = fixedClock(issuedAt)

	token, _, err := m.Issue("user-1", "")
	require.NoError(t, err)

	m.now = fixedClock(issuedAt.Add(2 * time.Hour))
	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_Rejects(t *testing.T) {
	m := NewTokenManager(testSecret, "amp-report", time.Hour)

	otherSecret := NewTokenManager("ffffffffffffffffffffffffffffffff", "amp-report", time.Hour)
	forged, _, err := otherSecret.Issue("user-1", "")
	require.NoError(t, err)

	otherIssuer := NewTokenManager(testSecret, "someone-else", time.Hour)
	foreign, _, err := otherIssuer.Issue("user-1", "")
	require.NoError(t, err)

	noSubject, _, err := m.Issue("", "")
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			Issuer:    "amp-report",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"wrong secret": forged,
		"wrong issuer": foreign,
		"no subject":   noSubject,
		"alg none":     none,
		"garbage":      "not-a-token",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := m.VerifySubject(token)
			assert.True(t, errors.Is(err, ErrInvalidToken), "got %v", err)
		})
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery", hash)

	assert.NoError(t, CheckPassword(hash, "correct horse battery"))
	assert.ErrorIs(t, CheckPassword(hash, "wrong password"), ErrPasswordMismatch)
}

func TestHashPassword_TooShort(t *testing.T) {
	_, err := HashPassword("short")
	assert.Error(t, err)
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	err := CheckPassword("not-a-bcrypt-hash", "whatever1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrPasswordMismatch)
}
