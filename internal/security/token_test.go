package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret-of-at-least-32-characters"

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager(testSecret)

	token, err := tm.GenerateAccessToken(7, "admin@example.com", []string{RoleAdmin}, time.Hour)
	require.NoError(t, err)

	claims, err := tm.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int32(7), claims.UserID)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.True(t, claims.HasAnyRole(RoleAdmin, RoleEmployee))
	assert.False(t, claims.HasAnyRole("customer"))
}

func TestValidateExpiredToken(t *testing.T) {
	tm := NewTokenManager(testSecret)

	token, err := tm.GenerateAccessToken(7, "", []string{RoleEmployee}, -time.Minute)
	require.NoError(t, err)

	_, err = tm.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := NewTokenManager(testSecret).GenerateAccessToken(7, "", nil, time.Hour)
	require.NoError(t, err)

	_, err = NewTokenManager("another-secret-that-is-also-32-chars!").ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateGarbageToken(t *testing.T) {
	_, err := NewTokenManager(testSecret).ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
