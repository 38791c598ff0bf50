package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTServiceReadsMontessaEnv(t *testing.T) {
	t.Setenv("MONTESSA_JWT_SECRET", "unit-secret")
	t.Setenv("MONTESSA_JWT_ACCESS_EXPIRY_HOURS", "2")

	svc := NewJWTService()
	pair, err := svc.GenerateTokenPair(uuid.New(), uuid.New(), "admin@demo.school", []string{"admin"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.WithinDuration(t, time.Now().Add(2*time.Hour), pair.ExpiresAt, time.Minute)

	claims, err := svc.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin@demo.school", claims.Email)
	assert.True(t, claims.HasRole("admin"))
	assert.False(t, claims.HasRole("teacher"))
}

func TestJWTServiceIgnoresMalformedExpiry(t *testing.T) {
	t.Setenv("MONTESSA_JWT_SECRET", "unit-secret")
	t.Setenv("MONTESSA_JWT_ACCESS_EXPIRY_HOURS", "bogus")

	svc := NewJWTService()
	pair, err := svc.GenerateTokenPair(uuid.New(), uuid.New(), "a@demo.school", nil)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), pair.ExpiresAt, time.Minute)
}

func TestValidateTokenRejectsForeignSecret(t *testing.T) {
	t.Setenv("MONTESSA_JWT_SECRET", "secret-one")
	issuer := NewJWTService()
	pair, err := issuer.GenerateTokenPair(uuid.New(), uuid.New(), "a@demo.school", nil)
	require.NoError(t, err)

	t.Setenv("MONTESSA_JWT_SECRET", "secret-two")
	verifier := NewJWTService()
	_, err = verifier.ValidateToken(pair.AccessToken)
	assert.Error(t, err)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter2!")
	require.NoError(t, err)
	assert.True(t, CheckPassword("hunter2!", hash))
	assert.False(t, CheckPassword("hunter3!", hash))
}
