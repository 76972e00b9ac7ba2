package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestJWTService() *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  15 * time.Minute,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "mentorhub-test",
	})
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	svc := newTestJWTService()

	pair, err := svc.GenerateTokenPair(Subject{UserID: "m1", Email: "mentor@example.com", Role: "mentor"})
	require.NoError(t, err)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, 900, pair.ExpiresIn)
	assert.Equal(t, 86400, pair.RefreshExpiresIn)

	claims, err := svc.ValidateAndExtractClaims(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "m1", claims.UserID)
	assert.Equal(t, "mentor", claims.Role)
	assert.Equal(t, "mentorhub-test", claims.Issuer)
}

func TestValidateTokenExpired(t *testing.T) {
	svc := newTestJWTService()
	issued := time.Now().Add(-time.Hour)
	svc.now = func() time.Time { return issued }

	pair, err := svc.GenerateTokenPair(Subject{UserID: "m1", Email: "mentor@example.com"})
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateToken(pair.AccessToken)
	assert.True(t, errors.Is(err, ErrExpiredToken))
}

func TestValidateTokenWrongSecret(t *testing.T) {
	pair, err := newTestJWTService().GenerateTokenPair(Subject{UserID: "m1", Email: "a@b.co"})
	require.NoError(t, err)

	other := NewJWTService(JWTConfig{SecretKey: "other", AccessTokenExp: time.Minute})
	_, err = other.ValidateToken(pair.AccessToken)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc.def")
	require.NoError(t, err)
	assert.Equal(t, "abc.def", token)

	token, err = ExtractBearerToken("abc.def")
	require.NoError(t, err)
	assert.Equal(t, "abc.def", token)

	_, err = ExtractBearerToken("  ")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPasswordWithCost("s3cret-pass", bcrypt.MinCost)
	require.NoError(t, err)

	assert.True(t, CheckPassword(hash, "s3cret-pass"))
	assert.False(t, CheckPassword(hash, "wrong"))
}
