package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClaims(userID string, expiresIn time.Duration) UserClaims {
	now := time.Now()
	return UserClaims{
		UserID: userID,
		Role:   "guest",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
			Issuer:    "test-issuer",
			Audience:  jwt.ClaimStrings{"test-audience"},
		},
	}
}

func TestGenerateAndValidate_Success(t *testing.T) {
	a := NewJWTAuthenticator("test-audience", "test-issuer")

	token, err := a.GenerateToken(newTestClaims("user-123", time.Hour), "secret")
	require.NoError(t, err)

	claims := &UserClaims{}
	_, err = a.ValidateTokenWithClaims(token, "secret", claims)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "guest", claims.Role)
}

func TestValidate_ExpiredToken(t *testing.T) {
	a := NewJWTAuthenticator("test-audience", "test-issuer")

	token, err := a.GenerateToken(newTestClaims("u1", -time.Minute), "secret")
	require.NoError(t, err)

	_, err = a.ValidateTokenWithClaims(token, "secret", &UserClaims{})
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestValidate_WrongSecret(t *testing.T) {
	a := NewJWTAuthenticator("test-audience", "test-issuer")

	token, err := a.GenerateToken(newTestClaims("u2", time.Hour), "right-secret")
	require.NoError(t, err)

	_, err = a.ValidateTokenWithClaims(token, "wrong-secret", &UserClaims{})
	assert.Error(t, err)
}

func TestValidate_WrongAudience(t *testing.T) {
	a := NewJWTAuthenticator("test-audience", "test-issuer")
	b := NewJWTAuthenticator("other-audience", "test-issuer")

	token, err := a.GenerateToken(newTestClaims("u3", time.Hour), "secret")
	require.NoError(t, err)

	_, err = b.ValidateTokenWithClaims(token, "secret", &UserClaims{})
	assert.Error(t, err)
}

func TestValidate_MissingExpiration(t *testing.T) {
	a := NewJWTAuthenticator("test-audience", "test-issuer")

	claims := newTestClaims("u4", time.Hour)
	claims.ExpiresAt = nil
	token, err := a.GenerateToken(claims, "secret")
	require.NoError(t, err)

	_, err = a.ValidateTokenWithClaims(token, "secret", &UserClaims{})
	assert.Error(t, err)
}

func TestValidate_MalformedToken(t *testing.T) {
	a := NewJWTAuthenticator("test-audience", "test-issuer")

	_, err := a.ValidateTokenWithClaims("not.a.jwt", "secret", &UserClaims{})
	assert.Error(t, err)
}
