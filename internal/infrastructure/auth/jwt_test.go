package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelpop-inc/reelpop/internal/shared/config"
)

const testSecret = "test-secret"

func signToken(t *testing.T, method jwt.SigningMethod, key any, claims Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func validClaims() Claims {
	now := time.Now()
	return Claims{
		Email: "a@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			Audience:  jwt.ClaimStrings{"authenticated"},
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
}

func TestTokenVerifier(t *testing.T) {
	v := NewTokenVerifier(config.AuthConfig{JWTSecret: testSecret, Audience: "authenticated"})

	t.Run("valid token", func(t *testing.T) {
		claims, err := v.Verify(signToken(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims()))
		require.NoError(t, err)
		assert.Equal(t, "user-1", claims.UserID())
		assert.Equal(t, "a@example.com", claims.Email)
	})

	t.Run("wrong secret", func(t *testing.T) {
		_, err := v.Verify(signToken(t, jwt.SigningMethodHS256, []byte("other"), validClaims()))
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		c := validClaims()
		c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
		_, err := v.Verify(signToken(t, jwt.SigningMethodHS256, []byte(testSecret), c))
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("no expiry", func(t *testing.T) {
		c := validClaims()
		c.ExpiresAt = nil
		_, err := v.Verify(signToken(t, jwt.SigningMethodHS256, []byte(testSecret), c))
		assert.Error(t, err)
	})

	t.Run("wrong audience", func(t *testing.T) {
		c := validClaims()
		c.Audience = jwt.ClaimStrings{"anon"}
		_, err := v.Verify(signToken(t, jwt.SigningMethodHS256, []byte(testSecret), c))
		assert.Error(t, err)
	})

	t.Run("missing subject", func(t *testing.T) {
		c := validClaims()
		c.Subject = ""
		_, err := v.Verify(signToken(t, jwt.SigningMethodHS256, []byte(testSecret), c))
		assert.ErrorIs(t, err, ErrMissingSubject)
	})

	t.Run("other algorithm", func(t *testing.T) {
		_, err := v.Verify(signToken(t, jwt.SigningMethodHS512, []byte(testSecret), validClaims()))
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := v.Verify("not-a-token")
		assert.Error(t, err)
	})
}
