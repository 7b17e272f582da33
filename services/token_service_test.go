package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func TestIssueAndVerifyToken(t *testing.T) {
	token, err := IssueToken("secret", 42, "TECHNICIAN")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := VerifyToken("secret", token)
	assert.NoError(t, err)
	assert.Equal(t, "TECHNICIAN", claims.Role)

	userID, err := claims.UserID()
	assert.NoError(t, err)
	assert.Equal(t, uint(42), userID)

	ttl := time.Until(claims.ExpiresAt.Time)
	assert.Greater(t, ttl, TokenTTL-time.Minute)
	assert.LessOrEqual(t, ttl, TokenTTL)
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	token, err := IssueToken("secret", 42, "CUSTOMER")
	assert.NoError(t, err)

	_, err = VerifyToken("other-secret", token)
	assert.Error(t, err)
}

func TestVerifyToken_Expired(t *testing.T) {
	claims := TokenClaims{
		Role: "CUSTOMER",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "42",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	assert.NoError(t, err)

	_, err = VerifyToken("secret", token)
	assert.Error(t, err)
}

func TestVerifyToken_RejectsUnsignedAlg(t *testing.T) {
	claims := TokenClaims{
		Role: "ADMIN",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	assert.NoError(t, err)

	_, err = VerifyToken("secret", token)
	assert.Error(t, err)
}

func TestTokenClaims_InvalidSubject(t *testing.T) {
	claims := &TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "not-a-number"},
	}

	_, err := claims.UserID()
	assert.Error(t, err)
}
