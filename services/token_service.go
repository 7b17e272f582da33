package services

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is how long an issued token stays valid. Role changes made
// server-side do not invalidate tokens already issued; the staleness
// window is bounded by this TTL.
const TokenTTL = 7 * 24 * time.Hour

// TokenClaims are the JWT claims embedded in each bearer token
type TokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken signs a 7-day HS256 token carrying the user's id and role
func IssueToken(secret string, userID uint, role string) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken parses and validates a bearer token, rejecting any signing
// method other than HS256
func VerifyToken(secret, tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// UserID parses the numeric subject claim
func (c *TokenClaims) UserID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid subject claim: %w", err)
	}
	return uint(id), nil
}
