package testutil

import (
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/agnivapalit/fixfinder/services"
)

// AuthHeader issues a signed token for the given identity and formats it
// as an Authorization header value
func AuthHeader(t *testing.T, secret string, userID uint, role string) string {
	t.Helper()

	token, err := services.IssueToken(secret, userID, role)
	if err != nil {
		t.Fatalf("Failed to issue test token: %v", err)
	}
	return "Bearer " + token
}

// SetAuthContext seeds a Gin context with the identity keys the auth
// middleware would set
func SetAuthContext(c *gin.Context, userID uint, role string) {
	c.Set("user_id", userID)
	c.Set("user_role", role)
}
