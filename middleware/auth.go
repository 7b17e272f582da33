package middleware

import (
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"

	"github.com/agnivapalit/fixfinder/config"
	"github.com/agnivapalit/fixfinder/services"
)

// Accept "Bearer <token>" case-insensitively with surrounding whitespace
var bearerRe = regexp.MustCompile(`(?i)^Bearer\s+(\S+)\s*$`)

// RequireAuth verifies the bearer token and attaches the caller's identity
// and role to the request context
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")

		match := bearerRe.FindStringSubmatch(header)
		if match == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "MISSING_TOKEN",
					"message": "Missing token",
				},
			})
			return
		}

		cfg := config.GetConfig()
		claims, err := services.VerifyToken(cfg.JWTSecret, match[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_TOKEN",
					"message": "Invalid token",
				},
			})
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_TOKEN",
					"message": "Invalid token",
				},
			})
			return
		}

		c.Set("user_id", userID)
		c.Set("user_role", claims.Role)

		c.Next()
	}
}

// RequireRole rejects callers whose token role is not in the allowed set.
// Must run after RequireAuth.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, err := GetUserRole(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Could not extract user information",
				},
			})
			return
		}

		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "Insufficient permissions to access this resource",
			},
		})
	}
}

// GetUserID extracts the authenticated user's id from the Gin context
func GetUserID(c *gin.Context) (uint, error) {
	userID, exists := c.Get("user_id")
	if !exists {
		return 0, &AuthError{Code: "MISSING_USER_ID", Message: "User ID not found in context"}
	}

	id, ok := userID.(uint)
	if !ok {
		return 0, &AuthError{Code: "INVALID_USER_ID", Message: "User ID is not a uint"}
	}

	return id, nil
}

// GetUserRole extracts the authenticated user's role from the Gin context
func GetUserRole(c *gin.Context) (string, error) {
	role, exists := c.Get("user_role")
	if !exists {
		return "", &AuthError{Code: "MISSING_ROLE", Message: "Role not found in context"}
	}

	roleStr, ok := role.(string)
	if !ok {
		return "", &AuthError{Code: "INVALID_ROLE", Message: "Role is not a string"}
	}

	return roleStr, nil
}

// AuthError represents an authentication error
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}
