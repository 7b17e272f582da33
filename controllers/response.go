package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/agnivapalit/fixfinder/config"
	"github.com/agnivapalit/fixfinder/middleware"
	"github.com/agnivapalit/fixfinder/models"
)

// respondError writes the standard error envelope
func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// respondData writes the standard success envelope
func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

// isUniqueViolation reports whether err is a duplicate-key constraint
// violation. String matching works with both PostgreSQL and SQLite.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique")
}

// currentUser loads the authenticated caller's row. On failure it writes
// the error response and returns ok=false.
func currentUser(c *gin.Context) (*models.User, bool) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not extract user information")
		return nil, false
	}

	db := config.GetDB()
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		respondError(c, http.StatusNotFound, "USER_NOT_FOUND", "User account not found")
		return nil, false
	}

	return &user, true
}
