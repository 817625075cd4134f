package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const adminKeyHeader = "x-admin-key"

// RequireAdminKey guards key-management routes with the shared TinyToken
// admin credential.
func RequireAdminKey(adminKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if adminKey == "" {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Admin key not configured"})
			return
		}

		supplied := strings.TrimSpace(c.GetHeader(adminKeyHeader))
		if supplied == "" {
			logrus.Debug("Missing x-admin-key header")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized - Invalid admin key"})
			return
		}
		if subtle.ConstantTimeCompare([]byte(supplied), []byte(adminKey)) != 1 {
			logrus.Debug("Invalid x-admin-key header")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized - Invalid admin key"})
			return
		}

		c.Next()
	}
}
