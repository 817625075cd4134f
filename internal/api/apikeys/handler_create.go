package apikeys

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const defaultDescription = "Generated from dashboard"

// CreateKey issues a new key for an entitled subscriber. The response body is
// the only place the full key value ever appears; it cannot be retrieved
// again.
func (h *Handler) CreateKey(c *gin.Context) {
	var body struct {
		UserEmail   string `json:"user_email"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.UserEmail == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_email is required"})
		return
	}

	if !h.entitlement.HasActiveSubscription(body.UserEmail) {
		c.JSON(http.StatusForbidden, gin.H{
			"error":                 "Active subscription required",
			"subscription_required": true,
		})
		return
	}

	description := body.Description
	if description == "" {
		description = defaultDescription
	}

	created, err := h.keys.CreateKey(c.Request.Context(), body.UserEmail, description)
	if err != nil {
		logrus.WithError(err).WithField("user_email", body.UserEmail).Error("Failed to create API key")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create API key"})
		return
	}

	c.JSON(http.StatusOK, created)
}
