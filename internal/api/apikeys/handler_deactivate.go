package apikeys

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"tinytoken-dashboard/internal/domain/keys"
)

// DeactivateKey resolves a masked key back to its full form by re-fetching
// the upstream list and matching on the computed mask, then deactivates the
// resolved key. Two keys sharing a five-character prefix would collide here;
// the first match wins.
func (h *Handler) DeactivateKey(c *gin.Context) {
	masked := c.Param("key")
	if masked == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "API key is required"})
		return
	}

	all, err := h.keys.ListKeys(c.Request.Context())
	if err != nil {
		logrus.WithError(err).Error("Failed to fetch API keys for deactivation")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate API key"})
		return
	}

	match, ok := keys.FindByMask(all, masked)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Full API key not found for masked key"})
		return
	}

	if err := h.keys.Deactivate(c.Request.Context(), match.APIKey); err != nil {
		logrus.WithError(err).WithField("key", masked).Error("Failed to deactivate API key")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate API key"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "API key deactivated"})
}
