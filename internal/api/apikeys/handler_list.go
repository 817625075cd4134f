package apikeys

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"tinytoken-dashboard/internal/domain/keys"
)

// ListKeys returns every issued key in masked form. The full key value never
// leaves this handler; only the first five characters plus a marker do.
func (h *Handler) ListKeys(c *gin.Context) {
	all, err := h.keys.ListKeys(c.Request.Context())
	if err != nil {
		logrus.WithError(err).Error("Failed to fetch API keys")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch API keys",
			"keys":  []keys.Key{},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"keys": keys.MaskAll(all)})
}
