package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/harentsoaR/homecare-scheduler/internal/models"
)

const (
	defaultActivityLimit = 20
	maxActivityLimit     = 100
)

// GetActivity lists the team's recent actions, newest first
// (e.g. /api/activity?limit=50).
func (h *Handler) GetActivity(c *gin.Context) {
	limit := int64(defaultActivityLimit)
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = min(n, maxActivityLimit)
	}

	events, err := h.Activity.Recent(c.Request.Context(), teamOf(c), limit)
	if err != nil {
		log.Error().Err(err).Msg("activity: list")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve activity"})
		return
	}
	if events == nil {
		events = make([]models.Activity, 0)
	}
	c.JSON(http.StatusOK, gin.H{"activity": events})
}
