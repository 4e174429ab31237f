package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edwardvalandre-netizen/ugel-monitor/internal/database"
)

func (h *Handler) Health(c *gin.Context) {
	if err := database.Ping(h.db); err != nil {
		h.logger(c).WithError(err).Warn("health check failed")
		c.String(http.StatusServiceUnavailable, "database unavailable")
		return
	}
	c.String(http.StatusOK, "ok")
}
