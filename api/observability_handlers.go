package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handlers) GetTraces(c *gin.Context) {
	if h.Traces == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "tracing disabled"})
		return
	}
	c.JSON(http.StatusOK, h.Traces.List())
}

func (h *Handlers) GetAlerts(c *gin.Context) {
	if h.Alerts == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "alerts disabled"})
		return
	}
	c.JSON(http.StatusOK, h.Alerts.List())
}
