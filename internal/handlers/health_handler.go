package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pmihealth/cardiology-api/internal/utils"
)

// Health is the liveness probe.
func (h *Handler) Health(c *gin.Context) {
	utils.JSONSuccess(c, http.StatusOK, "Cardiology Hospital API is running", gin.H{
		"status":      "OK",
		"environment": h.Cfg.Env,
	})
}

// NotFound answers unknown routes with a fixed payload listing the top-level
// paths, so clients always get a JSON envelope.
func (h *Handler) NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"success": false,
		"message": "Route not found",
		"availableRoutes": []string{
			"/api/auth",
			"/api/users",
			"/api/appointments",
			"/api/offers",
			"/api/slider",
			"/api/health",
		},
		"timestamp": utils.Timestamp(),
	})
}
