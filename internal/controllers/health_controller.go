package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/osvaldoandrade/sparkgw/pkg/config"
)

type healthController struct{ cfg *config.Config }

func NewHealthController(cfg *config.Config) *healthController {
	return &healthController{cfg}
}

// Handle implements GET /health. Static identity only, no provider call.
func (h *healthController) Handle(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "healthy",
		"service":    "sparkgw",
		"project_id": h.cfg.ProjectID,
		"region":     h.cfg.Region,
	})
}
