package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/osvaldoandrade/sparkgw/internal/services"
)

type getResultsController struct{ svc services.ResultsService }

func NewGetResultsController(svc services.ResultsService) *getResultsController {
	return &getResultsController{svc}
}

// Handle implements GET /results. Bucket and path fall back to the
// configured defaults; per-key failures stay inside the bundle and only an
// unrecoverable provider error produces a 500.
func (h *getResultsController) Handle(c *gin.Context) {
	bucket := c.Query("bucket")
	pathPrefix := c.Query("path")

	bundle, err := h.svc.Fetch(c.Request.Context(), bucket, pathPrefix)
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, providerMessage(err))
		return
	}
	c.JSON(http.StatusOK, bundle)
}
