package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/osvaldoandrade/sparkgw/internal/services"
)

type jobStatusController struct{ svc services.JobService }

func NewJobStatusController(svc services.JobService) *jobStatusController {
	return &jobStatusController{svc}
}

// Handle implements GET /spark/job/status. Every call re-fetches the job
// from the provider; an unknown job id surfaces as 404.
func (h *jobStatusController) Handle(c *gin.Context) {
	jobID := c.Query("job_id")
	if jobID == "" {
		errorJSON(c, http.StatusBadRequest, "Missing required parameter: job_id")
		return
	}

	view, err := h.svc.Status(c.Request.Context(), jobID)
	if err != nil {
		errorJSON(c, providerHTTPStatus(err), providerMessage(err))
		return
	}
	c.JSON(http.StatusOK, view)
}
