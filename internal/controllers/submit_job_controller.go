package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/osvaldoandrade/sparkgw/internal/services"
	"github.com/osvaldoandrade/sparkgw/pkg/domain"
)

type submitJobController struct{ svc services.JobService }

func NewSubmitJobController(svc services.JobService) *submitJobController {
	return &submitJobController{svc}
}

// Handle implements POST /create/job. A missing main_python_file is rejected
// before any provider call.
func (h *submitJobController) Handle(c *gin.Context) {
	var req domain.SubmitJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "invalid body")
		return
	}
	if strings.TrimSpace(req.MainPythonFile) == "" {
		errorJSON(c, http.StatusBadRequest, "Missing required field: main_python_file")
		return
	}

	resp, err := h.svc.Submit(c.Request.Context(), req)
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, providerMessage(err))
		return
	}
	c.JSON(http.StatusCreated, resp)
}
