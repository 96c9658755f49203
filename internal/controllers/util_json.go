package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func errorJSON(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, gin.H{"status": "error", "message": message})
}

// providerMessage extracts the provider's own error text so it reaches the
// client verbatim, without transport wrapping.
func providerMessage(err error) string {
	if st, ok := status.FromError(err); ok {
		return st.Message()
	}
	return err.Error()
}

// providerHTTPStatus maps a provider error to an HTTP status: gRPC NotFound
// becomes 404, everything else 500.
func providerHTTPStatus(err error) int {
	if status.Code(err) == codes.NotFound {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
