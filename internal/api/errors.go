package api

import (
	"github.com/gin-gonic/gin"
)

// Error codes returned in JSON error bodies
const (
	ErrCodeInvalidRequest = "invalid_request"
	ErrCodeInternalError  = "internal_error"
	ErrCodeCancelled      = "cancelled"
)

// respondError writes a JSON error body and aborts the request
func respondError(c *gin.Context, status int, code, message string) {
	errorsTotal.WithLabelValues(code).Inc()

	resp := map[string]string{
		"code":    code,
		"message": message,
	}
	if id := c.GetString(RequestIDKey); id != "" {
		resp["request_id"] = id
	}
	c.AbortWithStatusJSON(status, resp)
}
