package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Error writes the flat error shape consumed by the site front-end:
// {"error": message, "code": CODE}.
func Error(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{"error": message, "code": code})
}

// FromError maps a service error to an HTTP response. Known *APIError values
// keep their status and code; anything else is logged server-side and
// reported as a generic 500 so internals never leak.
func FromError(c *gin.Context, err error) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		Error(c, apiErr.Status, apiErr.Code, apiErr.Message)
		return
	}
	log.Error().Err(err).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Msg("unexpected error")
	Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
}
