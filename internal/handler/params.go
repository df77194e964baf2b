package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// intQuery parses an integer query parameter, silently falling back to the
// default when the parameter is absent or unparseable. Pagination parameters
// are the only ones with this lenient policy.
func intQuery(c *gin.Context, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

// ratingQuery parses the rating filter. Values that fail to parse or fall
// outside 1..5 are ignored (returned as 0, meaning no filter).
func ratingQuery(c *gin.Context) int {
	v, err := strconv.Atoi(c.Query("rating"))
	if err != nil || v < 1 || v > 5 {
		return 0
	}
	return v
}

// idQuery parses the required id query parameter. ok is false unless the
// value is a positive integer.
func idQuery(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Query("id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
