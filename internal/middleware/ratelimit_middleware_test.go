package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestContactRateLimiterAllow(t *testing.T) {
	rl := NewContactRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("10.0.0.1"), "attempt %d should pass", i+1)
	}
	assert.False(t, rl.Allow("10.0.0.1"))

	// Other IPs are tracked independently.
	assert.True(t, rl.Allow("10.0.0.2"))
}

func TestContactRateLimiterWindowReset(t *testing.T) {
	rl := NewContactRateLimiter(1, 20*time.Millisecond)

	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))

	time.Sleep(30 * time.Millisecond)
	assert.True(t, rl.Allow("10.0.0.1"))
}

func TestContactRateLimiterHandle(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl := NewContactRateLimiter(1, time.Minute)

	router := gin.New()
	router.POST("/api/send-email", rl.Handle(), func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "ok"})
	})

	do := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/send-email", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, 200, do().Code)

	w := do()
	assert.Equal(t, 429, w.Code)
	assert.Contains(t, w.Body.String(), "RATE_LIMITED")
}
