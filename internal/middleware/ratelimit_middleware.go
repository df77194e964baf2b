package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/swych-ai/swych_api/internal/utils"
)

// Rate limiter for contact-form submissions. The form is unauthenticated, so
// the per-IP window is the only brake on abuse of the outbound email quota.
type ContactRateLimiter struct {
	mu       sync.Mutex
	limit    int
	window   time.Duration
	attempts map[string]*attemptInfo
}

type attemptInfo struct {
	count   int
	firstAt time.Time
}

// NewContactRateLimiter allows limit submissions per IP per window.
func NewContactRateLimiter(limit int, window time.Duration) *ContactRateLimiter {
	rl := &ContactRateLimiter{
		limit:    limit,
		window:   window,
		attempts: make(map[string]*attemptInfo),
	}
	go rl.cleanup()
	return rl
}

// Allow checks if IP can make another submission.
func (r *ContactRateLimiter) Allow(ip string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	info, exists := r.attempts[ip]
	if !exists {
		r.attempts[ip] = &attemptInfo{count: 1, firstAt: now}
		return true
	}

	// Reset if window expired
	if now.Sub(info.firstAt) > r.window {
		r.attempts[ip] = &attemptInfo{count: 1, firstAt: now}
		return true
	}

	if info.count >= r.limit {
		return false
	}
	info.count++
	return true
}

// Handle returns the Gin middleware enforcing the limit.
func (r *ContactRateLimiter) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !r.Allow(c.ClientIP()) {
			utils.Error(c, 429, "RATE_LIMITED", "Too many contact requests. Please try again later.")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (r *ContactRateLimiter) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	for range ticker.C {
		r.mu.Lock()
		now := time.Now()
		for ip, info := range r.attempts {
			if now.Sub(info.firstAt) > r.window {
				delete(r.attempts, ip)
			}
		}
		r.mu.Unlock()
	}
}
