package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimit 按 IP 限流，窗口 window 内最多 maxAttempts 次，超过返回 429
func RateLimit(maxAttempts int, window time.Duration) gin.HandlerFunc {
	if maxAttempts <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	type entry struct {
		limiter  *rate.Limiter
		lastSeen time.Time
	}
	var (
		mu    sync.Mutex
		store = make(map[string]*entry)
	)
	every := window / time.Duration(maxAttempts)

	// 定期清理长时间未访问的 IP
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			mu.Lock()
			cutoff := time.Now().Add(-2 * window)
			for ip, e := range store {
				if e.lastSeen.Before(cutoff) {
					delete(store, ip)
				}
			}
			mu.Unlock()
		}
	}()

	return func(c *gin.Context) {
		ip := c.ClientIP()
		mu.Lock()
		e, ok := store[ip]
		if !ok {
			e = &entry{limiter: rate.NewLimiter(rate.Every(every), maxAttempts)}
			store[ip] = e
		}
		e.lastSeen = time.Now()
		allowed := e.limiter.Allow()
		mu.Unlock()

		if !allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"code":    http.StatusTooManyRequests,
				"message": "Too many requests, please try again later.",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
