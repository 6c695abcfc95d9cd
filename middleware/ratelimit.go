package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// LoginRateLimit 登录接口限流中间件
// 每 IP 每窗口最多 maxAttempts 次尝试，超过则返回 429
func LoginRateLimit(maxAttempts int, window time.Duration) gin.HandlerFunc {
	var (
		mu       sync.Mutex
		attempts = make(map[string][]time.Time)
	)

	prune := func(ts []time.Time, cutoff time.Time) []time.Time {
		kept := ts[:0]
		for _, t := range ts {
			if t.After(cutoff) {
				kept = append(kept, t)
			}
		}
		return kept
	}

	// 定期清理过期数据
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			mu.Lock()
			cutoff := time.Now().Add(-window)
			for ip, ts := range attempts {
				if kept := prune(ts, cutoff); len(kept) == 0 {
					delete(attempts, ip)
				} else {
					attempts[ip] = kept
				}
			}
			mu.Unlock()
		}
	}()

	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		mu.Lock()
		ts := prune(attempts[ip], now.Add(-window))
		if len(ts) >= maxAttempts {
			attempts[ip] = ts
			mu.Unlock()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"code":    http.StatusTooManyRequests,
				"message": "登录尝试过于频繁，请稍后再试",
			})
			c.Abort()
			return
		}
		attempts[ip] = append(ts, now)
		mu.Unlock()

		c.Next()
	}
}
