package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"BoraAli-App/internal/config"
	"BoraAli-App/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// RateLimiter はクライアントIPごとのトークンバケットで流量を制限する
// 一定時間アクセスのないIPのリミッターは破棄される
func RateLimiter(cfg config.RateLimitConfig) gin.HandlerFunc {
	if cfg.Requests <= 0 || cfg.Interval <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	perRequest := cfg.Interval / time.Duration(cfg.Requests)
	if perRequest <= 0 {
		perRequest = time.Second
	}

	limiters := cache.New(cfg.Interval*2, cfg.Interval*4)
	var mu sync.Mutex

	return func(c *gin.Context) {
		key := c.ClientIP()

		mu.Lock()
		var limiter *rate.Limiter
		if v, ok := limiters.Get(key); ok {
			limiter = v.(*rate.Limiter)
		} else {
			limiter = rate.NewLimiter(rate.Every(perRequest), cfg.Requests)
		}
		// アクセスのたびに有効期限を延長する
		limiters.SetDefault(key, limiter)
		allowed := limiter.Allow()
		mu.Unlock()

		if !allowed {
			metrics.RateLimitedTotal.Inc()
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(perRequest.Seconds()))))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Muitas requisições. Tente novamente em instantes."})
			return
		}
		c.Next()
	}
}
