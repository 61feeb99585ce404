package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthChecker は依存サービスの疎通確認
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// HealthHandler はヘルスチェックのHTTPハンドラー
type HealthHandler struct {
	checks map[string]HealthChecker
}

// NewHealthHandler は新しいHealthHandlerインスタンスを作成
func NewHealthHandler(checks map[string]HealthChecker) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// Health GET /api/health
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	status := http.StatusOK
	deps := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check.HealthCheck(ctx); err != nil {
			deps[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		deps[name] = "ok"
	}

	state := "ok"
	if status != http.StatusOK {
		state = "degraded"
	}
	c.JSON(status, gin.H{
		"status":       state,
		"message":      "BoraAli API is running",
		"dependencies": deps,
	})
}
