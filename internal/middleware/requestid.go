package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const headerRequestID = "X-Request-ID"

// RequestID は呼び出し元が指定しなかった場合にリクエストIDを払い出す
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(headerRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(ContextKeyRequestID, rid)
		c.Header(headerRequestID, rid)
		c.Next()
	}
}

// RequestIDFromContext はリクエストIDを取り出す
func RequestIDFromContext(c *gin.Context) string {
	return c.GetString(ContextKeyRequestID)
}
