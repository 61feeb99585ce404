package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"BoraAli-App/internal/auth"
	"BoraAli-App/internal/config"
	"BoraAli-App/internal/domain/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, RequestIDFromContext(c))
	})

	t.Run("未指定なら払い出す", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
		assert.Equal(t, rec.Header().Get("X-Request-ID"), rec.Body.String())
	})

	t.Run("指定されたIDを引き継ぐ", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "abc")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, "abc", rec.Header().Get("X-Request-ID"))
	})
}

func TestRateLimiter(t *testing.T) {
	r := gin.New()
	r.Use(RateLimiter(config.RateLimitConfig{Requests: 2, Interval: time.Minute}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{200, 200, 429}, codes)

	t.Run("別のIPは独立して数える", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.2:1234"
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("無効な設定は素通し", func(t *testing.T) {
		r := gin.New()
		r.Use(RateLimiter(config.RateLimitConfig{}))
		r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
		for i := 0; i < 5; i++ {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			assert.Equal(t, http.StatusOK, rec.Code)
		}
	})
}

func TestAuthenticate(t *testing.T) {
	verifier := auth.NewJWTVerifier("secret")
	token, err := verifier.Sign("user-1", "u@example.com", time.Hour)
	require.NoError(t, err)

	r := gin.New()
	r.GET("/private", Authenticate(verifier), func(c *gin.Context) {
		p := PrincipalFromContext(c)
		fromCtx := model.PrincipalFromContext(c.Request.Context())
		assert.Equal(t, p, fromCtx)
		c.String(http.StatusOK, p.ID)
	})
	r.GET("/public", OptionalAuth(verifier), func(c *gin.Context) {
		if p := PrincipalFromContext(c); p != nil {
			c.String(http.StatusOK, p.ID)
			return
		}
		c.String(http.StatusOK, "anon")
	})

	do := func(path, header string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	t.Run("トークンなしは401", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, do("/private", "").Code)
	})
	t.Run("不正なトークンは401", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, do("/private", "Bearer nope").Code)
		assert.Equal(t, http.StatusUnauthorized, do("/private", "Basic abc").Code)
	})
	t.Run("正しいトークンは通す", func(t *testing.T) {
		rec := do("/private", "Bearer "+token)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "user-1", rec.Body.String())
	})
	t.Run("任意認証はトークンなしでも通す", func(t *testing.T) {
		assert.Equal(t, "anon", do("/public", "").Body.String())
		assert.Equal(t, "anon", do("/public", "Bearer nope").Body.String())
		assert.Equal(t, "user-1", do("/public", "Bearer "+token).Body.String())
	})
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), Logging(), Recovery())
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil).WithContext(context.Background()))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
