package router

import (
	"BoraAli-App/internal/auth"
	"BoraAli-App/internal/config"
	"BoraAli-App/internal/handler"
	"BoraAli-App/internal/metrics"
	"BoraAli-App/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Handlers はルーターに登録するハンドラー群
// Authがnilの場合、認証APIは登録しない
type Handlers struct {
	Health   *handler.HealthHandler
	Places   *handler.PlacesHandler
	Reviews  *handler.ReviewsHandler
	Auth     *handler.AuthHandler
	Location *handler.LocationHandler
}

// Options はルーターの設定
type Options struct {
	Verifier    auth.TokenVerifier
	SearchLimit config.RateLimitConfig
}

// New はミドルウェアとすべてのAPIルートを登録したエンジンを作成
func New(h Handlers, opts Options) *gin.Engine {
	verifier := opts.Verifier
	if verifier == nil {
		verifier = auth.Disabled{}
	}
	requireAuth := middleware.Authenticate(verifier)
	optionalAuth := middleware.OptionalAuth(verifier)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logging(), middleware.Recovery())
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api")
	api.GET("/health", h.Health.Health)

	if h.Auth != nil {
		authGroup := api.Group("/auth")
		authGroup.POST("/signup", h.Auth.SignUp)
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/logout", requireAuth, h.Auth.Logout)
		authGroup.GET("/me", requireAuth, h.Auth.Me)
	}

	places := api.Group("/places")
	{
		places.GET("", h.Places.List)
		places.GET("/search", middleware.RateLimiter(opts.SearchLimit), h.Places.Search)
		places.GET("/search/batches/:batchId", h.Places.GetBatch)
		places.GET("/:id", optionalAuth, h.Places.Get)
		places.GET("/:id/reviews", h.Places.ListReviews)
		places.POST("", requireAuth, h.Places.Create)
		places.POST("/:id/reviews/preview", optionalAuth, h.Places.PreviewReview)
	}

	api.GET("/summaries/:taskId", h.Places.SummaryStatus)

	reviews := api.Group("/reviews", requireAuth)
	{
		reviews.POST("", h.Reviews.Create)
		reviews.PUT("/:id", h.Reviews.Update)
		reviews.DELETE("/:id", h.Reviews.Delete)
		reviews.POST("/:id/photos", h.Reviews.AddPhotos)
	}

	api.GET("/location", h.Location.Resolve)
	return r
}
