package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"BoraAli-App/internal/auth"
	"BoraAli-App/internal/config"
	"BoraAli-App/internal/domain/model"
	"BoraAli-App/internal/domain/repository"
	"BoraAli-App/internal/domain/service"
	"BoraAli-App/internal/handler"
	"BoraAli-App/internal/infrastructure/ai"
	"BoraAli-App/internal/infrastructure/cache"
	"BoraAli-App/internal/infrastructure/database"
	"BoraAli-App/internal/infrastructure/firestore"
	"BoraAli-App/internal/infrastructure/geoip"
	"BoraAli-App/internal/logger"
	repo "BoraAli-App/internal/repository"
	"BoraAli-App/internal/router"
	"BoraAli-App/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("⚠️ .envファイルが見つかりません。システム環境変数を使用します")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("❌ 設定の読み込みに失敗")
	}
	logger.SetGlobalLogger(logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat}))
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("❌ 必要な環境変数が設定されていません")
	}
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	checks := map[string]handler.HealthChecker{}

	// 永続化: DATABASE_URLがあれば直接接続、なければSupabase
	var (
		places   repository.PlacesRepository
		reviews  repository.ReviewsRepository
		authRepo repository.AuthRepository
	)
	if cfg.Supabase.URL != "" {
		log.Info().Msg("🔧 Supabaseクライアントを初期化中...")
		sb, err := database.NewSupabaseClient(cfg.Supabase.URL, cfg.Supabase.AnonKey)
		if err != nil {
			log.Fatal().Err(err).Msg("❌ Supabaseクライアント初期化失敗")
		}
		places = repo.NewSupabasePlacesRepository(sb)
		reviews = repo.NewSupabaseReviewsRepository(sb)
		authRepo = repo.NewSupabaseAuthRepository(sb)
		checks["supabase"] = sb
	}
	if cfg.DatabaseURL != "" {
		log.Info().Msg("🔧 PostgreSQLに接続中...")
		pg, err := database.NewPostgreSQLClient(cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("❌ PostgreSQL接続失敗")
		}
		defer pg.Close()
		places = repo.NewPostgresPlacesRepository(pg)
		reviews = repo.NewPostgresReviewsRepository(pg)
		checks["postgres"] = pg
	}

	// 生成AI
	gemini, err := ai.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.AITimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Geminiクライアント初期化失敗")
	}
	summarizer := ai.NewSummaryGenerator(gemini)

	// 候補キャッシュ: Redisがなければプロセス内
	var suggestionCache cache.Cache = cache.NewMemoryCache(cfg.SuggestionCacheTTL, 10*time.Minute)
	redisClient, err := cache.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("⚠️ Redisに接続できないため、メモリキャッシュを使用します")
	} else if redisClient != nil {
		defer redisClient.Close()
		rc := cache.NewRedisCache(redisClient, "boraali:suggest:")
		suggestionCache = rc
		checks["redis"] = rc
	}
	suggestions := repo.NewCachedSuggestionRepository(ai.NewSuggestionGenerator(gemini), suggestionCache, cfg.SuggestionCacheTTL)

	// 検索バッチ: Firestoreがなければプロセス内
	batches := repo.NewMemoryBatchRepository(cfg.BatchTTL)
	if cfg.FirestoreProjectID != "" {
		fs, err := firestore.NewFirestoreClient(ctx, cfg.FirestoreProjectID)
		if err != nil {
			log.Warn().Err(err).Msg("⚠️ Firestoreに接続できないため、メモリに保存します")
		} else {
			defer fs.Close()
			batches = repo.NewFirestoreBatchRepository(fs.GetClient(), cfg.BatchTTL)
		}
	}

	// 現在地推定: MaxMind → ipapi.co → 固定座標
	var coarse []repository.CoarseLocationRepository
	if cfg.GeoIPDBPath != "" {
		mm, err := geoip.OpenMaxMind(cfg.GeoIPDBPath)
		if err != nil {
			log.Warn().Err(err).Msg("⚠️ GeoIPデータベースを開けませんでした")
		} else {
			defer mm.Close()
			coarse = append(coarse, mm)
		}
	}
	coarse = append(coarse,
		geoip.NewIPAPIProvider(cfg.IPLookupURL, &http.Client{Timeout: 5 * time.Second}),
		geoip.NewStaticProvider(model.FallbackCoordinate),
	)

	// 要約ワーカー
	worker := service.NewSummaryWorker(summarizer, service.SummaryWorkerConfig{
		Workers:     cfg.SummaryWorkers,
		QueueSize:   cfg.SummaryQueueSize,
		TaskTimeout: cfg.AITimeout,
	})
	worker.Start(ctx)
	defer worker.Stop()

	// 認証: JWTシークレットがあればローカル検証、なければSupabase Authに問い合わせる
	var verifier auth.TokenVerifier
	switch {
	case cfg.Supabase.JWTSecret != "":
		verifier = auth.NewJWTVerifier(cfg.Supabase.JWTSecret)
	case authRepo != nil:
		verifier = auth.NewRemoteVerifier(authRepo)
	default:
		log.Warn().Msg("⚠️ 認証が構成されていません。認証が必要なAPIは401を返します")
	}

	identity := service.NewContextIdentityProvider(authRepo, service.NewAnonymousIdentityProvider())
	aggregator := service.NewReviewAggregator(identity, worker)
	refresher := usecase.NewSummaryRefresher(reviews, worker, cfg.BatchTTL)

	placeUC := usecase.NewPlaceUseCase(places, reviews, summarizer, refresher, aggregator, worker)
	searchUC := usecase.NewPlaceSearchUseCase(suggestions, batches, service.NewGeoRanker())
	reviewUC := usecase.NewReviewUseCase(reviews, refresher)
	locationUC := usecase.NewLocationUseCase(geoip.NewChainProvider(coarse...))

	handlers := router.Handlers{
		Health:   handler.NewHealthHandler(checks),
		Places:   handler.NewPlacesHandler(placeUC, searchUC),
		Reviews:  handler.NewReviewsHandler(reviewUC),
		Location: handler.NewLocationHandler(locationUC),
	}
	if authRepo != nil {
		handlers.Auth = handler.NewAuthHandler(usecase.NewAuthUseCase(authRepo))
	}

	engine := router.New(handlers, router.Options{Verifier: verifier, SearchLimit: cfg.RateLimitSearch})
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("🚀 BoraAli server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("❌ サーバーの起動に失敗")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("🛑 シャットダウン中...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("❌ サーバーのシャットダウンに失敗")
	}
}
