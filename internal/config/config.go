package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// RateLimitConfig は一定期間あたりの許容リクエスト数
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

// SupabaseConfig はSupabaseの接続設定
type SupabaseConfig struct {
	URL       string
	AnonKey   string
	JWTSecret string
}

// RedisConfig はRedisの接続設定。Hostが空ならメモリキャッシュを使用する
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// Addr は host:port 形式のアドレス
func (r RedisConfig) Addr() string {
	return r.Host + ":" + r.Port
}

// Config はアプリケーション全体の設定
type Config struct {
	Port        string
	LogLevel    string
	LogFormat   string
	Supabase    SupabaseConfig
	DatabaseURL string

	GeminiAPIKey string
	GeminiModel  string

	FirestoreProjectID string
	Redis              RedisConfig
	GeoIPDBPath        string
	IPLookupURL        string

	RateLimitSearch    RateLimitConfig
	SuggestionCacheTTL time.Duration
	BatchTTL           time.Duration
	SummaryWorkers     int
	SummaryQueueSize   int
	AITimeout          time.Duration
}

// Load は環境変数から設定を読み込み、既定値を適用する
func Load() (*Config, error) {
	cfg := &Config{
		Port:      getEnv("PORT", "8080"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
		Supabase: SupabaseConfig{
			URL:       os.Getenv("SUPABASE_URL"),
			AnonKey:   os.Getenv("SUPABASE_ANON_KEY"),
			JWTSecret: os.Getenv("SUPABASE_JWT_SECRET"),
		},
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		GeminiModel:        getEnv("GEMINI_MODEL", "gemini-3-flash-preview"),
		FirestoreProjectID: os.Getenv("FIRESTORE_PROJECT_ID"),
		Redis: RedisConfig{
			Host:     os.Getenv("REDIS_HOST"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: os.Getenv("REDIS_PASS"),
		},
		GeoIPDBPath:        os.Getenv("GEOIP_DB_PATH"),
		IPLookupURL:        getEnv("IP_LOOKUP_URL", "https://ipapi.co"),
		SuggestionCacheTTL: parseDuration(getEnv("SUGGESTION_CACHE_TTL", "1h"), time.Hour),
		AITimeout:          parseDuration(getEnv("AI_TIMEOUT", "60s"), 60*time.Second),
	}

	var err error
	if cfg.Redis.DB, err = atoiEnv("REDIS_DB", 0); err != nil {
		return nil, err
	}
	hours, err := atoiEnv("BATCH_TTL_HOURS", 24)
	if err != nil {
		return nil, err
	}
	cfg.BatchTTL = time.Duration(hours) * time.Hour
	if cfg.SummaryWorkers, err = atoiEnv("SUMMARY_WORKERS", 4); err != nil {
		return nil, err
	}
	if cfg.SummaryQueueSize, err = atoiEnv("SUMMARY_QUEUE_SIZE", 64); err != nil {
		return nil, err
	}

	rl, err := parseRateLimit(getEnv("RATE_LIMIT_SEARCH", "30/min"))
	if err != nil {
		return nil, fmt.Errorf("RATE_LIMIT_SEARCH の値が不正: %w", err)
	}
	cfg.RateLimitSearch = rl

	return cfg, nil
}

// Validate はサーバー起動に必須の設定を確認する
func (c *Config) Validate() error {
	var missing []string
	if c.Supabase.URL == "" && c.DatabaseURL == "" {
		missing = append(missing, "SUPABASE_URL または DATABASE_URL")
	}
	if c.Supabase.URL != "" && c.Supabase.AnonKey == "" {
		missing = append(missing, "SUPABASE_ANON_KEY")
	}
	if c.GeminiAPIKey == "" {
		missing = append(missing, "GEMINI_API_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("必要な環境変数が設定されていません: %s", strings.Join(missing, ", "))
	}
	return nil
}

func parseRateLimit(value string) (RateLimitConfig, error) {
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return RateLimitConfig{}, fmt.Errorf("<requests>/<interval> の形式が必要: %q", value)
	}

	requests, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || requests <= 0 {
		return RateLimitConfig{}, fmt.Errorf("リクエスト数が不正: %v", parts[0])
	}

	unit := strings.ToLower(strings.TrimSpace(parts[1]))
	var interval time.Duration
	switch unit {
	case "s", "sec", "second", "seconds":
		interval = time.Second
	case "m", "min", "minute", "minutes":
		interval = time.Minute
	case "h", "hr", "hour", "hours":
		interval = time.Hour
	default:
		return RateLimitConfig{}, fmt.Errorf("未対応の単位: %s", unit)
	}

	return RateLimitConfig{Requests: requests, Interval: interval}, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func atoiEnv(key string, fallback int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s の値が不正: %w", key, err)
	}
	return v, nil
}

func parseDuration(input string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(input)
	if err != nil {
		return fallback
	}
	return d
}
