package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"BoraAli-App/internal/domain/model"
	"BoraAli-App/internal/domain/repository"
	"BoraAli-App/internal/infrastructure/cache"
	"BoraAli-App/internal/metrics"

	"github.com/rs/zerolog/log"
)

// CachedSuggestionRepository は生成AIの候補を一定時間キャッシュするデコレータ
type CachedSuggestionRepository struct {
	next  repository.PlaceSuggestionRepository
	cache cache.Cache
	ttl   time.Duration
}

// NewCachedSuggestionRepository 新しいCachedSuggestionRepositoryインスタンスを作成
func NewCachedSuggestionRepository(next repository.PlaceSuggestionRepository, c cache.Cache, ttl time.Duration) repository.PlaceSuggestionRepository {
	return &CachedSuggestionRepository{next: next, cache: c, ttl: ttl}
}

func (r *CachedSuggestionRepository) Suggest(ctx context.Context, category string, hint model.LocationHint) ([]model.PlaceSuggestion, error) {
	return r.cached(ctx, suggestionCacheKey("suggest", category, hint), func() ([]model.PlaceSuggestion, error) {
		return r.next.Suggest(ctx, category, hint)
	})
}

func (r *CachedSuggestionRepository) Search(ctx context.Context, query string, hint model.LocationHint) ([]model.PlaceSuggestion, error) {
	return r.cached(ctx, suggestionCacheKey("search", query, hint), func() ([]model.PlaceSuggestion, error) {
		return r.next.Search(ctx, query, hint)
	})
}

func (r *CachedSuggestionRepository) cached(ctx context.Context, key string, load func() ([]model.PlaceSuggestion, error)) ([]model.PlaceSuggestion, error) {
	logger := log.Ctx(ctx)
	if b, err := r.cache.Get(ctx, key); err == nil {
		var out []model.PlaceSuggestion
		if err := json.Unmarshal(b, &out); err == nil {
			metrics.CacheHitsTotal.WithLabelValues(r.cache.Name()).Inc()
			logger.Debug().Str("key", key).Msg("💾 候補キャッシュヒット")
			return out, nil
		}
	} else if !errors.Is(err, cache.ErrMiss) {
		logger.Warn().Err(err).Msg("⚠️ キャッシュ読み込みに失敗")
	}
	metrics.CacheMissesTotal.WithLabelValues(r.cache.Name()).Inc()

	out, err := load()
	if err != nil {
		return nil, err
	}
	// 空の結果は一時的な失敗の可能性があるためキャッシュしない
	if len(out) == 0 {
		return out, nil
	}
	if b, err := json.Marshal(out); err == nil {
		if err := r.cache.Set(ctx, key, b, r.ttl); err != nil {
			logger.Warn().Err(err).Msg("⚠️ キャッシュ書き込みに失敗")
		}
	}
	return out, nil
}

// suggestionCacheKey は座標を小数3桁(約100m)に丸めてキーを作る
func suggestionCacheKey(kind, term string, hint model.LocationHint) string {
	term = strings.ToLower(strings.TrimSpace(term))
	if hint.HasCoordinate() {
		return fmt.Sprintf("suggestions:%s:%s:%.3f,%.3f", kind, term, hint.Coordinate.Latitude, hint.Coordinate.Longitude)
	}
	return fmt.Sprintf("suggestions:%s:%s:@%s", kind, term, strings.ToLower(strings.TrimSpace(hint.Text)))
}
