package usecase

import (
	"context"
	"strconv"
	"time"

	"BoraAli-App/internal/domain/model"
	"BoraAli-App/internal/domain/repository"
	"BoraAli-App/internal/domain/service"

	"github.com/cespare/xxhash/v2"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
)

type cachedSummary struct {
	fingerprint uint64
	summary     string
}

// SummaryRefresher は永続化されたレビューが変わった場所の要約をバックグラウンドで再生成し、
// レビュー集合の指紋とともに保持する
type SummaryRefresher struct {
	reviews   repository.ReviewsRepository
	scheduler service.SummaryScheduler
	store     *cache.Cache
}

// NewSummaryRefresher は新しいSummaryRefresherを作成
func NewSummaryRefresher(reviews repository.ReviewsRepository, scheduler service.SummaryScheduler, ttl time.Duration) *SummaryRefresher {
	return &SummaryRefresher{
		reviews:   reviews,
		scheduler: scheduler,
		store:     cache.New(ttl, ttl),
	}
}

// Lookup は同じレビュー集合に対する要約が保持されていれば返す
func (s *SummaryRefresher) Lookup(placeID string, reviews []model.Review) (string, bool) {
	v, ok := s.store.Get(placeID)
	if !ok {
		return "", false
	}
	c := v.(cachedSummary)
	if c.fingerprint != fingerprint(reviews) {
		return "", false
	}
	return c.summary, true
}

// Remember は要約を保持する
func (s *SummaryRefresher) Remember(placeID string, reviews []model.Review, summary string) {
	s.store.SetDefault(placeID, cachedSummary{fingerprint: fingerprint(reviews), summary: summary})
}

// Refresh は要約の再生成を予約する。リクエストは完了を待たない
func (s *SummaryRefresher) Refresh(ctx context.Context, placeID string) {
	bg := context.WithoutCancel(ctx)
	go func() {
		logger := log.Ctx(bg)
		reviews, err := s.reviews.ListByPlace(bg, placeID)
		if err != nil {
			logger.Error().Err(err).Str("place_id", placeID).Msg("❌ 要約再生成のためのレビュー取得に失敗")
			return
		}
		taskID, results := s.scheduler.Enqueue(placeID, reviews)
		res, ok := <-results
		if !ok {
			return
		}
		if res.Err != nil {
			// 失敗した要約は保持せず、次回の詳細取得で再生成させる
			logger.Warn().Err(res.Err).Str("task_id", taskID).Msg("⚠️ 要約の再生成に失敗")
			return
		}
		s.Remember(placeID, reviews, res.Summary)
	}()
}

// fingerprint はレビューのIDと更新時刻から集合の指紋を計算する
func fingerprint(reviews []model.Review) uint64 {
	d := xxhash.New()
	for _, r := range reviews {
		_, _ = d.WriteString(r.ID)
		_, _ = d.WriteString("|")
		if r.UpdatedAt != nil {
			_, _ = d.WriteString(strconv.FormatInt(r.UpdatedAt.UnixNano(), 10))
		}
		_, _ = d.WriteString(";")
	}
	return d.Sum64()
}
