package service

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"BoraAli-App/internal/domain/helper"
	"BoraAli-App/internal/domain/model"
)

// SummaryScheduler は要約タスクを受け付ける
type SummaryScheduler interface {
	Enqueue(placeID string, reviews []model.Review) (string, <-chan SummaryResult)
}

// AddReviewResult はレビュー追加の結果
// Updated には要約が反映された場所が1度だけ流れる
type AddReviewResult struct {
	Place   model.Place
	TaskID  string
	Updated <-chan model.Place
}

// ReviewAggregator は場所にレビューを楽観的に追加し、要約の再生成を予約する
type ReviewAggregator struct {
	identity  IdentityProvider
	summaries SummaryScheduler
	clock     func() time.Time
	lastID    atomic.Int64
}

// NewReviewAggregator は新しいReviewAggregatorを作成
func NewReviewAggregator(identity IdentityProvider, summaries SummaryScheduler) *ReviewAggregator {
	return &ReviewAggregator{identity: identity, summaries: summaries, clock: time.Now}
}

// AddReview は入力のplaceを変更せず、レビューを先頭に追加した複製を返す
func (a *ReviewAggregator) AddReview(ctx context.Context, place model.Place, input model.ReviewInput) (*AddReviewResult, error) {
	if err := ValidateReviewInput(input); err != nil {
		return nil, err
	}
	identity, err := a.identity.Identify(ctx)
	if err != nil {
		return nil, fmt.Errorf("投稿者の特定に失敗: %w", err)
	}

	now := a.clock()
	review := model.Review{
		ID:             strconv.FormatInt(a.nextID(now), 10),
		PlaceID:        place.ID,
		UserID:         identity.UserID,
		Author:         identity.DisplayName,
		Accessibility:  input.Accessibility,
		Infrastructure: input.Infrastructure,
		Value:          input.Value,
		Comment:        input.Comment,
		Photos:         make([]model.Photo, 0, len(input.Photos)),
		CreatedAt:      &now,
	}
	for _, url := range input.Photos {
		review.Photos = append(review.Photos, model.Photo{URL: url})
	}

	updated := place.Clone()
	updated.Reviews = append([]model.Review{review}, updated.Reviews...)

	taskID, results := a.summaries.Enqueue(updated.ID, updated.Reviews)
	out := make(chan model.Place, 1)
	snapshot := updated.Clone()
	go func() {
		defer close(out)
		res, ok := <-results
		if !ok {
			return
		}
		// 失敗時もレビューは残し、要約だけをエラー文言にする
		snapshot.AISummary = res.Summary
		out <- snapshot
	}()

	return &AddReviewResult{Place: updated, TaskID: taskID, Updated: out}, nil
}

// nextID は現在時刻(ms)を基にプロセス内で狭義単調増加のIDを返す
func (a *ReviewAggregator) nextID(now time.Time) int64 {
	for {
		candidate := now.UnixMilli()
		last := a.lastID.Load()
		if candidate <= last {
			candidate = last + 1
		}
		if a.lastID.CompareAndSwap(last, candidate) {
			return candidate
		}
	}
}

// ValidateReviewInput は評価値とコメントを検証する
func ValidateReviewInput(input model.ReviewInput) error {
	ratings := []struct {
		field string
		value int
	}{
		{"accessibility", input.Accessibility},
		{"infrastructure", input.Infrastructure},
		{"value", input.Value},
	}
	for _, r := range ratings {
		if r.value < 1 || r.value > 5 {
			return model.NewValidationError(r.field, "deve estar entre 1 e 5")
		}
	}
	if input.Comment == "" {
		return model.NewValidationError("comment", "é obrigatório")
	}
	return helper.ValidatePhotos(input.Photos)
}
