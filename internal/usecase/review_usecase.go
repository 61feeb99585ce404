package usecase

import (
	"context"
	"fmt"

	"BoraAli-App/internal/domain/helper"
	"BoraAli-App/internal/domain/model"
	"BoraAli-App/internal/domain/repository"
	"BoraAli-App/internal/domain/service"

	"github.com/rs/zerolog/log"
)

type ReviewUseCase interface {
	Create(ctx context.Context, principal *model.Principal, req model.CreateReviewRequest) (*model.Review, error)
	Update(ctx context.Context, principal *model.Principal, id string, req model.UpdateReviewRequest) (*model.Review, error)
	Delete(ctx context.Context, principal *model.Principal, id string) error
	AddPhotos(ctx context.Context, principal *model.Principal, id string, urls []string) ([]model.Photo, error)
}

// reviewUseCaseImpl はReviewUseCaseの実装
type reviewUseCaseImpl struct {
	reviews   repository.ReviewsRepository
	refresher *SummaryRefresher
}

// NewReviewUseCase は新しいReviewUseCaseインスタンスを作成
func NewReviewUseCase(reviews repository.ReviewsRepository, refresher *SummaryRefresher) ReviewUseCase {
	return &reviewUseCaseImpl{reviews: reviews, refresher: refresher}
}

func (u *reviewUseCaseImpl) Create(ctx context.Context, principal *model.Principal, req model.CreateReviewRequest) (*model.Review, error) {
	if principal == nil {
		return nil, model.ErrUnauthorized
	}
	if req.PlaceID == "" {
		return nil, model.NewValidationError("place_id", "place_id, accessibility, infrastructure, value e comment são obrigatórios")
	}
	if err := service.ValidateReviewInput(req.ReviewInput); err != nil {
		return nil, err
	}

	created, err := u.reviews.Create(ctx, &model.Review{
		PlaceID:        req.PlaceID,
		UserID:         principal.ID,
		Accessibility:  req.Accessibility,
		Infrastructure: req.Infrastructure,
		Value:          req.Value,
		Comment:        req.Comment,
	})
	if err != nil {
		return nil, fmt.Errorf("レビューの作成に失敗: %w", err)
	}

	logger := log.Ctx(ctx)
	if len(req.Photos) > 0 {
		// 写真の追加に失敗してもレビューは残す
		if _, err := u.reviews.AddPhotos(ctx, created.ID, req.Photos); err != nil {
			logger.Error().Err(err).Str("review_id", created.ID).Msg("❌ 写真の追加に失敗")
		}
	}

	full, err := u.reviews.GetByID(ctx, created.ID)
	if err != nil {
		logger.Warn().Err(err).Str("review_id", created.ID).Msg("⚠️ 作成したレビューの再取得に失敗")
		full = created
	}
	logger.Info().Str("review_id", full.ID).Str("place_id", full.PlaceID).Msg("✅ レビューを作成")
	u.refresher.Refresh(ctx, full.PlaceID)
	return full, nil
}

func (u *reviewUseCaseImpl) Update(ctx context.Context, principal *model.Principal, id string, req model.UpdateReviewRequest) (*model.Review, error) {
	existing, err := u.authorize(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	if err := service.ValidateReviewInput(model.ReviewInput{
		Accessibility: req.Accessibility, Infrastructure: req.Infrastructure, Value: req.Value, Comment: req.Comment,
	}); err != nil {
		return nil, err
	}
	updated, err := u.reviews.Update(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("レビューの更新に失敗: %w", err)
	}
	u.refresher.Refresh(ctx, existing.PlaceID)
	return updated, nil
}

func (u *reviewUseCaseImpl) Delete(ctx context.Context, principal *model.Principal, id string) error {
	existing, err := u.authorize(ctx, principal, id)
	if err != nil {
		return err
	}
	if err := u.reviews.Delete(ctx, id); err != nil {
		return fmt.Errorf("レビューの削除に失敗: %w", err)
	}
	u.refresher.Refresh(ctx, existing.PlaceID)
	return nil
}

func (u *reviewUseCaseImpl) AddPhotos(ctx context.Context, principal *model.Principal, id string, urls []string) ([]model.Photo, error) {
	if len(urls) == 0 {
		return nil, model.NewValidationError("photos", "Forneça um array de URLs de fotos")
	}
	if err := helper.ValidatePhotos(urls); err != nil {
		return nil, err
	}
	if _, err := u.authorize(ctx, principal, id); err != nil {
		return nil, err
	}
	photos, err := u.reviews.AddPhotos(ctx, id, urls)
	if err != nil {
		return nil, fmt.Errorf("写真の追加に失敗: %w", err)
	}
	return photos, nil
}

// authorize はレビューの存在(404)と所有者(403)を確認する
func (u *reviewUseCaseImpl) authorize(ctx context.Context, principal *model.Principal, id string) (*model.Review, error) {
	if principal == nil {
		return nil, model.ErrUnauthorized
	}
	existing, err := u.reviews.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("レビューの取得に失敗: %w", err)
	}
	if existing.UserID != principal.ID {
		return nil, fmt.Errorf("レビュー %s: %w", id, model.ErrForbidden)
	}
	return existing, nil
}
