package usecase

import (
	"context"
	"errors"
	"fmt"

	"BoraAli-App/internal/domain/helper"
	"BoraAli-App/internal/domain/model"
	"BoraAli-App/internal/domain/repository"
	"BoraAli-App/internal/domain/service"

	"github.com/rs/zerolog/log"
)

// NearbyFilter は一覧を半径で絞り込む条件
type NearbyFilter struct {
	Center   model.Coordinate
	RadiusKm float64
}

type PlaceUseCase interface {
	// List は永続化された場所を新しい順に返す。filterがあれば半径内のみ
	List(ctx context.Context, filter *NearbyFilter) ([]model.Place, error)
	// GetPlace はレビューと要約付きの場所を返す
	GetPlace(ctx context.Context, id string) (*model.Place, error)
	ListReviews(ctx context.Context, placeID string) ([]model.Review, error)
	Create(ctx context.Context, principal *model.Principal, req model.CreatePlaceRequest) (*model.Place, error)
	// PreviewReview はクライアントが保持する場所にレビューを楽観的に追加する
	PreviewReview(ctx context.Context, placeID string, req model.PreviewReviewRequest) (*model.PreviewReviewResponse, error)
	SummaryStatus(ctx context.Context, taskID string) (*model.SummaryTaskStatus, error)
}

// placeUseCaseImpl はPlaceUseCaseの実装
type placeUseCaseImpl struct {
	places     repository.PlacesRepository
	reviews    repository.ReviewsRepository
	summarizer repository.ReviewSummaryRepository
	refresher  *SummaryRefresher
	aggregator *service.ReviewAggregator
	worker     *service.SummaryWorker
}

// NewPlaceUseCase は新しいPlaceUseCaseインスタンスを作成
func NewPlaceUseCase(
	places repository.PlacesRepository,
	reviews repository.ReviewsRepository,
	summarizer repository.ReviewSummaryRepository,
	refresher *SummaryRefresher,
	aggregator *service.ReviewAggregator,
	worker *service.SummaryWorker,
) PlaceUseCase {
	return &placeUseCaseImpl{
		places:     places,
		reviews:    reviews,
		summarizer: summarizer,
		refresher:  refresher,
		aggregator: aggregator,
		worker:     worker,
	}
}

func (u *placeUseCaseImpl) List(ctx context.Context, filter *NearbyFilter) ([]model.Place, error) {
	places, err := u.places.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("場所一覧の取得に失敗: %w", err)
	}
	if filter == nil {
		return places, nil
	}

	nearby := make([]model.Place, 0, len(places))
	for i := range places {
		if !helper.WithinRadius(filter.Center, &places[i], filter.RadiusKm) {
			continue
		}
		d := model.Kilometers(helper.DistanceKm(filter.Center, places[i].Coordinate()))
		places[i].Distance = &d
		nearby = append(nearby, places[i])
	}
	return nearby, nil
}

func (u *placeUseCaseImpl) GetPlace(ctx context.Context, id string) (*model.Place, error) {
	logger := log.Ctx(ctx)
	place, err := u.places.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("場所の取得に失敗: %w", err)
	}

	reviews, err := u.reviews.ListByPlace(ctx, id)
	if err != nil {
		// レビュー取得の失敗は場所の表示を妨げない
		logger.Error().Err(err).Str("place_id", id).Msg("❌ レビューの取得に失敗")
		reviews = []model.Review{}
	}
	place.Reviews = reviews
	place.AISummary = u.summary(ctx, id, reviews)
	return place, nil
}

func (u *placeUseCaseImpl) summary(ctx context.Context, placeID string, reviews []model.Review) string {
	if len(reviews) == 0 {
		return model.NoReviewsSummary
	}
	if cached, ok := u.refresher.Lookup(placeID, reviews); ok {
		return cached
	}
	summary, err := u.summarizer.Summarize(ctx, reviews)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("place_id", placeID).Msg("❌ AI要約の生成に失敗")
		return model.NoReviewsSummary
	}
	u.refresher.Remember(placeID, reviews, summary)
	return summary
}

func (u *placeUseCaseImpl) ListReviews(ctx context.Context, placeID string) ([]model.Review, error) {
	reviews, err := u.reviews.ListByPlace(ctx, placeID)
	if err != nil {
		return nil, fmt.Errorf("レビューの取得に失敗: %w", err)
	}
	return reviews, nil
}

func (u *placeUseCaseImpl) Create(ctx context.Context, principal *model.Principal, req model.CreatePlaceRequest) (*model.Place, error) {
	if req.Name == "" || req.Location == "" {
		return nil, model.NewValidationError("name", "Nome e localização são obrigatórios")
	}
	place := &model.Place{
		Name:      req.Name,
		Location:  req.Location,
		Address:   req.Address,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Category:  req.Category,
	}
	if principal != nil {
		place.CreatedBy = principal.ID
	}
	created, err := u.places.Create(ctx, place)
	if err != nil {
		return nil, fmt.Errorf("場所の作成に失敗: %w", err)
	}
	log.Ctx(ctx).Info().Str("place_id", created.ID).Msg("✅ 場所を作成")
	return created, nil
}

func (u *placeUseCaseImpl) PreviewReview(ctx context.Context, placeID string, req model.PreviewReviewRequest) (*model.PreviewReviewResponse, error) {
	if req.Place.ID != placeID {
		return nil, model.NewValidationError("place.id", "não corresponde ao local da URL")
	}
	res, err := u.aggregator.AddReview(ctx, req.Place, req.Review)
	if err != nil {
		return nil, err
	}
	return &model.PreviewReviewResponse{Place: res.Place, SummaryTaskID: res.TaskID}, nil
}

func (u *placeUseCaseImpl) SummaryStatus(ctx context.Context, taskID string) (*model.SummaryTaskStatus, error) {
	status, err := u.worker.Status(taskID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("要約タスクの取得に失敗: %w", err)
	}
	return status, nil
}
