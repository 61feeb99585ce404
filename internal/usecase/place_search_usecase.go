package usecase

import (
	"context"
	"fmt"

	"BoraAli-App/internal/domain/model"
	"BoraAli-App/internal/domain/repository"
	"BoraAli-App/internal/domain/service"

	"github.com/rs/zerolog/log"
)

type PlaceSearchUseCase interface {
	// Search は生成AIに候補を問い合わせ、距離順に並べたバッチを返す
	Search(ctx context.Context, req model.SearchRequest) (*model.PlaceBatch, error)
	// GetBatch は保存済みのバッチを返す
	GetBatch(ctx context.Context, batchID string) (*model.PlaceBatch, error)
}

// placeSearchUseCaseImpl はPlaceSearchUseCaseの実装
type placeSearchUseCaseImpl struct {
	suggestions repository.PlaceSuggestionRepository
	batches     repository.SearchBatchRepository
	ranker      *service.GeoRanker
}

// NewPlaceSearchUseCase は新しいPlaceSearchUseCaseインスタンスを作成
func NewPlaceSearchUseCase(
	suggestions repository.PlaceSuggestionRepository,
	batches repository.SearchBatchRepository,
	ranker *service.GeoRanker,
) PlaceSearchUseCase {
	return &placeSearchUseCaseImpl{
		suggestions: suggestions,
		batches:     batches,
		ranker:      ranker,
	}
}

func (u *placeSearchUseCaseImpl) Search(ctx context.Context, req model.SearchRequest) (*model.PlaceBatch, error) {
	logger := log.Ctx(ctx)
	hint := model.LocationHint{Coordinate: req.User, Text: req.LocationString}
	if !hint.HasCoordinate() && hint.Text == "" {
		return nil, model.NewValidationError("location", "Parâmetros inválidos. Forneça category ou query com lat/lon ou locationString")
	}

	var (
		raws []model.PlaceSuggestion
		err  error
	)
	// 優先順位: category > query、座標 > 地名
	switch {
	case req.Category != "":
		raws, err = u.suggestions.Suggest(ctx, req.Category, hint)
	case req.Query != "":
		raws, err = u.suggestions.Search(ctx, req.Query, hint)
	default:
		return nil, model.NewValidationError("category", "Parâmetros inválidos. Forneça category ou query com lat/lon ou locationString")
	}
	if err != nil {
		return nil, fmt.Errorf("場所候補の取得に失敗: %w", err)
	}

	batch := u.ranker.NewBatch(raws, req.User)
	logger.Info().Str("batch_id", batch.ID).Int("places", len(batch.Places)).Bool("ranked", batch.Ranked).Msg("✅ 検索バッチを作成")

	// 保存に失敗しても検索結果は返す
	if err := u.batches.Save(ctx, batch); err != nil {
		logger.Error().Err(err).Str("batch_id", batch.ID).Msg("❌ 検索バッチの保存に失敗")
	}
	return batch, nil
}

func (u *placeSearchUseCaseImpl) GetBatch(ctx context.Context, batchID string) (*model.PlaceBatch, error) {
	batch, err := u.batches.Get(ctx, batchID)
	if err != nil {
		return nil, fmt.Errorf("検索バッチの取得に失敗: %w", err)
	}
	return batch, nil
}
