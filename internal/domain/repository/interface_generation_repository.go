package repository

import (
	"context"

	"BoraAli-App/internal/domain/model"
)

// PlaceSuggestionRepository は生成AIに場所候補を問い合わせる
type PlaceSuggestionRepository interface {
	// Suggest はカテゴリに合う近隣の場所を返す
	Suggest(ctx context.Context, category string, hint model.LocationHint) ([]model.PlaceSuggestion, error)
	// Search は自由入力のクエリで場所を探す
	Search(ctx context.Context, query string, hint model.LocationHint) ([]model.PlaceSuggestion, error)
}

// ReviewSummaryRepository はレビュー群の要約を生成する
type ReviewSummaryRepository interface {
	// Summarize は空のレビューに対してはモデルを呼ばずに既定文を返す
	Summarize(ctx context.Context, reviews []model.Review) (string, error)
}
