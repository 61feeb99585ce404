package repository

import (
	"context"

	"BoraAli-App/internal/domain/model"
)

// PlacesRepository は永続化された場所の読み書きを行う
type PlacesRepository interface {
	// List は作成日時の新しい順に全件返す
	List(ctx context.Context) ([]model.Place, error)
	GetByID(ctx context.Context, id string) (*model.Place, error)
	Create(ctx context.Context, place *model.Place) (*model.Place, error)
}

// ReviewsRepository はレビューと写真の読み書きを行う
type ReviewsRepository interface {
	// ListByPlace は写真付きで新しい順に返す
	ListByPlace(ctx context.Context, placeID string) ([]model.Review, error)
	GetByID(ctx context.Context, id string) (*model.Review, error)
	Create(ctx context.Context, review *model.Review) (*model.Review, error)
	Update(ctx context.Context, id string, req model.UpdateReviewRequest) (*model.Review, error)
	Delete(ctx context.Context, id string) error
	AddPhotos(ctx context.Context, reviewID string, urls []string) ([]model.Photo, error)
}
