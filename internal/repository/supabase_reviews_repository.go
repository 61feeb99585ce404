package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"BoraAli-App/internal/domain/model"
	"BoraAli-App/internal/domain/repository"
	"BoraAli-App/internal/infrastructure/database"

	"github.com/supabase-community/postgrest-go"
)

const reviewWithRelations = "*, photos (*), profiles (username, full_name, avatar_url)"

type SupabaseReviewsRepository struct {
	client *database.SupabaseClient
}

func NewSupabaseReviewsRepository(client *database.SupabaseClient) repository.ReviewsRepository {
	return &SupabaseReviewsRepository{
		client: client,
	}
}

type reviewInsertRow struct {
	PlaceID        string `json:"place_id"`
	UserID         string `json:"user_id"`
	Accessibility  int    `json:"accessibility"`
	Infrastructure int    `json:"infrastructure"`
	Value          int    `json:"value"`
	Comment        string `json:"comment"`
}

type reviewUpdateRow struct {
	Accessibility  int       `json:"accessibility"`
	Infrastructure int       `json:"infrastructure"`
	Value          int       `json:"value"`
	Comment        string    `json:"comment"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type photoInsertRow struct {
	ReviewID string `json:"review_id"`
	URL      string `json:"url"`
}

func (r *SupabaseReviewsRepository) ListByPlace(ctx context.Context, placeID string) ([]model.Review, error) {
	data, _, err := r.client.GetClient().From("reviews").
		Select(reviewWithRelations, "", false).
		Eq("place_id", placeID).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("レビューデータの取得失敗: %w", err)
	}
	return decodeReviews(data)
}

func (r *SupabaseReviewsRepository) GetByID(ctx context.Context, id string) (*model.Review, error) {
	data, _, err := r.client.GetClient().From("reviews").Select(reviewWithRelations, "", false).Eq("id", id).Execute()
	if err != nil {
		return nil, fmt.Errorf("レビューデータの取得失敗: %w", err)
	}
	reviews, err := decodeReviews(data)
	if err != nil {
		return nil, err
	}
	if len(reviews) == 0 {
		return nil, fmt.Errorf("レビュー ID %s: %w", id, model.ErrNotFound)
	}
	return &reviews[0], nil
}

func (r *SupabaseReviewsRepository) Create(ctx context.Context, review *model.Review) (*model.Review, error) {
	row := reviewInsertRow{
		PlaceID:        review.PlaceID,
		UserID:         review.UserID,
		Accessibility:  review.Accessibility,
		Infrastructure: review.Infrastructure,
		Value:          review.Value,
		Comment:        review.Comment,
	}
	data, _, err := r.client.GetClient().From("reviews").Insert(row, false, "", "representation", "").Execute()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrValidation, err)
	}
	reviews, err := decodeReviews(data)
	if err != nil {
		return nil, err
	}
	if len(reviews) == 0 {
		return nil, fmt.Errorf("レビューの作成結果が空です")
	}
	return &reviews[0], nil
}

func (r *SupabaseReviewsRepository) Update(ctx context.Context, id string, req model.UpdateReviewRequest) (*model.Review, error) {
	row := reviewUpdateRow{
		Accessibility:  req.Accessibility,
		Infrastructure: req.Infrastructure,
		Value:          req.Value,
		Comment:        req.Comment,
		UpdatedAt:      time.Now().UTC(),
	}
	if _, _, err := r.client.GetClient().From("reviews").Update(row, "minimal", "").Eq("id", id).Execute(); err != nil {
		return nil, fmt.Errorf("レビューの更新失敗: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r *SupabaseReviewsRepository) Delete(ctx context.Context, id string) error {
	// 写真はON DELETE CASCADEで削除される
	if _, _, err := r.client.GetClient().From("reviews").Delete("minimal", "").Eq("id", id).Execute(); err != nil {
		return fmt.Errorf("レビューの削除失敗: %w", err)
	}
	return nil
}

func (r *SupabaseReviewsRepository) AddPhotos(ctx context.Context, reviewID string, urls []string) ([]model.Photo, error) {
	rows := make([]photoInsertRow, 0, len(urls))
	for _, u := range urls {
		rows = append(rows, photoInsertRow{ReviewID: reviewID, URL: u})
	}
	data, _, err := r.client.GetClient().From("photos").Insert(rows, false, "", "representation", "").Execute()
	if err != nil {
		return nil, fmt.Errorf("写真の追加失敗: %w", err)
	}
	var photos []model.Photo
	if err := json.Unmarshal(data, &photos); err != nil {
		return nil, fmt.Errorf("写真データのJSONアンマーシャル失敗: %w", err)
	}
	return photos, nil
}

func decodeReviews(data []byte) ([]model.Review, error) {
	var reviews []model.Review
	if err := json.Unmarshal(data, &reviews); err != nil {
		return nil, fmt.Errorf("レビューデータのJSONアンマーシャル失敗: %w", err)
	}
	if reviews == nil {
		reviews = []model.Review{}
	}
	for i := range reviews {
		if reviews[i].Photos == nil {
			reviews[i].Photos = []model.Photo{}
		}
		reviews[i].ResolveAuthor()
	}
	return reviews, nil
}
