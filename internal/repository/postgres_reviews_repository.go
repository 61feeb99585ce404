package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"BoraAli-App/internal/domain/model"
	"BoraAli-App/internal/domain/repository"
	"BoraAli-App/internal/infrastructure/database"

	"github.com/lib/pq"
)

type PostgresReviewsRepository struct {
	client *database.PostgreSQLClient
}

func NewPostgresReviewsRepository(client *database.PostgreSQLClient) repository.ReviewsRepository {
	return &PostgresReviewsRepository{
		client: client,
	}
}

// reviewRow はプロフィールを結合したレビュー行
type reviewRow struct {
	ID             string     `db:"id"`
	PlaceID        string     `db:"place_id"`
	UserID         string     `db:"user_id"`
	Accessibility  int        `db:"accessibility"`
	Infrastructure int        `db:"infrastructure"`
	Value          int        `db:"value"`
	Comment        string     `db:"comment"`
	CreatedAt      *time.Time `db:"created_at"`
	UpdatedAt      *time.Time `db:"updated_at"`
	Username       string     `db:"username"`
	FullName       string     `db:"full_name"`
	AvatarURL      string     `db:"avatar_url"`
}

func (row reviewRow) toModel() model.Review {
	review := model.Review{
		ID:             row.ID,
		PlaceID:        row.PlaceID,
		UserID:         row.UserID,
		Accessibility:  row.Accessibility,
		Infrastructure: row.Infrastructure,
		Value:          row.Value,
		Comment:        row.Comment,
		Photos:         []model.Photo{},
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
	if row.Username != "" || row.FullName != "" || row.AvatarURL != "" {
		review.Profile = &model.ProfileSummary{Username: row.Username, FullName: row.FullName, AvatarURL: row.AvatarURL}
	}
	review.ResolveAuthor()
	return review
}

const reviewSelect = `SELECT r.id::text AS id, r.place_id::text AS place_id, r.user_id::text AS user_id,
	r.accessibility, r.infrastructure, r.value, r.comment, r.created_at, r.updated_at,
	COALESCE(p.username, '') AS username, COALESCE(p.full_name, '') AS full_name, COALESCE(p.avatar_url, '') AS avatar_url
	FROM reviews r LEFT JOIN profiles p ON p.id = r.user_id`

func (r *PostgresReviewsRepository) ListByPlace(ctx context.Context, placeID string) ([]model.Review, error) {
	var rows []reviewRow
	if err := r.client.DB.SelectContext(ctx, &rows, reviewSelect+` WHERE r.place_id = $1 ORDER BY r.created_at DESC`, placeID); err != nil {
		return nil, fmt.Errorf("レビュー一覧の取得失敗: %w", err)
	}
	reviews := make([]model.Review, 0, len(rows))
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		reviews = append(reviews, row.toModel())
		ids = append(ids, row.ID)
	}
	if len(ids) == 0 {
		return reviews, nil
	}

	photos, err := r.photosFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range reviews {
		if ps, ok := photos[reviews[i].ID]; ok {
			reviews[i].Photos = ps
		}
	}
	return reviews, nil
}

func (r *PostgresReviewsRepository) photosFor(ctx context.Context, reviewIDs []string) (map[string][]model.Photo, error) {
	var photos []model.Photo
	query := `SELECT id::text AS id, review_id::text AS review_id, url, created_at FROM photos
		WHERE review_id::text = ANY($1) ORDER BY created_at`
	if err := r.client.DB.SelectContext(ctx, &photos, query, pq.Array(reviewIDs)); err != nil {
		return nil, fmt.Errorf("写真の取得失敗: %w", err)
	}
	out := make(map[string][]model.Photo, len(reviewIDs))
	for _, p := range photos {
		out[p.ReviewID] = append(out[p.ReviewID], p)
	}
	return out, nil
}

func (r *PostgresReviewsRepository) GetByID(ctx context.Context, id string) (*model.Review, error) {
	var row reviewRow
	if err := r.client.DB.GetContext(ctx, &row, reviewSelect+` WHERE r.id::text = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("レビュー ID %s: %w", id, model.ErrNotFound)
		}
		return nil, fmt.Errorf("レビューの取得失敗: %w", err)
	}
	review := row.toModel()
	photos, err := r.photosFor(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	if ps, ok := photos[id]; ok {
		review.Photos = ps
	}
	return &review, nil
}

func (r *PostgresReviewsRepository) Create(ctx context.Context, review *model.Review) (*model.Review, error) {
	var id string
	query := `INSERT INTO reviews (place_id, user_id, accessibility, infrastructure, value, comment)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id::text`
	err := r.client.DB.QueryRowxContext(ctx, query,
		review.PlaceID, review.UserID, review.Accessibility, review.Infrastructure, review.Value, review.Comment).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("レビューの作成失敗: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r *PostgresReviewsRepository) Update(ctx context.Context, id string, req model.UpdateReviewRequest) (*model.Review, error) {
	query := `UPDATE reviews SET accessibility = $1, infrastructure = $2, value = $3, comment = $4, updated_at = now()
		WHERE id::text = $5`
	res, err := r.client.DB.ExecContext(ctx, query, req.Accessibility, req.Infrastructure, req.Value, req.Comment, id)
	if err != nil {
		return nil, fmt.Errorf("レビューの更新失敗: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("レビュー ID %s: %w", id, model.ErrNotFound)
	}
	return r.GetByID(ctx, id)
}

func (r *PostgresReviewsRepository) Delete(ctx context.Context, id string) error {
	res, err := r.client.DB.ExecContext(ctx, `DELETE FROM reviews WHERE id::text = $1`, id)
	if err != nil {
		return fmt.Errorf("レビューの削除失敗: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("レビュー ID %s: %w", id, model.ErrNotFound)
	}
	return nil
}

func (r *PostgresReviewsRepository) AddPhotos(ctx context.Context, reviewID string, urls []string) ([]model.Photo, error) {
	tx, err := r.client.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("トランザクション開始失敗: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	photos := make([]model.Photo, 0, len(urls))
	for _, u := range urls {
		var p model.Photo
		query := `INSERT INTO photos (review_id, url) VALUES ($1::uuid, $2)
			RETURNING id::text AS id, review_id::text AS review_id, url, created_at`
		if err := tx.GetContext(ctx, &p, query, reviewID, u); err != nil {
			return nil, fmt.Errorf("写真の追加失敗: %w", err)
		}
		photos = append(photos, p)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("コミット失敗: %w", err)
	}
	return photos, nil
}
