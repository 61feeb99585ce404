package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"BoraAli-App/internal/domain/model"
	"BoraAli-App/internal/domain/repository"
	"BoraAli-App/internal/infrastructure/database"
)

const placeColumns = `id, name, location, COALESCE(address, '') AS address, latitude, longitude,
	COALESCE(category, '') AS category, COALESCE(created_by::text, '') AS created_by, created_at, updated_at`

type PostgresPlacesRepository struct {
	client *database.PostgreSQLClient
}

func NewPostgresPlacesRepository(client *database.PostgreSQLClient) repository.PlacesRepository {
	return &PostgresPlacesRepository{
		client: client,
	}
}

func (r *PostgresPlacesRepository) List(ctx context.Context) ([]model.Place, error) {
	places := []model.Place{}
	query := `SELECT ` + placeColumns + ` FROM places ORDER BY created_at DESC`
	if err := r.client.DB.SelectContext(ctx, &places, query); err != nil {
		return nil, fmt.Errorf("場所一覧の取得失敗: %w", err)
	}
	for i := range places {
		places[i].Reviews = []model.Review{}
	}
	return places, nil
}

func (r *PostgresPlacesRepository) GetByID(ctx context.Context, id string) (*model.Place, error) {
	var place model.Place
	query := `SELECT ` + placeColumns + ` FROM places WHERE id = $1`
	if err := r.client.DB.GetContext(ctx, &place, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("場所 ID %s: %w", id, model.ErrNotFound)
		}
		return nil, fmt.Errorf("場所の取得失敗: %w", err)
	}
	place.Reviews = []model.Review{}
	return &place, nil
}

func (r *PostgresPlacesRepository) Create(ctx context.Context, place *model.Place) (*model.Place, error) {
	var created model.Place
	query := `INSERT INTO places (name, location, address, latitude, longitude, category, created_by)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, NULLIF($6, ''), NULLIF($7, '')::uuid)
		RETURNING ` + placeColumns
	err := r.client.DB.GetContext(ctx, &created, query,
		place.Name, place.Location, place.Address, place.Latitude, place.Longitude, place.Category, place.CreatedBy)
	if err != nil {
		return nil, fmt.Errorf("場所の作成失敗: %w", err)
	}
	created.Reviews = []model.Review{}
	return &created, nil
}
