package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"BoraAli-App/internal/domain/model"
	"BoraAli-App/internal/domain/repository"
	"BoraAli-App/internal/infrastructure/database"

	"github.com/supabase-community/postgrest-go"
)

type SupabasePlacesRepository struct {
	client *database.SupabaseClient
}

func NewSupabasePlacesRepository(client *database.SupabaseClient) repository.PlacesRepository {
	return &SupabasePlacesRepository{
		client: client,
	}
}

type placeInsertRow struct {
	Name      string   `json:"name"`
	Location  string   `json:"location"`
	Address   string   `json:"address,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Category  string   `json:"category,omitempty"`
	CreatedBy string   `json:"created_by,omitempty"`
}

func (r *SupabasePlacesRepository) List(ctx context.Context) ([]model.Place, error) {
	data, _, err := r.client.GetClient().From("places").
		Select("*", "", false).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("場所データの取得失敗: %w", err)
	}
	return decodePlaces(data)
}

func (r *SupabasePlacesRepository) GetByID(ctx context.Context, id string) (*model.Place, error) {
	data, _, err := r.client.GetClient().From("places").Select("*", "", false).Eq("id", id).Execute()
	if err != nil {
		return nil, fmt.Errorf("場所データの取得失敗: %w", err)
	}
	places, err := decodePlaces(data)
	if err != nil {
		return nil, err
	}
	if len(places) == 0 {
		return nil, fmt.Errorf("場所 ID %s: %w", id, model.ErrNotFound)
	}
	return &places[0], nil
}

func (r *SupabasePlacesRepository) Create(ctx context.Context, place *model.Place) (*model.Place, error) {
	row := placeInsertRow{
		Name:      place.Name,
		Location:  place.Location,
		Address:   place.Address,
		Latitude:  place.Latitude,
		Longitude: place.Longitude,
		Category:  place.Category,
		CreatedBy: place.CreatedBy,
	}
	data, _, err := r.client.GetClient().From("places").Insert(row, false, "", "representation", "").Execute()
	if err != nil {
		return nil, fmt.Errorf("場所の作成失敗: %w", err)
	}
	places, err := decodePlaces(data)
	if err != nil {
		return nil, err
	}
	if len(places) == 0 {
		return nil, fmt.Errorf("場所の作成結果が空です")
	}
	return &places[0], nil
}

func decodePlaces(data []byte) ([]model.Place, error) {
	var places []model.Place
	if err := json.Unmarshal(data, &places); err != nil {
		return nil, fmt.Errorf("場所データのJSONアンマーシャル失敗: %w", err)
	}
	for i := range places {
		if places[i].Reviews == nil {
			places[i].Reviews = []model.Review{}
		}
	}
	if places == nil {
		places = []model.Place{}
	}
	return places, nil
}
