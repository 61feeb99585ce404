package service

import (
	"fmt"

	"BoraAli-App/internal/domain/model"
)

// Normalize は生成AIの候補を表示用のPlaceに変換する
// IDは "{name}-{index}" でバッチ内でのみ一意
func Normalize(raw model.PlaceSuggestion, index int) model.Place {
	place := model.Place{
		ID:        fmt.Sprintf("%s-%d", raw.Name, index),
		Name:      raw.Name,
		Location:  raw.Location,
		Address:   raw.Address,
		Reviews:   []model.Review{},
		AISummary: model.NoReviewsSummary,
	}
	// 0は「不明」なので座標として保持しない
	if raw.Latitude != 0 {
		lat := raw.Latitude
		place.Latitude = &lat
	}
	if raw.Longitude != 0 {
		lon := raw.Longitude
		place.Longitude = &lon
	}
	return place
}
