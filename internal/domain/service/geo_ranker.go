package service

import (
	"sort"
	"sync/atomic"
	"time"

	"BoraAli-App/internal/domain/helper"
	"BoraAli-App/internal/domain/model"

	"github.com/google/uuid"
)

type rankedSuggestion struct {
	raw      model.PlaceSuggestion
	distance float64
}

// Rank は利用者の位置からの距離で候補を並べ替えてPlaceに変換する
// userがnilの場合は入力順のまま距離なしで返す
func Rank(raws []model.PlaceSuggestion, user *model.Coordinate) []model.Place {
	places := make([]model.Place, 0, len(raws))
	if user == nil {
		for i, raw := range raws {
			places = append(places, Normalize(raw, i))
		}
		return places
	}

	ranked := make([]rankedSuggestion, len(raws))
	for i, raw := range raws {
		ranked[i] = rankedSuggestion{raw: raw, distance: helper.DistanceKm(*user, raw.Coordinate())}
	}
	// 同距離の候補は入力順を保つ
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].distance < ranked[j].distance
	})

	for i, r := range ranked {
		place := Normalize(r.raw, i)
		d := model.Kilometers(r.distance)
		place.Distance = &d
		places = append(places, place)
	}
	return places
}

// GeoRanker は検索ごとにバッチIDと単調増加のシーケンスを払い出す
type GeoRanker struct {
	seq   atomic.Int64
	clock func() time.Time
}

// NewGeoRanker は新しいGeoRankerを作成
func NewGeoRanker() *GeoRanker {
	return &GeoRanker{clock: time.Now}
}

// NewBatch は候補をランク付けし、1つのバッチとしてまとめる
func (r *GeoRanker) NewBatch(raws []model.PlaceSuggestion, user *model.Coordinate) *model.PlaceBatch {
	batch := &model.PlaceBatch{
		ID:        uuid.NewString(),
		Seq:       r.seq.Add(1),
		Ranked:    user != nil,
		Places:    Rank(raws, user),
		CreatedAt: r.clock(),
	}
	for i := range batch.Places {
		batch.Places[i].BatchID = batch.ID
		batch.Places[i].BatchSeq = batch.Seq
	}
	return batch
}
