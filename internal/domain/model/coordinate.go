package model

import (
	"encoding/json"
	"math"
)

// Coordinate 緯度経度（WGS84）。どちらかが0の場合は「不明」として扱う
type Coordinate struct {
	Latitude  float64 `json:"latitude" binding:"min=-90,max=90"`
	Longitude float64 `json:"longitude" binding:"min=-180,max=180"`
}

// IsKnown 両方の成分が0・NaN以外かどうか
func (c Coordinate) IsKnown() bool {
	return isSet(c.Latitude) && isSet(c.Longitude)
}

// InRange 緯度経度が有効範囲内かどうか
func (c Coordinate) InRange() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 && c.Longitude >= -180 && c.Longitude <= 180
}

func isSet(v float64) bool {
	return v != 0 && !math.IsNaN(v)
}

// LocationHint 検索の基準位置。座標か自由入力の地名のどちらか
type LocationHint struct {
	Coordinate *Coordinate
	Text       string
}

// HasCoordinate 座標が指定されているか
func (h LocationHint) HasCoordinate() bool {
	return h.Coordinate != nil
}

// Kilometers 距離(km)。JSONに無限大は存在しないため +Inf/NaN は null として出力する
type Kilometers float64

// MarshalJSON +Inf を null に変換
func (k Kilometers) MarshalJSON() ([]byte, error) {
	f := float64(k)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return []byte("null"), nil
	}
	return json.Marshal(f)
}

// Float64 float64 に変換
func (k Kilometers) Float64() float64 {
	return float64(k)
}
