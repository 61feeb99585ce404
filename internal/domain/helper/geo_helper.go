package helper

import (
	"math"

	"BoraAli-App/internal/domain/model"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

const earthRadiusKm = 6371.0

// DistanceKm は2地点間の大円距離を計算する (km)
// どちらかの成分が0またはNaNの場合は +Inf を返す
func DistanceKm(a, b model.Coordinate) float64 {
	if !a.IsKnown() || !b.IsKnown() {
		return math.Inf(1)
	}
	lat1 := toRadians(a.Latitude)
	lat2 := toRadians(b.Latitude)
	dLat := toRadians(b.Latitude - a.Latitude)
	dLng := toRadians(b.Longitude - a.Longitude)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// ToPoint は座標を orb.Point (経度, 緯度) に変換する
func ToPoint(c model.Coordinate) orb.Point {
	return orb.Point{c.Longitude, c.Latitude}
}

// FromPoint は orb.Point を座標に変換する
func FromPoint(p orb.Point) model.Coordinate {
	return model.Coordinate{Latitude: p.Lat(), Longitude: p.Lon()}
}

// RadiusBound は中心から半径radiusKmを包含する矩形を返す
func RadiusBound(center model.Coordinate, radiusKm float64) orb.Bound {
	return geo.NewBoundAroundPoint(ToPoint(center), radiusKm*1000)
}

// WithinRadius は場所が中心から半径内にあるかを判定する
// 矩形で粗く絞り込んでから大円距離で確定する
func WithinRadius(center model.Coordinate, place *model.Place, radiusKm float64) bool {
	c := place.Coordinate()
	if !c.IsKnown() {
		return false
	}
	if !RadiusBound(center, radiusKm).Contains(ToPoint(c)) {
		return false
	}
	return DistanceKm(center, c) <= radiusKm
}
