package geoip

import (
	"context"
	"fmt"
	"net"

	"BoraAli-App/internal/domain/model"

	"github.com/oschwald/geoip2-golang"
)

// MaxMindProvider はローカルのGeoLite2/GeoIP2 Cityデータベースで位置を推定する
type MaxMindProvider struct {
	reader *geoip2.Reader
}

// OpenMaxMind はデータベースファイルを開く
func OpenMaxMind(path string) (*MaxMindProvider, error) {
	reader, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("GeoIPデータベースのオープンに失敗: %w", err)
	}
	return &MaxMindProvider{reader: reader}, nil
}

func (p *MaxMindProvider) Locate(_ context.Context, ip string) (model.Coordinate, error) {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return model.Coordinate{}, fmt.Errorf("不正なIPアドレス: %q", ip)
	}
	record, err := p.reader.City(parsed)
	if err != nil {
		return model.Coordinate{}, fmt.Errorf("GeoIP検索に失敗: %w", err)
	}
	coord := model.Coordinate{Latitude: record.Location.Latitude, Longitude: record.Location.Longitude}
	if !coord.IsKnown() {
		return model.Coordinate{}, fmt.Errorf("IP %s の位置情報なし", ip)
	}
	return coord, nil
}

func (p *MaxMindProvider) Name() string {
	return "maxmind"
}

// Close はデータベースを閉じる
func (p *MaxMindProvider) Close() error {
	return p.reader.Close()
}
