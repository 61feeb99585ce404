package geoip

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"BoraAli-App/internal/domain/model"
)

type ipapiResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Error     bool    `json:"error"`
	Reason    string  `json:"reason"`
}

// IPAPIProvider は ipapi.co のHTTP APIで位置を推定する
type IPAPIProvider struct {
	baseURL string
	client  *http.Client
}

// NewIPAPIProvider は新しいIPAPIProviderを作成。clientがnilなら5秒タイムアウトの既定クライアント
func NewIPAPIProvider(baseURL string, client *http.Client) *IPAPIProvider {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	return &IPAPIProvider{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

func (p *IPAPIProvider) Locate(ctx context.Context, ip string) (model.Coordinate, error) {
	u := p.baseURL + "/json/"
	// プライベートアドレスは送らず、送信元IPで推定させる
	if parsed := net.ParseIP(ip); parsed != nil && !parsed.IsPrivate() && !parsed.IsLoopback() {
		u = p.baseURL + "/" + ip + "/json/"
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return model.Coordinate{}, err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return model.Coordinate{}, fmt.Errorf("ipapiへのリクエストに失敗: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return model.Coordinate{}, fmt.Errorf("ipapiが異常なステータスを返却: %d", resp.StatusCode)
	}

	var r ipapiResponse
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return model.Coordinate{}, fmt.Errorf("ipapi応答の解析に失敗: %w", err)
	}
	if r.Error {
		return model.Coordinate{}, fmt.Errorf("ipapiエラー: %s", r.Reason)
	}
	coord := model.Coordinate{Latitude: r.Latitude, Longitude: r.Longitude}
	if !coord.IsKnown() {
		return model.Coordinate{}, fmt.Errorf("ipapi応答に座標がありません")
	}
	return coord, nil
}

func (p *IPAPIProvider) Name() string {
	return "ipapi"
}
