package geoip

import (
	"context"
	"errors"
	"fmt"

	"BoraAli-App/internal/domain/model"
	"BoraAli-App/internal/domain/repository"
	"BoraAli-App/internal/metrics"

	"github.com/rs/zerolog/log"
)

// StaticProvider は常に固定座標を返す
type StaticProvider struct {
	coord model.Coordinate
}

// NewStaticProvider は新しいStaticProviderを作成
func NewStaticProvider(coord model.Coordinate) *StaticProvider {
	return &StaticProvider{coord: coord}
}

func (p *StaticProvider) Locate(context.Context, string) (model.Coordinate, error) {
	return p.coord, nil
}

func (p *StaticProvider) Name() string {
	return "fallback"
}

// ChainProvider は先頭から順に問い合わせ、最初に成功した結果を使う
type ChainProvider struct {
	providers []repository.CoarseLocationRepository
}

// NewChainProvider は新しいChainProviderを作成
func NewChainProvider(providers ...repository.CoarseLocationRepository) *ChainProvider {
	return &ChainProvider{providers: providers}
}

// LocateWithSource は推定結果と、それを返したプロバイダ名を返す
func (c *ChainProvider) LocateWithSource(ctx context.Context, ip string) (model.Coordinate, string, error) {
	var errs []error
	for _, p := range c.providers {
		coord, err := p.Locate(ctx, ip)
		metrics.GeoLookupsTotal.WithLabelValues(p.Name(), metrics.Result(err)).Inc()
		if err == nil {
			return coord, p.Name(), nil
		}
		log.Ctx(ctx).Debug().Err(err).Str("provider", p.Name()).Msg("⚠️ 位置推定に失敗、次のプロバイダへ")
		errs = append(errs, fmt.Errorf("%s: %w", p.Name(), err))
	}
	if len(errs) == 0 {
		return model.Coordinate{}, "", errors.New("位置推定プロバイダが設定されていません")
	}
	return model.Coordinate{}, "", errors.Join(errs...)
}

func (c *ChainProvider) Locate(ctx context.Context, ip string) (model.Coordinate, error) {
	coord, _, err := c.LocateWithSource(ctx, ip)
	return coord, err
}

func (c *ChainProvider) Name() string {
	return "chain"
}
