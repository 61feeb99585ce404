package usecase

import (
	"context"
	"fmt"

	"BoraAli-App/internal/domain/model"
	"BoraAli-App/internal/domain/service"

	"github.com/rs/zerolog/log"
)

// CoarseLocator はIPから大まかな位置と推定元を返す
type CoarseLocator interface {
	LocateWithSource(ctx context.Context, ip string) (model.Coordinate, string, error)
}

type LocationUseCase interface {
	// Resolve は粗い推定と端末の精密な座標を組み合わせて現在地を決める
	Resolve(ctx context.Context, ip string, precise *model.Coordinate) (model.ResolvedLocation, error)
}

// locationUseCaseImpl はLocationUseCaseの実装
type locationUseCaseImpl struct {
	coarse CoarseLocator
}

// NewLocationUseCase は新しいLocationUseCaseインスタンスを作成
func NewLocationUseCase(coarse CoarseLocator) LocationUseCase {
	return &locationUseCaseImpl{coarse: coarse}
}

func (u *locationUseCaseImpl) Resolve(ctx context.Context, ip string, precise *model.Coordinate) (model.ResolvedLocation, error) {
	tracker := service.NewLocationTracker()

	coarseErr := make(chan error, 1)
	go func() {
		coord, source, err := u.coarse.LocateWithSource(ctx, ip)
		if err == nil {
			tracker.Apply(model.StageCoarse, coord, source)
		}
		coarseErr <- err
	}()

	// 精密な推定の失敗は握りつぶし、粗い推定のまま続行する
	if precise != nil {
		if precise.InRange() && precise.IsKnown() {
			tracker.Apply(model.StagePrecise, *precise, "device")
		} else {
			log.Ctx(ctx).Debug().Msg("⚠️ 端末の座標が不正なため無視")
		}
	}

	if err := <-coarseErr; err != nil && tracker.Stage() == model.StageUnresolved {
		return model.ResolvedLocation{}, fmt.Errorf("%w: 位置の推定に失敗: %v", model.ErrUpstream, err)
	}
	return tracker.Snapshot(), nil
}
