package repository

import (
	"context"

	"BoraAli-App/internal/domain/model"
)

// SearchBatchRepository は検索結果バッチをTTL付きで保存する
type SearchBatchRepository interface {
	Save(ctx context.Context, batch *model.PlaceBatch) error
	// Get は期限切れまたは存在しない場合 model.ErrNotFound を返す
	Get(ctx context.Context, id string) (*model.PlaceBatch, error)
}

// CoarseLocationRepository はIPアドレスから大まかな位置を推定する
type CoarseLocationRepository interface {
	Locate(ctx context.Context, ip string) (model.Coordinate, error)
	Name() string
}
