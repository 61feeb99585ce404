package repository

import (
	"context"
	"fmt"
	"time"

	"BoraAli-App/internal/domain/model"
	"BoraAli-App/internal/domain/repository"

	"github.com/patrickmn/go-cache"
)

// MemoryBatchRepository はプロセス内に検索結果バッチを保持する。Firestore未設定時に使用
type MemoryBatchRepository struct {
	store *cache.Cache
}

// NewMemoryBatchRepository 新しいMemoryBatchRepositoryインスタンスを作成
func NewMemoryBatchRepository(ttl time.Duration) repository.SearchBatchRepository {
	return &MemoryBatchRepository{store: cache.New(ttl, ttl/2)}
}

func (r *MemoryBatchRepository) Save(_ context.Context, batch *model.PlaceBatch) error {
	r.store.SetDefault(batch.ID, cloneBatch(batch))
	return nil
}

func (r *MemoryBatchRepository) Get(_ context.Context, id string) (*model.PlaceBatch, error) {
	v, ok := r.store.Get(id)
	if !ok {
		return nil, fmt.Errorf("バッチ %s: %w", id, model.ErrNotFound)
	}
	return cloneBatch(v.(*model.PlaceBatch)), nil
}

// cloneBatch はバッチを不変に保つため複製する
func cloneBatch(b *model.PlaceBatch) *model.PlaceBatch {
	cp := *b
	cp.Places = make([]model.Place, len(b.Places))
	for i, p := range b.Places {
		cp.Places[i] = p.Clone()
	}
	return &cp
}
