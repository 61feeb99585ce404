package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache はプロセス内のキャッシュ。Redis未設定時とテストで使用する
type MemoryCache struct {
	store *gocache.Cache
}

// NewMemoryCache は新しいMemoryCacheを作成
func NewMemoryCache(defaultTTL, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{store: gocache.New(defaultTTL, cleanupInterval)}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := c.store.Get(key)
	if !ok {
		return nil, ErrMiss
	}
	return v.([]byte), nil
}

func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.store.Set(key, append([]byte(nil), value...), ttl)
	return nil
}

func (c *MemoryCache) Name() string {
	return "memory"
}
