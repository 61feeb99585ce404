package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss はキャッシュに値が存在しないことを示す
var ErrMiss = errors.New("cache miss")

// Cache はバイト列を保存するTTL付きキャッシュ
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Name() string
}
