// Package kv 提供收藏資料使用的字串鍵值儲存。
// 每個集合以單一鍵保存整份 JSON，寫入即覆蓋。
package kv

import (
	"context"
	"fmt"

	"dinedecide/internal/infrastructure/config"
)

// Store 鍵值儲存介面；鍵不存在時 ok 為 false 且 err 為 nil
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// New 依設定建立對應的儲存
func New(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return NewMemoryStore(), nil
	case config.DriverBolt:
		return NewBoltStore(cfg.BoltPath)
	case config.DriverRedis:
		return NewRedisStore(ctx, RedisOptions{
			Addr:      cfg.RedisAddr,
			Password:  cfg.RedisPassword,
			DB:        cfg.RedisDB,
			Namespace: cfg.Namespace,
		})
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
