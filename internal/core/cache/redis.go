package cache

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"

	"smartbite/internal/infrastructure/config"
	"smartbite/internal/pkg/common"
)

// RedisStore Redis 事實快取，重啟後仍保留跨執行的查詢結果
type RedisStore struct {
	client *redis.Client
	config *config.CacheConfig
}

// NewRedisStore 創建 Redis 事實快取
func NewRedisStore(cfg *config.CacheConfig) (*RedisStore, error) {
	if !cfg.Enabled || !cfg.RedisEnabled {
		return &RedisStore{config: cfg}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})

	// 測試連接
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{
		client: client,
		config: cfg,
	}, nil
}

// Get 獲取快取的事實
func (s *RedisStore) Get(ctx context.Context, name string) (*Facts, error) {
	if s.client == nil {
		return nil, common.ErrCacheDisabled
	}

	data, err := s.client.Get(ctx, s.generateKey(name)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, common.ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get cache: %w", err)
	}

	var facts Facts
	if err := common.ParseJSONBytes(data, &facts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cache: %w", err)
	}
	return &facts, nil
}

// Set 設置快取的事實
func (s *RedisStore) Set(ctx context.Context, name string, facts *Facts) error {
	if s.client == nil || facts == nil {
		return nil
	}

	data, err := common.ToJSON(facts)
	if err != nil {
		return fmt.Errorf("failed to marshal facts: %w", err)
	}

	if err := s.client.Set(ctx, s.generateKey(name), data, s.config.TTL).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// Close 關閉 Redis 連接
func (s *RedisStore) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

// generateKey 生成快取鍵
func (s *RedisStore) generateKey(name string) string {
	return fmt.Sprintf("facts:%s", name)
}
