package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartbite/internal/infrastructure/config"
	"smartbite/internal/pkg/common"
)

func testConfig(maxSize int, ttl time.Duration) *config.Config {
	return &config.Config{
		Cache: config.CacheConfig{
			Enabled:         true,
			MaxSize:         maxSize,
			TTL:             ttl,
			CleanupInterval: time.Hour,
		},
	}
}

func TestManager_SetGet(t *testing.T) {
	m := NewManager(testConfig(10, time.Hour))
	require.NotNil(t, m)
	defer m.Close()

	ctx := context.Background()
	facts := &Facts{
		Nutrition: common.NutritionFacts{KcalPerGram: 3.64},
		Price:     common.PriceFacts{Price: common.Float64Ptr(0.002), Unit: common.PerGram},
	}
	require.NoError(t, m.Set(ctx, "flour", facts))

	got, err := m.Get(ctx, "flour")
	require.NoError(t, err)
	assert.Equal(t, *facts, *got)
}

func TestManager_MissAndExpiry(t *testing.T) {
	m := NewManager(testConfig(10, time.Millisecond))
	require.NotNil(t, m)
	defer m.Close()

	ctx := context.Background()
	_, err := m.Get(ctx, "unknown")
	assert.ErrorIs(t, err, common.ErrCacheMiss)

	require.NoError(t, m.Set(ctx, "egg", &Facts{Nutrition: common.NutritionFacts{KcalPerEach: 70}}))
	time.Sleep(5 * time.Millisecond)
	_, err = m.Get(ctx, "egg")
	assert.ErrorIs(t, err, common.ErrCacheMiss)
}

func TestManager_LRUEviction(t *testing.T) {
	m := NewManager(testConfig(2, time.Hour))
	require.NotNil(t, m)
	defer m.Close()

	ctx := context.Background()
	require.NoError(t, m.Set(ctx, "a", &Facts{}))
	require.NoError(t, m.Set(ctx, "b", &Facts{}))

	// 訪問 a 讓 b 成為淘汰目標
	_, err := m.Get(ctx, "a")
	require.NoError(t, err)

	require.NoError(t, m.Set(ctx, "c", &Facts{}))

	_, err = m.Get(ctx, "b")
	assert.ErrorIs(t, err, common.ErrCacheMiss)
	_, err = m.Get(ctx, "a")
	assert.NoError(t, err)
}

func TestManager_DisabledReturnsNil(t *testing.T) {
	cfg := testConfig(10, time.Hour)
	cfg.Cache.Enabled = false
	assert.Nil(t, NewManager(cfg))
}

func TestManager_Stats(t *testing.T) {
	m := NewManager(testConfig(10, time.Hour))
	require.NotNil(t, m)
	defer m.Close()

	ctx := context.Background()
	_, _ = m.Get(ctx, "miss")
	require.NoError(t, m.Set(ctx, "hit", &Facts{}))
	_, _ = m.Get(ctx, "hit")

	stats := m.GetStats()
	assert.Equal(t, int64(1), stats["hits"])
	assert.Equal(t, int64(1), stats["misses"])
	assert.Equal(t, 1, stats["size"])
}
