package cache

import (
	"context"

	"smartbite/internal/pkg/common"
)

// Facts 一個標準食材名稱對應的全部事實，營養與價格一起快取
type Facts struct {
	Nutrition common.NutritionFacts `json:"nutrition"`
	Price     common.PriceFacts     `json:"price"`
}

// Store 事實快取的介面，記憶體與 Redis 實作共用
type Store interface {
	Get(ctx context.Context, name string) (*Facts, error)
	Set(ctx context.Context, name string, facts *Facts) error
	Close() error
}
