package provider

import (
	"context"

	"smartbite/internal/pkg/common"
)

// RecipeSource 依查詢字串取回食譜清單，最多 topK 份
type RecipeSource interface {
	Fetch(ctx context.Context, query string, topK int) ([]common.Recipe, error)
}

// NutritionProvider 依標準食材名稱查營養事實。
// 查無資料時回傳空的事實與 nil 錯誤，錯誤保留給傳輸層的失敗。
type NutritionProvider interface {
	LookupNutrition(ctx context.Context, name string) (common.NutritionFacts, error)
}

// PriceProvider 依標準食材名稱查價格事實，語意同 NutritionProvider
type PriceProvider interface {
	LookupPrice(ctx context.Context, name string) (common.PriceFacts, error)
}
