package common

// UnitKind 食材份量的種類
type UnitKind string

const (
	// UnitMass 以公克計量的份量
	UnitMass UnitKind = "mass"
	// UnitCount 以「個」計量的份量（例如 3 顆蛋）
	UnitCount UnitKind = "count"
	// UnitUnparsed 無法安全解析的份量，貢獻一律為零
	UnitUnparsed UnitKind = "unparsed"
)

// PriceUnit 價格資料的計價單位
type PriceUnit string

const (
	// PerGram 每公克計價
	PerGram PriceUnit = "g"
	// PerEach 每個計價
	PerEach PriceUnit = "each"
)

// Ingredient 解析後的食材行
// 不變量：QuantityG 與 EachCount 恰好一個有值，除非 UnitKind 為 unparsed（兩者皆零）
type Ingredient struct {
	RawText       string   `json:"raw_text"`
	CanonicalName string   `json:"canonical_name"`
	UnitKind      UnitKind `json:"unit_kind"`
	QuantityG     float64  `json:"quantity_g,omitempty"`
	EachCount     float64  `json:"each_count,omitempty"`
}

// NutritionFacts 營養資料，零值欄位表示該項缺漏
type NutritionFacts struct {
	KcalPerGram  float64  `json:"kcal_per_gram,omitempty"`
	KcalPerEach  float64  `json:"kcal_per_each,omitempty"`
	GramsPerEach *float64 `json:"grams_per_each,omitempty"`
}

// Empty 回報是否完全沒有可用的熱量資料
func (f NutritionFacts) Empty() bool {
	return f.KcalPerGram <= 0 && f.KcalPerEach <= 0
}

// BridgeFactor 取得每個對應的公克數；供應商直接提供者優先，
// 否則由 kcal_per_each / kcal_per_gram 推導
func (f NutritionFacts) BridgeFactor() (float64, bool) {
	if f.GramsPerEach != nil && *f.GramsPerEach > 0 {
		return *f.GramsPerEach, true
	}
	if f.KcalPerEach > 0 && f.KcalPerGram > 0 {
		return f.KcalPerEach / f.KcalPerGram, true
	}
	return 0, false
}

// PriceFacts 價格資料；Price 為 nil 表示無資料（含額度用盡）
type PriceFacts struct {
	Price *float64  `json:"price,omitempty"`
	Unit  PriceUnit `json:"unit"`
}

// ReconciledLine 單一食材的對帳結果
type ReconciledLine struct {
	Ingredient Ingredient `json:"ingredient"`
	Kcal       float64    `json:"kcal_contribution"`
	Cost       float64    `json:"cost_contribution"`
	// Bridged 表示曾以 grams_per_each 換算單位
	Bridged bool `json:"bridged"`
	// Missing 表示營養或價格資料缺漏，該側貢獻以零計
	Missing bool `json:"missing"`
}

// Recipe 擷取到的食譜（原始食材行尚未解析）
type Recipe struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	URL         string   `json:"url"`
	Servings    int      `json:"servings"`
	Ingredients []string `json:"ingredients"`
}

// RecipeResult 單一食譜的彙總結果，建構後不再修改
type RecipeResult struct {
	RecipeID       string           `json:"recipe_id"`
	Title          string           `json:"title"`
	URL            string           `json:"url"`
	Servings       int              `json:"servings"`
	Lines          []ReconciledLine `json:"lines"`
	KcalTotal      float64          `json:"kcal_total"`
	CostTotal      float64          `json:"cost_total"`
	KcalPerServing float64          `json:"kcal_per_serving"`
	CostPerServing float64          `json:"cost_per_serving"`
}

// Float64Ptr 回傳 float64 指標，provider 組裝 facts 時使用
func Float64Ptr(v float64) *float64 {
	return &v
}
