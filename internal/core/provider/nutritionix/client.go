package nutritionix

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"smartbite/internal/infrastructure/config"
	"smartbite/internal/pkg/common"
)

// Client Nutritionix 自然語言營養查詢的客戶端
type Client struct {
	client *resty.Client
	cfg    *config.NutritionixConfig
}

// NewClient 建立 Nutritionix 客戶端
func NewClient(cfg *config.NutritionixConfig) *Client {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("x-app-id", cfg.AppID).
		SetHeader("x-app-key", cfg.APIKey)

	return &Client{
		client: client,
		cfg:    cfg,
	}
}

// nutrientsRequest /natural/nutrients 的請求格式
type nutrientsRequest struct {
	Query string `json:"query"`
}

// nutrientsResponse /natural/nutrients 的回應格式（只取會用到的欄位）
type nutrientsResponse struct {
	Foods []food `json:"foods"`
}

type food struct {
	FoodName           string       `json:"food_name"`
	ServingQty         float64      `json:"serving_qty"`
	ServingUnit        string       `json:"serving_unit"`
	ServingWeightGrams float64      `json:"serving_weight_grams"`
	NfCalories         float64      `json:"nf_calories"`
	AltMeasures        []altMeasure `json:"alt_measures"`
}

type altMeasure struct {
	ServingWeight float64 `json:"serving_weight"`
	Measure       string  `json:"measure"`
	Qty           float64 `json:"qty"`
}

// eachLikeUnits 視為逐個計量的 serving 單位
var eachLikeUnits = map[string]struct{}{
	"each": {}, "ea": {}, "count": {}, "piece": {}, "slice": {}, "whole": {},
	"small": {}, "medium": {}, "large": {}, "extra large": {}, "xlarge": {},
	"clove": {}, "sprig": {}, "leaf": {}, "fruit": {}, "egg": {}, "unit": {},
}

// volumeGrams serving_weight_grams 缺漏時的容量換算（近似固體食材的每單位公克數）
var volumeGrams = map[string]float64{
	"tsp": 4.5, "teaspoon": 4.5,
	"tbsp": 13.5, "tablespoon": 13.5,
	"cup": 218.0, "fl oz": 26.9, "ml": 0.91,
}

// LookupNutrition 查一個標準食材名稱的營養事實。
// 查無資料或額度用盡時回傳空事實，只有傳輸層失敗才回傳錯誤。
func (c *Client) LookupNutrition(ctx context.Context, name string) (common.NutritionFacts, error) {
	if !c.cfg.Enabled || c.cfg.AppID == "" || c.cfg.APIKey == "" {
		return common.NutritionFacts{}, nil
	}

	start := time.Now()
	var result nutrientsResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(nutrientsRequest{Query: name}).
		SetResult(&result).
		Post("/natural/nutrients")
	common.LogProviderCall("nutritionix", name, time.Since(start), err)
	if err != nil {
		return common.NutritionFacts{}, fmt.Errorf("nutritionix request failed: %w", err)
	}

	switch resp.StatusCode() {
	case http.StatusOK:
	case http.StatusNotFound, http.StatusPaymentRequired, http.StatusTooManyRequests:
		// 查無資料或額度用盡，當成缺值而不是失敗
		return common.NutritionFacts{}, nil
	default:
		return common.NutritionFacts{}, fmt.Errorf("nutritionix returned status %d", resp.StatusCode())
	}

	if len(result.Foods) == 0 {
		return common.NutritionFacts{}, nil
	}
	return factsFromFood(result.Foods[0]), nil
}

// factsFromFood 把 Nutritionix 的食物資料換算成每公克與每顆的事實
func factsFromFood(f food) common.NutritionFacts {
	var facts common.NutritionFacts

	grams := f.ServingWeightGrams
	if grams <= 0 {
		// 部分品項只有容量 serving，用近似密度補上
		if g, ok := volumeGrams[normalizeUnit(f.ServingUnit)]; ok && f.ServingQty > 0 {
			grams = f.ServingQty * g
		}
	}
	if grams > 0 && f.NfCalories > 0 {
		facts.KcalPerGram = f.NfCalories / grams
	}

	// serving 本身就是逐個計量時直接取每顆資料
	if isEachLike(f.ServingUnit) && f.ServingQty > 0 && f.NfCalories > 0 {
		facts.KcalPerEach = f.NfCalories / f.ServingQty
		if f.ServingWeightGrams > 0 {
			facts.GramsPerEach = common.Float64Ptr(f.ServingWeightGrams / f.ServingQty)
		}
		return facts
	}

	// 否則從替代計量中找逐個的條目，配每公克熱量推每顆熱量
	for _, m := range f.AltMeasures {
		if !isEachLike(m.Measure) || m.Qty <= 0 || m.ServingWeight <= 0 {
			continue
		}
		gramsPerEach := m.ServingWeight / m.Qty
		facts.GramsPerEach = common.Float64Ptr(gramsPerEach)
		if facts.KcalPerGram > 0 {
			facts.KcalPerEach = facts.KcalPerGram * gramsPerEach
		}
		break
	}
	return facts
}

func isEachLike(unit string) bool {
	_, ok := eachLikeUnits[normalizeUnit(unit)]
	return ok
}

func normalizeUnit(unit string) string {
	return strings.ToLower(strings.TrimSpace(unit))
}
