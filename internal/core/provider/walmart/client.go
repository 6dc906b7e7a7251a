package walmart

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"smartbite/internal/infrastructure/config"
	"smartbite/internal/pkg/common"
)

// Client 透過 SerpAPI 的 Walmart 引擎查食材價格
type Client struct {
	client *resty.Client
	cfg    *config.SerpAPIConfig
}

// NewClient 建立 Walmart 價格客戶端
func NewClient(cfg *config.SerpAPIConfig) *Client {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout)

	return &Client{
		client: client,
		cfg:    cfg,
	}
}

// searchResponse SerpAPI Walmart 搜尋回應（只取會用到的欄位）
type searchResponse struct {
	OrganicResults []product `json:"organic_results"`
}

type product struct {
	Title        string       `json:"title"`
	PrimaryOffer primaryOffer `json:"primary_offer"`
	PricePerUnit pricePerUnit `json:"price_per_unit"`
}

type primaryOffer struct {
	OfferPrice float64 `json:"offer_price"`
}

type pricePerUnit struct {
	Amount string `json:"amount"`
	Unit   string `json:"unit"`
}

// LookupPrice 查一個標準食材名稱的價格事實。
// 查無商品或額度用盡時回傳空事實，只有傳輸層失敗才回傳錯誤。
func (c *Client) LookupPrice(ctx context.Context, name string) (common.PriceFacts, error) {
	if !c.cfg.Enabled || c.cfg.APIKey == "" {
		return common.PriceFacts{}, nil
	}

	start := time.Now()
	var result searchResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"engine":  "walmart",
			"query":   name,
			"api_key": c.cfg.APIKey,
		}).
		SetResult(&result).
		Get("/search.json")
	common.LogProviderCall("walmart", name, time.Since(start), err)
	if err != nil {
		return common.PriceFacts{}, fmt.Errorf("serpapi request failed: %w", err)
	}

	switch resp.StatusCode() {
	case http.StatusOK:
	case http.StatusNotFound, http.StatusPaymentRequired, http.StatusTooManyRequests:
		return common.PriceFacts{}, nil
	default:
		return common.PriceFacts{}, fmt.Errorf("serpapi returned status %d", resp.StatusCode())
	}

	if len(result.OrganicResults) == 0 {
		return common.PriceFacts{}, nil
	}
	return factsFromProduct(result.OrganicResults[0]), nil
}

// factsFromProduct 從單一商品推導價格事實。
// 優先序：單位價字串、標題的逐個線索配售價、售價除以包裝重量。
func factsFromProduct(p product) common.PriceFacts {
	if p.PricePerUnit.Amount != "" {
		// SerpAPI 有時直接給 "23.4 ¢/oz" 這種完整字串，
		// 有時把數字與單位拆在兩個欄位
		if facts, ok := ParsePricePerUnit(p.PricePerUnit.Amount); ok {
			return facts
		}
		combined := fmt.Sprintf("%s $/%s", p.PricePerUnit.Amount, p.PricePerUnit.Unit)
		if facts, ok := ParsePricePerUnit(combined); ok {
			return facts
		}
	}

	offer := p.PrimaryOffer.OfferPrice
	if offer <= 0 {
		return common.PriceFacts{}
	}
	if titleSuggestsEach(p.Title) {
		return common.PriceFacts{Price: common.Float64Ptr(offer), Unit: common.PerEach}
	}
	if grams, ok := ParseWeightGrams(p.Title); ok && grams > 0 {
		return common.PriceFacts{Price: common.Float64Ptr(offer / grams), Unit: common.PerGram}
	}
	// 沒有任何重量線索時退而求其次當成逐個販售
	return common.PriceFacts{Price: common.Float64Ptr(offer), Unit: common.PerEach}
}
