package scraper

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"smartbite/internal/infrastructure/config"
	"smartbite/internal/pkg/common"
)

// Scraper 從 Allrecipes 搜尋並擷取食譜
type Scraper struct {
	client *resty.Client
	cfg    *config.ScraperConfig
}

// NewScraper 建立食譜擷取器
func NewScraper(cfg *config.ScraperConfig) *Scraper {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.Retries).
		SetRetryWaitTime(500 * time.Millisecond).
		SetHeader("User-Agent", cfg.UserAgent)

	return &Scraper{
		client: client,
		cfg:    cfg,
	}
}

var (
	recipeURLPattern = regexp.MustCompile(`^https?://www\.allrecipes\.com/recipe/\d+/`)
	servingsPattern  = regexp.MustCompile(`(?i)servings?\s*:?\s*(\d+)`)
	yieldPattern     = regexp.MustCompile(`(\d+)`)
	numericOnly      = regexp.MustCompile(`^[\d\s/.,-]+$`)
)

// instructionVerbs 出現在行首就幾乎可以斷定是步驟而非食材
var instructionVerbs = map[string]struct{}{
	"preheat": {}, "combine": {}, "whisk": {}, "stir": {}, "bake": {},
	"cook": {}, "heat": {}, "place": {}, "remove": {}, "serve": {},
	"mix": {}, "pour": {}, "cover": {}, "bring": {}, "reduce": {},
}

// Fetch 依查詢字串搜尋食譜，逐份擷取，最多回傳 topK 份。
// 單一食譜頁失敗時略過該頁繼續，整批搜尋失敗才回傳錯誤。
func (s *Scraper) Fetch(ctx context.Context, query string, topK int) ([]common.Recipe, error) {
	if topK <= 0 {
		topK = s.cfg.TopK
	}

	links, err := s.search(ctx, query, topK)
	if err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return nil, common.ErrNoRecipesFound
	}

	recipes := make([]common.Recipe, 0, len(links))
	for _, link := range links {
		recipe, err := s.fetchRecipe(ctx, link)
		if err != nil {
			common.LogWarn("略過擷取失敗的食譜頁",
				zap.String("url", link),
				zap.Error(err))
			continue
		}
		recipes = append(recipes, *recipe)
	}
	if len(recipes) == 0 {
		return nil, common.ErrNoRecipesFound
	}
	return recipes, nil
}

// search 取回搜尋結果頁裡的食譜連結，去重並保留頁面順序
func (s *Scraper) search(ctx context.Context, query string, topK int) ([]string, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("q", query).
		Get("/search")
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("search returned status %d", resp.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(resp.Body())))
	if err != nil {
		return nil, fmt.Errorf("parse search page: %w", err)
	}

	seen := make(map[string]struct{})
	links := make([]string, 0, topK)
	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		href = stripQuery(href)
		if !recipeURLPattern.MatchString(href) {
			return true
		}
		if _, dup := seen[href]; dup {
			return true
		}
		seen[href] = struct{}{}
		links = append(links, href)
		return len(links) < topK
	})
	return links, nil
}

// fetchRecipe 擷取單一食譜頁，先走 JSON-LD 再退回 DOM 選擇器
func (s *Scraper) fetchRecipe(ctx context.Context, link string) (*common.Recipe, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		Get(link)
	if err != nil {
		return nil, fmt.Errorf("recipe request failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("recipe page returned status %d", resp.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(resp.Body())))
	if err != nil {
		return nil, fmt.Errorf("parse recipe page: %w", err)
	}

	recipe := &common.Recipe{
		ID:  recipeID(link),
		URL: link,
	}

	if ld := extractJSONLD(doc); ld != nil {
		recipe.Title = ld.Name
		recipe.Servings = servingsFromYield(ld.RecipeYield)
		recipe.Ingredients = filterIngredients(ld.RecipeIngredient)
	}

	// JSON-LD 缺漏時退回 DOM
	if recipe.Title == "" {
		recipe.Title = strings.TrimSpace(doc.Find("h1").First().Text())
	}
	if len(recipe.Ingredients) == 0 {
		recipe.Ingredients = ingredientsFromDOM(doc)
	}
	if recipe.Servings == 0 {
		recipe.Servings = servingsFromDOM(doc)
	}

	if len(recipe.Ingredients) == 0 {
		return nil, fmt.Errorf("no ingredients found in %s", link)
	}
	return recipe, nil
}

// ldRecipe JSON-LD 的 Recipe 節點（只取會用到的欄位）
type ldRecipe struct {
	Type             json.RawMessage `json:"@type"`
	Name             string          `json:"name"`
	RecipeYield      json.RawMessage `json:"recipeYield"`
	RecipeIngredient []string        `json:"recipeIngredient"`
}

// extractJSONLD 掃描頁面的 ld+json 區塊找出 Recipe 節點。
// Allrecipes 會把節點包在頂層陣列或 @graph 裡，三種形態都要處理。
func extractJSONLD(doc *goquery.Document) *ldRecipe {
	var found *ldRecipe
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		raw := strings.TrimSpace(sel.Text())
		if raw == "" {
			return true
		}
		for _, node := range ldNodes(raw) {
			var r ldRecipe
			if err := json.Unmarshal(node, &r); err != nil {
				continue
			}
			if isRecipeType(r.Type) && len(r.RecipeIngredient) > 0 {
				found = &r
				return false
			}
		}
		return true
	})
	return found
}

// ldNodes 把一段 ld+json 展開成候選節點：單一物件、陣列或 @graph
func ldNodes(raw string) []json.RawMessage {
	var arr []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &arr); err == nil {
		return arr
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		return nil
	}
	if graph, ok := obj["@graph"]; ok {
		var nodes []json.RawMessage
		if err := json.Unmarshal(graph, &nodes); err == nil {
			return nodes
		}
	}
	return []json.RawMessage{json.RawMessage(raw)}
}

// isRecipeType @type 可能是字串或字串陣列
func isRecipeType(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return single == "Recipe"
	}
	var multi []string
	if err := json.Unmarshal(raw, &multi); err == nil {
		for _, t := range multi {
			if t == "Recipe" {
				return true
			}
		}
	}
	return false
}

// servingsFromYield recipeYield 可能是數字、字串或陣列，取第一個數字
func servingsFromYield(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return int(n)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return firstInt(s)
	}
	var arr []json.RawMessage
	if err := json.Unmarshal(raw, &arr); err == nil && len(arr) > 0 {
		return servingsFromYield(arr[0])
	}
	return 0
}

func firstInt(s string) int {
	m := yieldPattern.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	n, _ := strconv.Atoi(m[1])
	return n
}

// ingredientsFromDOM 由食材清單的 DOM 結構擷取
func ingredientsFromDOM(doc *goquery.Document) []string {
	var raw []string
	selectors := []string{
		`[data-ingredient-name]`,
		`.mm-recipes-structured-ingredients__list-item`,
		`.ingredients-item-name`,
	}
	for _, selector := range selectors {
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			raw = append(raw, strings.TrimSpace(sel.Text()))
		})
		if len(raw) > 0 {
			break
		}
	}
	return filterIngredients(raw)
}

func servingsFromDOM(doc *goquery.Document) int {
	text := doc.Text()
	if m := servingsPattern.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		return n
	}
	return 0
}

// filterIngredients 丟掉明顯不是食材的行
func filterIngredients(lines []string) []string {
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || len(line) > 140 {
			continue
		}
		if numericOnly.MatchString(line) {
			continue
		}
		fields := strings.Fields(strings.ToLower(line))
		if len(fields) > 0 {
			if _, isVerb := instructionVerbs[fields[0]]; isVerb {
				continue
			}
		}
		kept = append(kept, line)
	}
	return kept
}

// recipeID 以網址雜湊出穩定的短識別碼
func recipeID(link string) string {
	sum := sha256.Sum256([]byte(link))
	return hex.EncodeToString(sum[:])[:12]
}

// stripQuery 去掉追蹤參數，連結才能正確去重
func stripQuery(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}
