package pipeline

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"

	"smartbite/internal/core/cache"
	"smartbite/internal/core/provider"
	"smartbite/internal/core/quantity"
	"smartbite/internal/core/reconcile"
	"smartbite/internal/pkg/common"
)

// Service 估算管線：搜尋食譜、解析食材、查事實、對齊並彙總。
// 食譜與食材行都依序處理，結果順序跟來源順序一致。
type Service struct {
	source    provider.RecipeSource
	nutrition provider.NutritionProvider
	price     provider.PriceProvider
	parser    *quantity.Parser
	facts     cache.Store
}

// NewService 建立估算管線
func NewService(
	source provider.RecipeSource,
	nutrition provider.NutritionProvider,
	price provider.PriceProvider,
	parser *quantity.Parser,
	facts cache.Store,
) *Service {
	return &Service{
		source:    source,
		nutrition: nutrition,
		price:     price,
		parser:    parser,
		facts:     facts,
	}
}

// RunReport 一次估算的完整結果，成功與失敗的食譜分開列
type RunReport struct {
	Query    string                `json:"query"`
	Results  []common.RecipeResult `json:"results"`
	Failures []RecipeFailure       `json:"failures,omitempty"`
}

// RecipeFailure 單一食譜估算失敗的紀錄
type RecipeFailure struct {
	RecipeID string `json:"recipe_id"`
	Title    string `json:"title,omitempty"`
	URL      string `json:"url,omitempty"`
	Reason   string `json:"reason"`
}

// Run 執行一次完整的估算。單一食譜失敗（如份數不合法）記入
// Failures 後繼續，整批搜尋失敗才回傳錯誤。
func (s *Service) Run(ctx context.Context, query string, topK int) (*RunReport, error) {
	if err := ValidateQuery(query); err != nil {
		return nil, err
	}

	start := time.Now()
	recipes, err := s.source.Fetch(ctx, query, topK)
	if err != nil {
		return nil, err
	}

	report := &RunReport{Query: query}
	memo := newRunCache()

	for _, recipe := range recipes {
		result, err := s.estimateRecipe(ctx, recipe, memo)
		if err != nil {
			report.Failures = append(report.Failures, RecipeFailure{
				RecipeID: recipe.ID,
				Title:    recipe.Title,
				URL:      recipe.URL,
				Reason:   err.Error(),
			})
			continue
		}
		report.Results = append(report.Results, *result)
	}

	common.LogInfo("估算完成",
		zap.String("查詢", query),
		zap.Int("成功", len(report.Results)),
		zap.Int("失敗", len(report.Failures)),
		zap.Duration("耗時", time.Since(start)),
	)
	return report, nil
}

// estimateRecipe 估算單一食譜，逐行解析、查事實、對齊後彙總
func (s *Service) estimateRecipe(ctx context.Context, recipe common.Recipe, memo *runCache) (*common.RecipeResult, error) {
	lines := make([]common.ReconciledLine, 0, len(recipe.Ingredients))
	for _, raw := range recipe.Ingredients {
		ing := s.parser.Parse(raw)

		var facts *cache.Facts
		if ing.CanonicalName != "" && ing.UnitKind != common.UnitUnparsed {
			var err error
			facts, err = s.lookupFacts(ctx, ing.CanonicalName, memo)
			if err != nil {
				return nil, err
			}
		}
		if facts == nil {
			facts = &cache.Facts{}
		}

		lines = append(lines, reconcile.Reconcile(ing, facts.Nutrition, facts.Price))
	}
	return reconcile.Aggregate(recipe, lines)
}

// lookupFacts 查一個標準名稱的事實：先看本次執行的備忘錄，
// 再看跨執行的快取，最後才打供應商並回填兩層
func (s *Service) lookupFacts(ctx context.Context, name string, memo *runCache) (*cache.Facts, error) {
	if facts, ok := memo.get(name); ok {
		return facts, nil
	}

	if s.facts != nil {
		if facts, err := s.facts.Get(ctx, name); err == nil {
			memo.put(name, facts)
			return facts, nil
		} else if !errors.Is(err, common.ErrCacheMiss) && !errors.Is(err, common.ErrCacheDisabled) {
			common.LogWarn("事實快取讀取失敗",
				zap.String("食材", name),
				zap.Error(err))
		}
	}

	nut, err := s.nutrition.LookupNutrition(ctx, name)
	if err != nil {
		return nil, err
	}
	price, err := s.price.LookupPrice(ctx, name)
	if err != nil {
		return nil, err
	}

	facts := &cache.Facts{Nutrition: nut, Price: price}
	memo.put(name, facts)
	if s.facts != nil {
		if err := s.facts.Set(ctx, name, facts); err != nil {
			common.LogWarn("事實快取寫入失敗",
				zap.String("食材", name),
				zap.Error(err))
		}
	}
	return facts, nil
}

var urlPattern = regexp.MustCompile(`https?://`)

// ValidateQuery 判斷查詢字串像不像菜名：至少三個字母、
// 數字不多於字母、不含網址、長度不超過六十字元
func ValidateQuery(query string) error {
	q := strings.TrimSpace(query)
	if len(q) == 0 || len(q) > 60 {
		return common.ErrInvalidQuery
	}
	if urlPattern.MatchString(q) {
		return common.ErrInvalidQuery
	}

	letters, digits := 0, 0
	for _, r := range q {
		switch {
		case unicode.IsLetter(r):
			letters++
		case unicode.IsDigit(r):
			digits++
		}
	}
	if letters < 3 || digits > letters {
		return common.ErrInvalidQuery
	}
	return nil
}
