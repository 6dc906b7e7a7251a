package walmart

import (
	"regexp"
	"strconv"
	"strings"

	"smartbite/internal/pkg/common"
)

const (
	gramsPerOunce = 28.349523125
	gramsPerPound = 453.59237
)

var (
	// 單位價字串，如 "23.4 ¢/oz"、"$4.98/lb"、"33.2 ¢/count"
	ppuPattern = regexp.MustCompile(`([\d.]+)\s*(¢|\$)\s*/\s*(fl\s*oz|oz|lb|kg|count|each|ea|unit)`)
	// 包裝重量，如 "2 x 16 oz"、"1 lb 8 oz"、"32 oz"
	packPattern    = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*[x×]\s*(\d+(?:\.\d+)?)\s*(fl\s*oz|oz|lbs?|lb|kg|g)\b`)
	lbOzPattern    = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*lbs?\s+(\d+(?:\.\d+)?)\s*oz\b`)
	segmentPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(fl\s*oz|oz|lbs?|lb|kg|g)\b`)
)

// ParsePricePerUnit 解析 Walmart 商品的單位價字串，統一為每公克或每顆的美元價。
// 分為 ¢ 與 $ 兩種幣值前綴，重量一律換算為公克。
func ParsePricePerUnit(s string) (common.PriceFacts, bool) {
	m := ppuPattern.FindStringSubmatch(strings.ToLower(s))
	if m == nil {
		return common.PriceFacts{}, false
	}
	amount, err := strconv.ParseFloat(m[1], 64)
	if err != nil || amount <= 0 {
		return common.PriceFacts{}, false
	}
	if m[2] == "¢" {
		amount /= 100.0
	}

	unit := strings.Join(strings.Fields(m[3]), " ")
	switch unit {
	case "count", "each", "ea", "unit":
		return common.PriceFacts{Price: common.Float64Ptr(amount), Unit: common.PerEach}, true
	case "oz", "fl oz":
		return common.PriceFacts{Price: common.Float64Ptr(amount / gramsPerOunce), Unit: common.PerGram}, true
	case "lb":
		return common.PriceFacts{Price: common.Float64Ptr(amount / gramsPerPound), Unit: common.PerGram}, true
	case "kg":
		return common.PriceFacts{Price: common.Float64Ptr(amount / 1000.0), Unit: common.PerGram}, true
	}
	return common.PriceFacts{}, false
}

// ParseWeightGrams 從商品標題或規格文字解出總重量（公克）
func ParseWeightGrams(s string) (float64, bool) {
	s = strings.ToLower(s)

	if m := packPattern.FindStringSubmatch(s); m != nil {
		count, _ := strconv.ParseFloat(m[1], 64)
		amount, _ := strconv.ParseFloat(m[2], 64)
		if g := toGrams(amount, m[3]); g > 0 {
			return count * g, true
		}
	}
	if m := lbOzPattern.FindStringSubmatch(s); m != nil {
		lbs, _ := strconv.ParseFloat(m[1], 64)
		oz, _ := strconv.ParseFloat(m[2], 64)
		return lbs*gramsPerPound + oz*gramsPerOunce, true
	}
	if m := segmentPattern.FindStringSubmatch(s); m != nil {
		amount, _ := strconv.ParseFloat(m[1], 64)
		if g := toGrams(amount, m[2]); g > 0 {
			return g, true
		}
	}
	return 0, false
}

func toGrams(amount float64, unit string) float64 {
	if amount <= 0 {
		return 0
	}
	switch strings.Join(strings.Fields(unit), " ") {
	case "oz", "fl oz":
		return amount * gramsPerOunce
	case "lb", "lbs":
		return amount * gramsPerPound
	case "kg":
		return amount * 1000.0
	case "g":
		return amount
	}
	return 0
}

// eachHintPattern 標題中逐個販售的線索，如 "each"、"1 ct"
var eachHintPattern = regexp.MustCompile(`\b(each|1\s*ct|1\s*count)\b`)

// titleSuggestsEach 判斷標題是否暗示逐個計價
func titleSuggestsEach(title string) bool {
	return eachHintPattern.MatchString(strings.ToLower(title))
}
