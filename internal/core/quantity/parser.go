package quantity

import (
	"regexp"
	"strconv"
	"strings"

	"smartbite/internal/core/knowledge"
	"smartbite/internal/pkg/common"
)

// Parser 把食譜的原始食材行解析為結構化的數量資訊。
// 解析策略是保守的：任何無法安全換算為公克或顆數的情況都標記為無法解析，
// 寧可缺值也不臆測。
type Parser struct {
	canon *knowledge.Canonicalizer
}

// NewParser 建立食材行解析器
func NewParser(canon *knowledge.Canonicalizer) *Parser {
	return &Parser{canon: canon}
}

var (
	// 括號內的重量規格，如 "1 (8 ounce) package"
	parenWeightPattern = regexp.MustCompile(`\(\s*(\d+(?:\.\d+)?|\d+\s*/\s*\d+)\s*(pounds?|lbs?|lb|ounces?|oz|kilograms?|kg|grams?|g)\s*\.?\s*\)`)
	// 連字號的重量規格，如 "8-pound roast"
	hyphenWeightPattern = regexp.MustCompile(`\b(\d+(?:\.\d+)?)\s*-\s*(pounds?|lbs?|lb|ounces?|oz|kilograms?|kg|grams?|g)\b`)
	// 多件裝的重量規格，如 "2 x 16 oz"
	packWeightPattern = regexp.MustCompile(`\b(\d+(?:\.\d+)?)\s*[x×]\s*(\d+(?:\.\d+)?)\s*(pounds?|lbs?|lb|ounces?|oz|kilograms?|kg|grams?|g)\b`)
	// 開頭的整數或小數（允許負號以便拒絕負值）
	leadingNumberPattern = regexp.MustCompile(`^(-?\d+(?:\.\d+)?)`)
	// 開頭的普通分數，如 "1/2"
	leadingFractionPattern = regexp.MustCompile(`^(\d+)\s*/\s*(\d+)`)
	// 帶分數，如 "1 1/2"
	leadingMixedPattern = regexp.MustCompile(`^(\d+)\s+(\d+)\s*/\s*(\d+)`)
	// 區間分隔符（後面必須接數字才算區間）
	rangeSepPattern = regexp.MustCompile(`^\s*(?:-|–|—|to)\s*(\d|[¼½¾⅓⅔⅛⅜⅝⅞])`)
)

// Parse 解析一行食材文字。不論輸入多糟都會回傳一個結果，
// 解析失敗時 UnitKind 為 unparsed 且數量欄位皆為零。
func (p *Parser) Parse(raw string) common.Ingredient {
	ing := common.Ingredient{
		RawText:  raw,
		UnitKind: common.UnitUnparsed,
	}

	line, _, _ := strings.Cut(strings.TrimSpace(raw), ",")
	line = strings.TrimSpace(line)
	if line == "" {
		return ing
	}

	// 括號、連字號、多件裝的重量規格最權威，優先處理
	if grams, rest, ok := preScanWeight(line); ok {
		ing.CanonicalName = p.canon.Canonicalize(rest)
		if grams <= 0 || ing.CanonicalName == "" {
			return ing
		}
		ing.UnitKind = common.UnitMass
		ing.QuantityG = grams
		return ing
	}

	qty, hasQty, rest := leadingQuantity(line)
	if hasQty && qty <= 0 {
		// 零或負的數量一律拒絕
		ing.CanonicalName = p.canon.Canonicalize(rest)
		return ing
	}

	unit, hasUnit, rest := leadingUnit(rest)
	name := p.canon.Canonicalize(rest)
	ing.CanonicalName = name
	if name == "" {
		return ing
	}

	if !hasUnit {
		// 無單位：視為逐個計數，未標數量時預設一個
		n := 1.0
		if hasQty {
			n = qty
		}
		ing.UnitKind = common.UnitCount
		ing.EachCount = n
		return ing
	}

	switch unit.class {
	case classMass:
		if !hasQty {
			// 有重量單位卻沒有數字，無從換算
			return ing
		}
		ing.UnitKind = common.UnitMass
		ing.QuantityG = qty * massGrams[unit.canonical]
	case classVolume:
		if !hasQty {
			return ing
		}
		density, ok := densityFor(name)
		if !ok {
			// 查無密度，不臆測
			return ing
		}
		ing.UnitKind = common.UnitMass
		ing.QuantityG = qty * volumeML[unit.canonical] * density
	case classCount:
		n := 1.0
		if hasQty {
			n = qty
		}
		ing.UnitKind = common.UnitCount
		ing.EachCount = n
	}
	return ing
}

// preScanWeight 找出行內明確標示的總重量（公克）。
// 括號與連字號規格前若有外層數量則相乘，如 "2 (8 ounce) packages" 為 16 oz。
func preScanWeight(line string) (grams float64, rest string, ok bool) {
	if m := packWeightPattern.FindStringSubmatchIndex(line); m != nil {
		count, _ := strconv.ParseFloat(line[m[2]:m[3]], 64)
		amount, _ := strconv.ParseFloat(line[m[4]:m[5]], 64)
		factor := massFactorOf(line[m[6]:m[7]])
		rest = strings.TrimSpace(line[:m[0]] + " " + line[m[1]:])
		return count * amount * factor, rest, true
	}
	if m := parenWeightPattern.FindStringSubmatchIndex(line); m != nil {
		amount := parseAmount(line[m[2]:m[3]])
		factor := massFactorOf(line[m[4]:m[5]])
		rest = strings.TrimSpace(line[:m[0]] + " " + line[m[1]:])
		lead, rest2 := stripLeadingCount(rest)
		return lead * amount * factor, rest2, true
	}
	if m := hyphenWeightPattern.FindStringSubmatchIndex(line); m != nil {
		amount, _ := strconv.ParseFloat(line[m[2]:m[3]], 64)
		factor := massFactorOf(line[m[4]:m[5]])
		rest = strings.TrimSpace(line[:m[0]] + " " + line[m[1]:])
		lead, rest2 := stripLeadingCount(rest)
		return lead * amount * factor, rest2, true
	}
	return 0, line, false
}

// stripLeadingCount 取出並移除外層數量，沒有則視為 1
func stripLeadingCount(s string) (float64, string) {
	if m := leadingNumberPattern.FindStringSubmatch(s); m != nil {
		n, _ := strconv.ParseFloat(m[1], 64)
		if n > 0 {
			return n, strings.TrimSpace(s[len(m[0]):])
		}
	}
	return 1, s
}

// massFactorOf 把重量單位詞換算為公克係數
func massFactorOf(word string) float64 {
	info, ok := unitSynonyms[strings.ToLower(strings.TrimSpace(word))]
	if !ok || info.class != classMass {
		return 0
	}
	return massGrams[info.canonical]
}

// parseAmount 解析整數、小數或普通分數
func parseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	if m := leadingFractionPattern.FindStringSubmatch(s); m != nil && len(m[0]) == len(s) {
		num, _ := strconv.ParseFloat(m[1], 64)
		den, _ := strconv.ParseFloat(m[2], 64)
		if den == 0 {
			return 0
		}
		return num / den
	}
	n, _ := strconv.ParseFloat(s, 64)
	return n
}

// leadingQuantity 解析行首的數量，支援整數、小數、分數、帶分數與
// Unicode 分數字元。區間取下界，如 "2-3 eggs" 算 2 個。
func leadingQuantity(line string) (qty float64, ok bool, rest string) {
	first, consumed := matchOneQuantity(line)
	if consumed == 0 {
		return 0, false, line
	}
	rest = line[consumed:]

	// 區間："-"、"–" 或 "to" 後面必須接數字，"8-pound" 不是區間
	if m := rangeSepPattern.FindStringSubmatchIndex(rest); m != nil {
		sepEnd := m[2] // 第二個數的開頭
		second, consumed2 := matchOneQuantity(rest[sepEnd:])
		if consumed2 > 0 {
			lower := first
			if second < lower {
				lower = second
			}
			return lower, true, strings.TrimSpace(rest[sepEnd+consumed2:])
		}
	}
	return first, true, strings.TrimSpace(rest)
}

// matchOneQuantity 解析一個數量並回傳消耗的位元組數，失敗時為零
func matchOneQuantity(s string) (float64, int) {
	// 帶分數："1 1/2"
	if m := leadingMixedPattern.FindStringSubmatch(s); m != nil {
		whole, _ := strconv.ParseFloat(m[1], 64)
		num, _ := strconv.ParseFloat(m[2], 64)
		den, _ := strconv.ParseFloat(m[3], 64)
		if den != 0 {
			return whole + num/den, len(m[0])
		}
	}
	// 整數加 Unicode 分數："1½"、"1 ½"
	if m := leadingNumberPattern.FindStringSubmatch(s); m != nil {
		tail := s[len(m[0]):]
		trimmed := strings.TrimLeft(tail, " ")
		for r, v := range vulgarFractions {
			if strings.HasPrefix(trimmed, string(r)) {
				whole, _ := strconv.ParseFloat(m[1], 64)
				if whole >= 0 {
					consumed := len(m[0]) + (len(tail) - len(trimmed)) + len(string(r))
					return whole + v, consumed
				}
			}
		}
	}
	// 普通分數："1/2"
	if m := leadingFractionPattern.FindStringSubmatch(s); m != nil {
		num, _ := strconv.ParseFloat(m[1], 64)
		den, _ := strconv.ParseFloat(m[2], 64)
		if den != 0 {
			return num / den, len(m[0])
		}
	}
	// Unicode 分數單獨出現："½ cup"
	for r, v := range vulgarFractions {
		if strings.HasPrefix(s, string(r)) {
			return v, len(string(r))
		}
	}
	// 整數或小數
	if m := leadingNumberPattern.FindStringSubmatch(s); m != nil {
		n, _ := strconv.ParseFloat(m[1], 64)
		return n, len(m[0])
	}
	return 0, 0
}

// leadingUnit 從行首取出單位詞。第一個詞不是單位時再看第二個，
// 以處理 "1 heaping tablespoon" 這類修飾語。
func leadingUnit(s string) (unitInfo, bool, string) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return unitInfo{}, false, s
	}
	if info, ok := lookupUnit(fields[0]); ok {
		return info, true, strings.Join(fields[1:], " ")
	}
	if len(fields) >= 2 {
		if info, ok := lookupUnit(fields[1]); ok {
			return info, true, strings.Join(fields[2:], " ")
		}
	}
	return unitInfo{}, false, s
}

func lookupUnit(token string) (unitInfo, bool) {
	token = strings.ToLower(strings.Trim(token, ".()"))
	info, ok := unitSynonyms[token]
	return info, ok
}
