package knowledge

import (
	"regexp"
	"strings"
)

// prepWords 刀工或前處理描述，不屬於食材名稱本身
var prepWords = map[string]struct{}{
	"chopped": {}, "diced": {}, "minced": {}, "sliced": {}, "crushed": {},
	"ground": {}, "grated": {}, "shredded": {}, "beaten": {}, "peeled": {},
	"seeded": {}, "deveined": {}, "rinsed": {}, "drained": {}, "softened": {},
	"melted": {}, "cubed": {}, "halved": {}, "julienned": {}, "thinly": {},
	"thickly": {}, "coarsely": {}, "finely": {},
}

// optionalPhrases 非必要或估量性的修飾語，移除後不影響查詢
var optionalPhrases = []string{
	"optional", "to taste", "as needed", "as required",
	"for garnish", "for serving", "for sprinkling", "for frying", "for brushing",
}

var (
	parenPattern      = regexp.MustCompile(`\([^)]*\)`)
	descriptorPattern = regexp.MustCompile(`\b(extra\s+large|large|small|medium|fresh|prepared|unsalted|salted)\b`)
	piecesPattern     = regexp.MustCompile(`\bpieces?\b`)
	spacePattern      = regexp.MustCompile(`\s+`)
)

// Canonicalizer 將原始食材文字化為查詢與快取用的標準鍵
type Canonicalizer struct {
	kb KnowledgeBase
}

// NewCanonicalizer 建立名稱標準化器
func NewCanonicalizer(kb KnowledgeBase) *Canonicalizer {
	return &Canonicalizer{kb: kb}
}

// Canonicalize 回傳標準名稱；無別名時退回正規化後的原文。
// 別名表查無時先試單數化再查一次，讓 "eggs" 與 "egg" 對到同一個鍵。
func (c *Canonicalizer) Canonicalize(raw string) string {
	n := Normalize(raw)
	if n == "" {
		return ""
	}
	if c.kb != nil {
		if canonical, ok := c.kb.Alias(n); ok {
			return canonical
		}
	}
	s := singularizeLast(n)
	if s != n && c.kb != nil {
		if canonical, ok := c.kb.Alias(s); ok {
			return canonical
		}
	}
	return s
}

// singularizeLast 對最後一個詞做保守的單數化，
// 避開 swiss、asparagus、couscous 這類以 ss/us/is 結尾的詞
func singularizeLast(n string) string {
	fields := strings.Fields(n)
	if len(fields) == 0 {
		return n
	}
	last := fields[len(fields)-1]
	switch {
	case strings.HasSuffix(last, "ies") && len(last) > 4:
		last = last[:len(last)-3] + "y"
	case strings.HasSuffix(last, "oes"):
		last = last[:len(last)-2]
	case strings.HasSuffix(last, "shes") || strings.HasSuffix(last, "ches") || strings.HasSuffix(last, "xes"):
		last = last[:len(last)-2]
	case strings.HasSuffix(last, "ss") || strings.HasSuffix(last, "us") || strings.HasSuffix(last, "is"):
		// 保留原樣
	case strings.HasSuffix(last, "s"):
		last = last[:len(last)-1]
	}
	fields[len(fields)-1] = last
	return strings.Join(fields, " ")
}

// Normalize 小寫、去括號、去修飾語與刀工詞後的名稱
func Normalize(raw string) string {
	n := strings.ToLower(strings.TrimSpace(raw))
	n = parenPattern.ReplaceAllString(n, " ")

	for _, phrase := range optionalPhrases {
		n = strings.ReplaceAll(n, phrase, " ")
	}

	n = descriptorPattern.ReplaceAllString(n, " ")
	n = piecesPattern.ReplaceAllString(n, " ")

	kept := make([]string, 0, 4)
	for _, tok := range strings.Fields(n) {
		tok = strings.Trim(tok, ",.;:&")
		if tok == "" {
			continue
		}
		if _, isPrep := prepWords[tok]; isPrep {
			continue
		}
		kept = append(kept, tok)
	}

	return spacePattern.ReplaceAllString(strings.TrimSpace(strings.Join(kept, " ")), " ")
}
