package quantity

import "strings"

// unitClass 單位的類別
type unitClass int

const (
	classMass unitClass = iota
	classVolume
	classCount
)

// unitInfo 單位同義詞表的查詢結果
type unitInfo struct {
	canonical string
	class     unitClass
}

// unitSynonyms 單位同義詞 → 標準單位，查詢時一律先轉小寫
var unitSynonyms = map[string]unitInfo{
	// 重量單位
	"pound": {"lb", classMass}, "pounds": {"lb", classMass},
	"lb": {"lb", classMass}, "lbs": {"lb", classMass},
	"ounce": {"oz", classMass}, "ounces": {"oz", classMass}, "oz": {"oz", classMass},
	"gram": {"g", classMass}, "grams": {"g", classMass}, "g": {"g", classMass},
	"kilogram": {"kg", classMass}, "kilograms": {"kg", classMass}, "kg": {"kg", classMass},

	// 容量單位
	"cup": {"cup", classVolume}, "cups": {"cup", classVolume},
	"tablespoon": {"tbsp", classVolume}, "tablespoons": {"tbsp", classVolume}, "tbsp": {"tbsp", classVolume},
	"teaspoon": {"tsp", classVolume}, "teaspoons": {"tsp", classVolume}, "tsp": {"tsp", classVolume},
	"liter": {"l", classVolume}, "liters": {"l", classVolume},
	"litre": {"l", classVolume}, "litres": {"l", classVolume}, "l": {"l", classVolume},
	"milliliter": {"ml", classVolume}, "milliliters": {"ml", classVolume},
	"millilitre": {"ml", classVolume}, "millilitres": {"ml", classVolume}, "ml": {"ml", classVolume},

	// 計數單位（常見的逐個食材也歸入 each）
	"each": {"each", classCount}, "ea": {"each", classCount}, "count": {"each", classCount},
	"piece": {"each", classCount}, "pieces": {"each", classCount},
	"clove": {"each", classCount}, "cloves": {"each", classCount},
	"leaf": {"each", classCount}, "leaves": {"each", classCount},
	"sprig": {"each", classCount}, "sprigs": {"each", classCount},
	"slice": {"each", classCount}, "slices": {"each", classCount},
}

// massGrams 重量單位換算為公克的固定係數
var massGrams = map[string]float64{
	"lb": 453.59237,
	"oz": 28.349523125,
	"kg": 1000.0,
	"g":  1.0,
}

// volumeML 容量單位換算為毫升
var volumeML = map[string]float64{
	"cup":  240.0,
	"tbsp": 15.0,
	"tsp":  5.0,
	"l":    1000.0,
	"ml":   1.0,
}

// densityGML 密度表（g/ml），以標準名稱的子字串比對、取最長的鍵
// 查無密度時不得臆測，該行一律視為無法解析
var densityGML = map[string]float64{
	"rice":         185.0 / 240.0,
	"rice vinegar": 1.0, // 避免被 rice 的密度吃掉
	"oil":          218.0 / 240.0,
	"broth":        1.0,
	"stock":        1.0,
	"brown sugar":  220.0 / 240.0,
	"sugar":        200.0 / 240.0,
	"flour":        120.0 / 240.0,
	"milk":         1.03,
	"water":        1.0,
	"butter":       227.0 / 240.0,
	"honey":        340.0 / 240.0,
	"yogurt":       245.0 / 240.0,
}

// vulgarFractions Unicode 分數字元
var vulgarFractions = map[rune]float64{
	'¼': 0.25, '½': 0.5, '¾': 0.75,
	'⅓': 1.0 / 3.0, '⅔': 2.0 / 3.0,
	'⅛': 0.125, '⅜': 0.375, '⅝': 0.625, '⅞': 0.875,
}

// densityFor 以標準名稱查密度；鍵以完整詞比對（避免 oil 誤中 boiled），
// 取最長的鍵。回傳 false 表示查無資料
func densityFor(canonicalName string) (float64, bool) {
	padded := " " + canonicalName + " "
	best := ""
	for key := range densityGML {
		if len(key) > len(best) && strings.Contains(padded, " "+key+" ") {
			best = key
		}
	}
	if best == "" {
		return 0, false
	}
	return densityGML[best], true
}
