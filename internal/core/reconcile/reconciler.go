package reconcile

import (
	"smartbite/internal/pkg/common"
)

// Reconcile 把單行食材的數量與營養、價格事實對齊，算出熱量與成本貢獻。
// 事實的計價基準（每公克、每顆）與食材的數量單位不一致時，
// 以每顆公克數換算橋接；換算不出來就標記缺值並以零計入，不臆測。
func Reconcile(ing common.Ingredient, nut common.NutritionFacts, price common.PriceFacts) common.ReconciledLine {
	line := common.ReconciledLine{Ingredient: ing}

	if ing.UnitKind == common.UnitUnparsed {
		// 無法解析的行不產生任何貢獻
		line.Missing = true
		return line
	}

	kcal, kcalBridged, kcalMissing := kcalContribution(ing, nut)
	cost, costBridged, costMissing := costContribution(ing, nut, price)

	line.Kcal = kcal
	line.Cost = cost
	line.Bridged = kcalBridged || costBridged
	line.Missing = kcalMissing || costMissing
	return line
}

// kcalContribution 依單位類別與可用的營養事實計算熱量
func kcalContribution(ing common.Ingredient, nut common.NutritionFacts) (kcal float64, bridged, missing bool) {
	switch ing.UnitKind {
	case common.UnitMass:
		if nut.KcalPerGram > 0 {
			return ing.QuantityG * nut.KcalPerGram, false, false
		}
		if nut.KcalPerEach > 0 {
			if gpe, ok := nut.BridgeFactor(); ok {
				return ing.QuantityG / gpe * nut.KcalPerEach, true, false
			}
		}
		return 0, false, true
	case common.UnitCount:
		if nut.KcalPerEach > 0 {
			return ing.EachCount * nut.KcalPerEach, false, false
		}
		if nut.KcalPerGram > 0 {
			if gpe, ok := nut.BridgeFactor(); ok {
				return ing.EachCount * gpe * nut.KcalPerGram, true, false
			}
		}
		return 0, false, true
	}
	return 0, false, true
}

// costContribution 依單位類別與價格的計價基準計算成本
func costContribution(ing common.Ingredient, nut common.NutritionFacts, price common.PriceFacts) (cost float64, bridged, missing bool) {
	if price.Price == nil || *price.Price <= 0 {
		return 0, false, true
	}
	p := *price.Price

	switch ing.UnitKind {
	case common.UnitMass:
		if price.Unit == common.PerGram {
			return ing.QuantityG * p, false, false
		}
		// 每顆計價對上重量，需要每顆公克數
		if gpe, ok := nut.BridgeFactor(); ok {
			return ing.QuantityG / gpe * p, true, false
		}
		return 0, false, true
	case common.UnitCount:
		if price.Unit == common.PerEach {
			return ing.EachCount * p, false, false
		}
		// 每公克計價對上顆數
		if gpe, ok := nut.BridgeFactor(); ok {
			return ing.EachCount * gpe * p, true, false
		}
		return 0, false, true
	}
	return 0, false, true
}
