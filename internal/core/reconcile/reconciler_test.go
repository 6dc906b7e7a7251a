package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"smartbite/internal/pkg/common"
)

func countIng(name string, n float64) common.Ingredient {
	return common.Ingredient{RawText: name, CanonicalName: name, UnitKind: common.UnitCount, EachCount: n}
}

func massIng(name string, grams float64) common.Ingredient {
	return common.Ingredient{RawText: name, CanonicalName: name, UnitKind: common.UnitMass, QuantityG: grams}
}

func TestReconcile_CountWithPerEachFacts(t *testing.T) {
	ing := countIng("egg", 3)
	nut := common.NutritionFacts{KcalPerEach: 70}
	price := common.PriceFacts{Price: common.Float64Ptr(0.25), Unit: common.PerEach}

	line := Reconcile(ing, nut, price)
	assert.InDelta(t, 210.0, line.Kcal, 1e-9)
	assert.InDelta(t, 0.75, line.Cost, 1e-9)
	assert.False(t, line.Bridged)
	assert.False(t, line.Missing)
}

func TestReconcile_MassWithPerGramFacts(t *testing.T) {
	ing := massIng("flour", 200)
	nut := common.NutritionFacts{KcalPerGram: 3.64}
	price := common.PriceFacts{Price: common.Float64Ptr(0.002), Unit: common.PerGram}

	line := Reconcile(ing, nut, price)
	assert.InDelta(t, 200*3.64, line.Kcal, 1e-9)
	assert.InDelta(t, 0.4, line.Cost, 1e-9)
	assert.False(t, line.Bridged)
	assert.False(t, line.Missing)
}

func TestReconcile_MassBridgedByGramsPerEach(t *testing.T) {
	// 重量行對上只有每顆資料的事實，靠每顆公克數換算
	ing := massIng("onion", 300)
	nut := common.NutritionFacts{KcalPerEach: 44, GramsPerEach: common.Float64Ptr(110)}
	price := common.PriceFacts{Price: common.Float64Ptr(0.5), Unit: common.PerEach}

	line := Reconcile(ing, nut, price)
	assert.InDelta(t, 300.0/110.0*44.0, line.Kcal, 1e-9)
	assert.InDelta(t, 300.0/110.0*0.5, line.Cost, 1e-9)
	assert.True(t, line.Bridged)
	assert.False(t, line.Missing)
}

func TestReconcile_CountBridgedByInferredGramsPerEach(t *testing.T) {
	// 未提供每顆公克數時由每顆熱量除以每公克熱量推得
	ing := countIng("egg", 2)
	nut := common.NutritionFacts{KcalPerGram: 1.4, KcalPerEach: 70}
	price := common.PriceFacts{Price: common.Float64Ptr(0.01), Unit: common.PerGram}

	gpe := 70.0 / 1.4
	line := Reconcile(ing, nut, price)
	assert.InDelta(t, 2*70.0, line.Kcal, 1e-9) // 每顆資料齊全，熱量不需換算
	assert.InDelta(t, 2*gpe*0.01, line.Cost, 1e-9)
	assert.True(t, line.Bridged)
	assert.False(t, line.Missing)
}

func TestReconcile_BridgeImpossibleMarksMissing(t *testing.T) {
	// 每顆計價但既無每顆公克數也推不出來
	ing := massIng("onion", 300)
	nut := common.NutritionFacts{KcalPerGram: 0.4}
	price := common.PriceFacts{Price: common.Float64Ptr(0.5), Unit: common.PerEach}

	line := Reconcile(ing, nut, price)
	assert.InDelta(t, 300*0.4, line.Kcal, 1e-9)
	assert.Zero(t, line.Cost)
	assert.True(t, line.Missing)
}

func TestReconcile_UnparsedAlwaysZero(t *testing.T) {
	ing := common.Ingredient{RawText: "a pinch of magic", UnitKind: common.UnitUnparsed}
	nut := common.NutritionFacts{KcalPerGram: 9, KcalPerEach: 100, GramsPerEach: common.Float64Ptr(10)}
	price := common.PriceFacts{Price: common.Float64Ptr(1), Unit: common.PerEach}

	line := Reconcile(ing, nut, price)
	assert.Zero(t, line.Kcal)
	assert.Zero(t, line.Cost)
	assert.True(t, line.Missing)
	assert.False(t, line.Bridged)
}

func TestReconcile_EmptyFactsMarkMissing(t *testing.T) {
	line := Reconcile(countIng("egg", 3), common.NutritionFacts{}, common.PriceFacts{})
	assert.Zero(t, line.Kcal)
	assert.Zero(t, line.Cost)
	assert.True(t, line.Missing)
}

func TestReconcile_Deterministic(t *testing.T) {
	ing := massIng("rice", 370)
	nut := common.NutritionFacts{KcalPerGram: 1.3}
	price := common.PriceFacts{Price: common.Float64Ptr(0.003), Unit: common.PerGram}

	first := Reconcile(ing, nut, price)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Reconcile(ing, nut, price))
	}
}
