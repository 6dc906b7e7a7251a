package nutritionix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactsFromFood_PerGram(t *testing.T) {
	f := food{
		FoodName:           "flour",
		ServingQty:         1,
		ServingUnit:        "cup",
		ServingWeightGrams: 125,
		NfCalories:         455,
	}
	facts := factsFromFood(f)
	assert.InDelta(t, 455.0/125.0, facts.KcalPerGram, 1e-9)
	assert.Zero(t, facts.KcalPerEach)
	assert.Nil(t, facts.GramsPerEach)
}

func TestFactsFromFood_EachServing(t *testing.T) {
	f := food{
		FoodName:           "egg",
		ServingQty:         1,
		ServingUnit:        "large",
		ServingWeightGrams: 50,
		NfCalories:         72,
	}
	facts := factsFromFood(f)
	assert.InDelta(t, 72.0, facts.KcalPerEach, 1e-9)
	assert.InDelta(t, 72.0/50.0, facts.KcalPerGram, 1e-9)
	require.NotNil(t, facts.GramsPerEach)
	assert.InDelta(t, 50.0, *facts.GramsPerEach, 1e-9)
}

func TestFactsFromFood_EachFromAltMeasures(t *testing.T) {
	f := food{
		FoodName:           "onion",
		ServingQty:         100,
		ServingUnit:        "g",
		ServingWeightGrams: 100,
		NfCalories:         40,
		AltMeasures: []altMeasure{
			{Measure: "cup", Qty: 1, ServingWeight: 160},
			{Measure: "medium", Qty: 1, ServingWeight: 110},
		},
	}
	facts := factsFromFood(f)
	assert.InDelta(t, 0.4, facts.KcalPerGram, 1e-9)
	require.NotNil(t, facts.GramsPerEach)
	assert.InDelta(t, 110.0, *facts.GramsPerEach, 1e-9)
	assert.InDelta(t, 0.4*110.0, facts.KcalPerEach, 1e-9)
}

func TestFactsFromFood_VolumeFallback(t *testing.T) {
	// 沒有 serving_weight_grams 時以容量近似
	f := food{
		FoodName:    "olive oil",
		ServingQty:  1,
		ServingUnit: "tbsp",
		NfCalories:  119,
	}
	facts := factsFromFood(f)
	assert.InDelta(t, 119.0/13.5, facts.KcalPerGram, 1e-9)
}

func TestFactsFromFood_NoData(t *testing.T) {
	facts := factsFromFood(food{FoodName: "mystery"})
	assert.True(t, facts.Empty())
}
