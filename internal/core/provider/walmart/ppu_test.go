package walmart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartbite/internal/pkg/common"
)

func TestParsePricePerUnit(t *testing.T) {
	tests := []struct {
		name  string
		input string
		price float64
		unit  common.PriceUnit
	}{
		{"cents per ounce", "23.4 ¢/oz", 0.234 / gramsPerOunce, common.PerGram},
		{"dollars per pound", "$4.98/lb", 4.98 / gramsPerPound, common.PerGram},
		{"dollars per kilogram", "10.99 $/kg", 10.99 / 1000.0, common.PerGram},
		{"cents per count", "33.2 ¢/count", 0.332, common.PerEach},
		{"dollars per each", "$0.58/each", 0.58, common.PerEach},
		{"fluid ounce", "12.4 ¢/fl oz", 0.124 / gramsPerOunce, common.PerGram},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			facts, ok := ParsePricePerUnit(tt.input)
			require.True(t, ok)
			require.NotNil(t, facts.Price)
			assert.InDelta(t, tt.price, *facts.Price, 1e-12)
			assert.Equal(t, tt.unit, facts.Unit)
		})
	}
}

func TestParsePricePerUnit_Invalid(t *testing.T) {
	for _, input := range []string{"", "cheap", "oz/¢ 23.4", "0 ¢/oz"} {
		_, ok := ParsePricePerUnit(input)
		assert.False(t, ok, input)
	}
}

func TestParseWeightGrams(t *testing.T) {
	tests := []struct {
		input string
		grams float64
	}{
		{"Barilla Penne Pasta, 2 x 16 oz", 2 * 16 * gramsPerOunce},
		{"Pork Shoulder Roast, 1 lb 8 oz", gramsPerPound + 8*gramsPerOunce},
		{"Great Value All-Purpose Flour, 32 oz", 32 * gramsPerOunce},
		{"Jasmine Rice 5 lb Bag", 5 * gramsPerPound},
		{"Olive Oil 1 kg", 1000},
		{"Sea Salt 500 g", 500},
	}
	for _, tt := range tests {
		grams, ok := ParseWeightGrams(tt.input)
		require.True(t, ok, tt.input)
		assert.InDelta(t, tt.grams, grams, 1e-9, tt.input)
	}
}

func TestParseWeightGrams_NoWeight(t *testing.T) {
	for _, input := range []string{"Fresh Whole Garlic", "Bananas, each", ""} {
		_, ok := ParseWeightGrams(input)
		assert.False(t, ok, input)
	}
}

func TestFactsFromProduct_Priority(t *testing.T) {
	// 單位價字串優先於標題重量
	p := product{
		Title:        "Great Value Flour, 32 oz",
		PrimaryOffer: primaryOffer{OfferPrice: 1.98},
		PricePerUnit: pricePerUnit{Amount: "6.2 ¢/oz"},
	}
	facts := factsFromProduct(p)
	require.NotNil(t, facts.Price)
	assert.Equal(t, common.PerGram, facts.Unit)
	assert.InDelta(t, 0.062/gramsPerOunce, *facts.Price, 1e-12)

	// 沒有單位價時用售價除以標題重量
	p.PricePerUnit = pricePerUnit{}
	facts = factsFromProduct(p)
	require.NotNil(t, facts.Price)
	assert.Equal(t, common.PerGram, facts.Unit)
	assert.InDelta(t, 1.98/(32*gramsPerOunce), *facts.Price, 1e-12)

	// 標題暗示逐個時當成每顆計價
	p = product{
		Title:        "Fresh Banana, each",
		PrimaryOffer: primaryOffer{OfferPrice: 0.23},
	}
	facts = factsFromProduct(p)
	require.NotNil(t, facts.Price)
	assert.Equal(t, common.PerEach, facts.Unit)
	assert.InDelta(t, 0.23, *facts.Price, 1e-12)
}
