package quantity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartbite/internal/core/knowledge"
	"smartbite/internal/pkg/common"
)

func newTestParser() *Parser {
	return NewParser(knowledge.NewCanonicalizer(knowledge.NewBuiltinKB()))
}

func TestParse_MassUnits(t *testing.T) {
	p := newTestParser()

	tests := []struct {
		name  string
		raw   string
		grams float64
	}{
		{"grams", "200 g flour", 200},
		{"gram word", "200 grams flour", 200},
		{"kilograms", "1.5 kg chicken breast", 1500},
		{"ounces", "8 oz cheddar cheese", 8 * 28.349523125},
		{"pounds", "2 lbs ground beef", 2 * 453.59237},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ing := p.Parse(tt.raw)
			assert.Equal(t, common.UnitMass, ing.UnitKind)
			assert.InDelta(t, tt.grams, ing.QuantityG, 1e-9)
			assert.Zero(t, ing.EachCount)
		})
	}
}

func TestParse_CountLines(t *testing.T) {
	p := newTestParser()

	ing := p.Parse("3 eggs")
	assert.Equal(t, common.UnitCount, ing.UnitKind)
	assert.Equal(t, 3.0, ing.EachCount)
	assert.Equal(t, "egg", ing.CanonicalName)

	ing = p.Parse("2 cloves garlic")
	assert.Equal(t, common.UnitCount, ing.UnitKind)
	assert.Equal(t, 2.0, ing.EachCount)
	assert.Equal(t, "garlic", ing.CanonicalName)

	// 未標數量時預設一個
	ing = p.Parse("egg")
	assert.Equal(t, common.UnitCount, ing.UnitKind)
	assert.Equal(t, 1.0, ing.EachCount)
}

func TestParse_VolumeNeedsDensity(t *testing.T) {
	p := newTestParser()

	// 有密度資料時換算為公克
	ing := p.Parse("2 cups rice")
	require.Equal(t, common.UnitMass, ing.UnitKind)
	assert.InDelta(t, 2*185.0, ing.QuantityG, 1e-9)

	ing = p.Parse("1 tbsp olive oil")
	require.Equal(t, common.UnitMass, ing.UnitKind)
	assert.InDelta(t, 15.0*218.0/240.0, ing.QuantityG, 1e-9)

	// 查無密度時不臆測
	ing = p.Parse("1 cup chopped walnuts")
	assert.Equal(t, common.UnitUnparsed, ing.UnitKind)
	assert.Zero(t, ing.QuantityG)
	assert.Zero(t, ing.EachCount)
}

func TestParse_Fractions(t *testing.T) {
	p := newTestParser()

	ing := p.Parse("1/2 cup sugar")
	require.Equal(t, common.UnitMass, ing.UnitKind)
	assert.InDelta(t, 0.5*240.0*200.0/240.0, ing.QuantityG, 1e-9)

	ing = p.Parse("½ cup sugar")
	require.Equal(t, common.UnitMass, ing.UnitKind)
	assert.InDelta(t, 0.5*240.0*200.0/240.0, ing.QuantityG, 1e-9)

	ing = p.Parse("1 1/2 cups milk")
	require.Equal(t, common.UnitMass, ing.UnitKind)
	assert.InDelta(t, 1.5*240.0*1.03, ing.QuantityG, 1e-9)

	ing = p.Parse("1½ cups milk")
	require.Equal(t, common.UnitMass, ing.UnitKind)
	assert.InDelta(t, 1.5*240.0*1.03, ing.QuantityG, 1e-9)
}

func TestParse_RangeTakesLowerBound(t *testing.T) {
	p := newTestParser()

	ing := p.Parse("2-3 eggs")
	assert.Equal(t, common.UnitCount, ing.UnitKind)
	assert.Equal(t, 2.0, ing.EachCount)

	ing = p.Parse("2 to 3 cups water")
	require.Equal(t, common.UnitMass, ing.UnitKind)
	assert.InDelta(t, 2*240.0, ing.QuantityG, 1e-9)
}

func TestParse_WeightOverrides(t *testing.T) {
	p := newTestParser()

	// 括號重量優先，外層數量相乘
	ing := p.Parse("1 (8 ounce) package cream cheese")
	require.Equal(t, common.UnitMass, ing.UnitKind)
	assert.InDelta(t, 8*28.349523125, ing.QuantityG, 1e-9)

	ing = p.Parse("2 (12 ounce) cans evaporated milk")
	require.Equal(t, common.UnitMass, ing.UnitKind)
	assert.InDelta(t, 2*12*28.349523125, ing.QuantityG, 1e-9)

	// 連字號重量
	ing = p.Parse("1 8-pound pork shoulder roast")
	require.Equal(t, common.UnitMass, ing.UnitKind)
	assert.InDelta(t, 8*453.59237, ing.QuantityG, 1e-9)

	// 多件裝
	ing = p.Parse("2 x 16 oz pasta")
	require.Equal(t, common.UnitMass, ing.UnitKind)
	assert.InDelta(t, 2*16*28.349523125, ing.QuantityG, 1e-9)
}

func TestParse_RejectsZeroAndNegative(t *testing.T) {
	p := newTestParser()

	for _, raw := range []string{"0 g flour", "-2 eggs", "0 eggs"} {
		ing := p.Parse(raw)
		assert.Equal(t, common.UnitUnparsed, ing.UnitKind, raw)
		assert.Zero(t, ing.QuantityG, raw)
		assert.Zero(t, ing.EachCount, raw)
	}
}

func TestParse_EmptyAndJunk(t *testing.T) {
	p := newTestParser()

	for _, raw := range []string{"", "   ", ","} {
		ing := p.Parse(raw)
		assert.Equal(t, common.UnitUnparsed, ing.UnitKind)
	}

	// 逗號後的備註不影響解析
	ing := p.Parse("200 g flour, sifted")
	require.Equal(t, common.UnitMass, ing.UnitKind)
	assert.InDelta(t, 200.0, ing.QuantityG, 1e-9)
}

func TestParse_RawTextPreserved(t *testing.T) {
	p := newTestParser()
	raw := "2 cups rice, rinsed"
	assert.Equal(t, raw, p.Parse(raw).RawText)
}
