package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartbite/internal/pkg/common"
)

func TestAggregate_SumsAndPerServing(t *testing.T) {
	recipe := common.Recipe{ID: "r1", Title: "Fried Rice", Servings: 4}
	lines := []common.ReconciledLine{
		{Kcal: 400, Cost: 1.2},
		{Kcal: 210, Cost: 0.75},
		{Missing: true}, // 缺值行以零計入
	}

	result, err := Aggregate(recipe, lines)
	require.NoError(t, err)
	assert.InDelta(t, 610.0, result.KcalTotal, 1e-9)
	assert.InDelta(t, 1.95, result.CostTotal, 1e-9)
	assert.InDelta(t, 152.5, result.KcalPerServing, 1e-9)
	assert.InDelta(t, 0.4875, result.CostPerServing, 1e-9)
	assert.Len(t, result.Lines, 3)
}

func TestAggregate_InvalidServings(t *testing.T) {
	for _, servings := range []int{0, -1} {
		recipe := common.Recipe{ID: "r1", Servings: servings}
		result, err := Aggregate(recipe, nil)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, common.ErrInvalidServings)
	}
}

func TestAggregate_EmptyLines(t *testing.T) {
	result, err := Aggregate(common.Recipe{ID: "r1", Servings: 2}, nil)
	require.NoError(t, err)
	assert.Zero(t, result.KcalTotal)
	assert.Zero(t, result.CostPerServing)
}

func TestAggregate_PreservesLineOrder(t *testing.T) {
	lines := []common.ReconciledLine{
		{Ingredient: common.Ingredient{CanonicalName: "rice"}},
		{Ingredient: common.Ingredient{CanonicalName: "egg"}},
		{Ingredient: common.Ingredient{CanonicalName: "green onion"}},
	}
	result, err := Aggregate(common.Recipe{ID: "r1", Servings: 1}, lines)
	require.NoError(t, err)
	for i := range lines {
		assert.Equal(t, lines[i].Ingredient.CanonicalName, result.Lines[i].Ingredient.CanonicalName)
	}
}
