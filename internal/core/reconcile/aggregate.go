package reconcile

import (
	"smartbite/internal/pkg/common"
)

// Aggregate 把逐行的貢獻彙總成整份食譜與每份的總計。
// 缺值的行以零計入總和，份數必須為正整數。
func Aggregate(recipe common.Recipe, lines []common.ReconciledLine) (*common.RecipeResult, error) {
	if recipe.Servings <= 0 {
		return nil, common.ErrInvalidServings
	}

	result := &common.RecipeResult{
		RecipeID: recipe.ID,
		Title:    recipe.Title,
		URL:      recipe.URL,
		Servings: recipe.Servings,
		Lines:    lines,
	}
	for _, l := range lines {
		result.KcalTotal += l.Kcal
		result.CostTotal += l.Cost
	}
	result.KcalPerServing = result.KcalTotal / float64(recipe.Servings)
	result.CostPerServing = result.CostTotal / float64(recipe.Servings)
	return result, nil
}
