package scraper

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func docFrom(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestExtractJSONLD_PlainObject(t *testing.T) {
	html := `<html><head><script type="application/ld+json">
	{"@type":"Recipe","name":"Fried Rice","recipeYield":"4 servings",
	 "recipeIngredient":["2 cups rice","3 eggs"]}
	</script></head><body></body></html>`

	ld := extractJSONLD(docFrom(t, html))
	require.NotNil(t, ld)
	assert.Equal(t, "Fried Rice", ld.Name)
	assert.Equal(t, []string{"2 cups rice", "3 eggs"}, ld.RecipeIngredient)
	assert.Equal(t, 4, servingsFromYield(ld.RecipeYield))
}

func TestExtractJSONLD_TopLevelArray(t *testing.T) {
	html := `<script type="application/ld+json">
	[{"@type":"BreadcrumbList"},
	 {"@type":["Recipe","NewsArticle"],"name":"Pad Thai","recipeYield":[4,"4 servings"],
	  "recipeIngredient":["8 oz rice noodles"]}]
	</script>`

	ld := extractJSONLD(docFrom(t, html))
	require.NotNil(t, ld)
	assert.Equal(t, "Pad Thai", ld.Name)
	assert.Equal(t, 4, servingsFromYield(ld.RecipeYield))
}

func TestExtractJSONLD_Graph(t *testing.T) {
	html := `<script type="application/ld+json">
	{"@context":"https://schema.org","@graph":[
	 {"@type":"WebPage"},
	 {"@type":"Recipe","name":"Chili","recipeYield":6,"recipeIngredient":["1 lb ground beef"]}]}
	</script>`

	ld := extractJSONLD(docFrom(t, html))
	require.NotNil(t, ld)
	assert.Equal(t, "Chili", ld.Name)
	assert.Equal(t, 6, servingsFromYield(ld.RecipeYield))
}

func TestExtractJSONLD_NoRecipe(t *testing.T) {
	html := `<script type="application/ld+json">{"@type":"NewsArticle","name":"x"}</script>`
	assert.Nil(t, extractJSONLD(docFrom(t, html)))
}

func TestServingsFromYield_Variants(t *testing.T) {
	cases := map[string]int{
		`"Serves 8"`:      8,
		`"4 servings"`:    4,
		`6`:               6,
		`["12 cookies"]`:  12,
		`"unknown yield"`: 0,
	}
	for raw, want := range cases {
		assert.Equal(t, want, servingsFromYield(json.RawMessage(raw)), raw)
	}
}

func TestFilterIngredients(t *testing.T) {
	lines := []string{
		"2 cups rice",
		"",
		"1/2",
		"Preheat the oven to 350 degrees F (175 degrees C).",
		"3 eggs, beaten",
		strings.Repeat("x", 141),
	}
	kept := filterIngredients(lines)
	assert.Equal(t, []string{"2 cups rice", "3 eggs, beaten"}, kept)
}

func TestIngredientsFromDOM(t *testing.T) {
	html := `<ul>
	<li><span data-ingredient-name="true">2 cups rice</span></li>
	<li><span data-ingredient-name="true">3 eggs</span></li>
	</ul>`
	got := ingredientsFromDOM(docFrom(t, html))
	assert.Equal(t, []string{"2 cups rice", "3 eggs"}, got)
}

func TestRecipeID_StableAndShort(t *testing.T) {
	link := "https://www.allrecipes.com/recipe/12345/fried-rice/"
	id := recipeID(link)
	assert.Len(t, id, 12)
	assert.Equal(t, id, recipeID(link))
	assert.NotEqual(t, id, recipeID(link+"x"))
}

func TestStripQuery(t *testing.T) {
	href := "https://www.allrecipes.com/recipe/12345/fried-rice/?utm_source=search#top"
	assert.Equal(t, "https://www.allrecipes.com/recipe/12345/fried-rice/", stripQuery(href))
}
