package knowledge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalize_StripsPrepAndDescriptors(t *testing.T) {
	c := NewCanonicalizer(NewBuiltinKB())

	assert.Equal(t, "onion", c.Canonicalize("finely chopped large onion"))
	assert.Equal(t, "garlic", c.Canonicalize("garlic, minced"))
	assert.Equal(t, "butter", c.Canonicalize("unsalted butter (softened)"))
	assert.Equal(t, "parsley", c.Canonicalize("fresh parsley for garnish"))
}

func TestCanonicalize_AliasLookup(t *testing.T) {
	c := NewCanonicalizer(NewBuiltinKB())

	assert.Equal(t, "green onion", c.Canonicalize("scallions"))
	assert.Equal(t, "cilantro", c.Canonicalize("fresh coriander"))
	assert.Equal(t, "chickpea", c.Canonicalize("garbanzo beans"))
}

func TestCanonicalize_Singularizes(t *testing.T) {
	c := NewCanonicalizer(NewBuiltinKB())

	assert.Equal(t, "egg", c.Canonicalize("eggs"))
	assert.Equal(t, "tomato", c.Canonicalize("tomatoes"))
	assert.Equal(t, "cherry", c.Canonicalize("cherries"))
	assert.Equal(t, "green bean", c.Canonicalize("green beans"))

	// ss/us 結尾不動
	assert.Equal(t, "asparagus", c.Canonicalize("asparagus"))
	assert.Equal(t, "couscous", c.Canonicalize("couscous"))
}

func TestCanonicalize_SameKeyForVariants(t *testing.T) {
	c := NewCanonicalizer(NewBuiltinKB())

	want := c.Canonicalize("egg")
	for _, raw := range []string{"eggs", "large eggs", "Egg", "  egg  "} {
		assert.Equal(t, want, c.Canonicalize(raw), raw)
	}
}

func TestNormalize_Empty(t *testing.T) {
	assert.Equal(t, "", Normalize("   "))
	assert.Equal(t, "", Normalize("(optional)"))
}
