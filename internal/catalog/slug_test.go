package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Electronics":        "electronics",
		"Home & Garden":      "home-garden",
		"Toys & Hobbies":     "toys-hobbies",
		"  padded  name  ":   "padded-name",
		"CDs, DVDs & Vinyl":  "cds-dvds-vinyl",
		"Café Décor":         "caf-d-cor",
		"!!!":                "category",
		"":                   "category",
		"already-slugged-42": "already-slugged-42",
	}
	for name, want := range cases {
		assert.Equal(t, want, slugify(name), "slugify(%q)", name)
	}
}

func TestUniqueSlugs(t *testing.T) {
	slugs := uniqueSlugs([]string{"Home & Garden", "Home  Garden", "home garden"})
	assert.Equal(t, "home-garden", slugs["Home & Garden"])
	assert.Equal(t, "home-garden-2", slugs["Home  Garden"])
	assert.Equal(t, "home-garden-3", slugs["home garden"])
}
