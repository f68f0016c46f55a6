package catalog

import (
	"strconv"
	"strings"
)

// slugify lowers the name and collapses every run of non-alphanumeric
// characters into a single hyphen. A name with no usable characters slugs to
// "category" so the page still gets a valid filename.
func slugify(name string) string {
	var b strings.Builder
	pending := false
	for _, r := range strings.ToLower(name) {
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !alnum {
			pending = b.Len() > 0
			continue
		}
		if pending {
			b.WriteByte('-')
			pending = false
		}
		b.WriteRune(r)
	}
	if b.Len() == 0 {
		return "category"
	}
	return b.String()
}

// uniqueSlugs assigns each name its slug, suffixing duplicates with -2, -3,
// ... in the order given, so the first occupant keeps the bare slug.
func uniqueSlugs(names []string) map[string]string {
	taken := map[string]bool{}
	out := make(map[string]string, len(names))
	for _, name := range names {
		base := slugify(name)
		slug := base
		for n := 2; taken[slug]; n++ {
			slug = base + "-" + strconv.Itoa(n)
		}
		taken[slug] = true
		out[name] = slug
	}
	return out
}
