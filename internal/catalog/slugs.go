package catalog

import "github.com/nayeemjohny/pcbuilder-backend/pkg/enums"

// Category slugs are the URL-facing names used by list endpoints. The table
// is static configuration; both directions stay in lockstep with the closed
// category enum.
var slugByCategory = map[enums.ComponentCategory]string{
	enums.ComponentCategoryCPU:         "processors",
	enums.ComponentCategoryMotherboard: "motherboards",
	enums.ComponentCategoryRAM:         "memory",
	enums.ComponentCategoryStorage:     "storage",
	enums.ComponentCategoryGPU:         "graphics-cards",
	enums.ComponentCategoryPSU:         "power-supplies",
	enums.ComponentCategoryCase:        "casings",
	enums.ComponentCategoryCooler:      "cpu-coolers",
	enums.ComponentCategoryMonitor:     "monitors",
}

var categoryBySlug = func() map[string]enums.ComponentCategory {
	out := make(map[string]enums.ComponentCategory, len(slugByCategory))
	for category, slug := range slugByCategory {
		out[slug] = category
	}
	return out
}()

// SlugForCategory returns the URL slug for a category.
func SlugForCategory(category enums.ComponentCategory) (string, bool) {
	slug, ok := slugByCategory[category]
	return slug, ok
}

// CategoryForSlug resolves a URL slug back to its category.
func CategoryForSlug(slug string) (enums.ComponentCategory, bool) {
	category, ok := categoryBySlug[slug]
	return category, ok
}
