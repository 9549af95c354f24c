package catalog

import (
	"context"

	"github.com/olgakuznetsova/minimarket-core/pkg/db/models"
)

// DefaultCategoryIcon is the glyph used when no mapping resolves.
const DefaultCategoryIcon = "🛍️"

// staticCategoryIcons covers the seeded categories. Live categories added
// through the store carry their own glyph and take over via the second
// resolution step.
var staticCategoryIcons = map[string]string{
	"electronics": "📱",
	"clothing":    "👕",
	"home":        "🏠",
	"sports":      "⚽",
	"beauty":      "💄",
	"books":       "📚",
	"toys":        "🧸",
	"food":        "🍎",
}

// resolveCategoryIcon applies the fixed precedence: static map, then the
// live category table, then the default glyph.
func resolveCategoryIcon(categoryID string, categories []models.Category) string {
	if icon, ok := staticCategoryIcons[categoryID]; ok {
		return icon
	}
	for _, c := range categories {
		if c.ID == categoryID && c.Icon != "" {
			return c.Icon
		}
	}
	return DefaultCategoryIcon
}

// ResolveCategoryIcon resolves a category's display glyph against the
// stored category table. Lookup failures fall through to the default glyph.
func (s *service) ResolveCategoryIcon(ctx context.Context, categoryID string) string {
	categories, err := s.categories.Get(ctx)
	if err != nil {
		return resolveCategoryIcon(categoryID, nil)
	}
	return resolveCategoryIcon(categoryID, categories)
}
