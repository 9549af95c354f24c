package catalog

import (
	"sort"
	"strings"

	"github.com/olgakuznetsova/minimarket-core/pkg/db/models"
	"github.com/olgakuznetsova/minimarket-core/pkg/enums"
	"github.com/shopspring/decimal"
)

// FilterOptions is a conjunctive predicate over optional bounds. A nil
// field imposes no constraint; all bounds are inclusive.
type FilterOptions struct {
	MinPrice  *decimal.Decimal
	MaxPrice  *decimal.Decimal
	Category  *string
	InStock   *bool
	MinRating *float64
}

func (f FilterOptions) matches(p models.Product) bool {
	if f.MinPrice != nil && p.Price.LessThan(*f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice) {
		return false
	}
	if f.Category != nil && p.Category != *f.Category {
		return false
	}
	if f.InStock != nil && p.InStock != *f.InStock {
		return false
	}
	if f.MinRating != nil && p.Rating < *f.MinRating {
		return false
	}
	return true
}

// SearchProducts keeps products whose name or description contains the
// query, case-insensitively. An empty or whitespace-only query returns the
// input unchanged.
func SearchProducts(products []models.Product, query string) []models.Product {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return products
	}
	needle := strings.ToLower(trimmed)
	matched := make([]models.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) {
			matched = append(matched, p)
		}
	}
	return matched
}

// FilterProducts keeps products satisfying every set bound.
func FilterProducts(products []models.Product, filters FilterOptions) []models.Product {
	matched := make([]models.Product, 0, len(products))
	for _, p := range products {
		if filters.matches(p) {
			matched = append(matched, p)
		}
	}
	return matched
}

// SortProducts returns a sorted copy: price ascending, rating descending,
// or review count descending. Ties keep their relative order; the input is
// never mutated. An unknown key returns the copy unsorted.
func SortProducts(products []models.Product, sortBy enums.SortKey) []models.Product {
	sorted := make([]models.Product, len(products))
	copy(sorted, products)
	switch sortBy {
	case enums.SortKeyPrice:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Price.LessThan(sorted[j].Price)
		})
	case enums.SortKeyRating:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Rating > sorted[j].Rating
		})
	case enums.SortKeyPopularity:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].ReviewsCount > sorted[j].ReviewsCount
		})
	}
	return sorted
}
