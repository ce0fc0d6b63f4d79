package domain

import (
	"math"
	"sort"
	"strings"
)

// AllCategories is the synthetic sentinel the category filter uses for
// "no category restriction".
const AllCategories = "All Categories"

// DefaultMaxPrice is the price bound used for an empty catalog.
const DefaultMaxPrice = 1000

// A FilterState is the ephemeral client-held narrowing of the catalog:
// free-text search against names, a category (or the AllCategories
// sentinel) and an inclusive upper price bound.
type FilterState struct {
	Search   string
	Type     string
	MaxPrice float64
}

// UnboundedFilter passes every product.
func UnboundedFilter() FilterState {
	return FilterState{
		Type:     AllCategories,
		MaxPrice: math.Inf(1),
	}
}

// Matches reports whether a single product passes the filter.
func (fs FilterState) Matches(p Product) bool {
	if fs.Search != "" &&
		!strings.Contains(
			strings.ToLower(p.Name), strings.ToLower(fs.Search),
		) {
		return false
	}
	if fs.Type != AllCategories && fs.Type != p.Type {
		return false
	}
	return p.Price <= fs.MaxPrice
}

// FilterProducts computes the visible subset of ps. The filter is
// stable: input order is preserved and never re-sorted.
func FilterProducts(ps []Product, fs FilterState) []Product {
	filtered := make([]Product, 0, len(ps))
	for _, p := range ps {
		if fs.Matches(p) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// CategorySet derives the filterable categories from the live product
// list: the AllCategories sentinel first, then the distinct non-empty
// type values sorted. Never persisted, recomputed on every load.
func CategorySet(ps []Product) []string {
	seen := make(map[string]struct{}, len(ps))
	var types []string
	for _, p := range ps {
		if p.Type == "" {
			continue
		}
		if _, ok := seen[p.Type]; ok {
			continue
		}
		seen[p.Type] = struct{}{}
		types = append(types, p.Type)
	}
	sort.Strings(types)
	return append([]string{AllCategories}, types...)
}

// MaxCatalogPrice returns the default upper price bound: at least the
// maximum price present in ps, never below DefaultMaxPrice. A lower
// default would hide valid products.
func MaxCatalogPrice(ps []Product) float64 {
	bound := float64(DefaultMaxPrice)
	for _, p := range ps {
		if p.Price > bound {
			bound = p.Price
		}
	}
	return bound
}
