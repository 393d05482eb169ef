package catalog

import (
	"math"
	"sort"
	"strings"
)

// SortKey selects the ordering applied after filtering.
type SortKey string

const (
	SortRelevance SortKey = "relevance"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortRating    SortKey = "rating"
	SortNewest    SortKey = "newest"
)

// ParseSortKey maps a raw value onto a supported sort key, defaulting to
// relevance for anything unrecognized.
func ParseSortKey(value string) SortKey {
	switch SortKey(strings.ToLower(strings.TrimSpace(value))) {
	case SortPriceLow:
		return SortPriceLow
	case SortPriceHigh:
		return SortPriceHigh
	case SortRating:
		return SortRating
	case SortNewest:
		return SortNewest
	default:
		return SortRelevance
	}
}

// FilterSpec describes one catalog query. Empty sets, a blank query, and nil
// price bounds place no constraint. A range whose min exceeds its max matches
// nothing; that is a valid spec, not an error.
type FilterSpec struct {
	Query         string
	MinPriceCents *int64
	MaxPriceCents *int64
	Categories    []string
	Brands        []string
	MinRatings    []int
	OnlyNew       bool
	OnlySale      bool
	Sort          SortKey
}

// Apply filters and orders the candidate products. It is pure: the inputs are
// never mutated and the result is a fresh slice. All active predicates are
// ANDed; a spec whose bounds exclude everything yields an empty, non-nil
// result rather than an error.
func Apply(products []Product, spec FilterSpec) []Product {
	query := strings.ToLower(strings.TrimSpace(spec.Query))
	categories := toLowerSet(spec.Categories)
	brands := toLowerSet(spec.Brands)

	out := make([]Product, 0, len(products))
	for _, p := range products {
		if !matchesQuery(p, query) {
			continue
		}
		if spec.MinPriceCents != nil && p.PriceCents < *spec.MinPriceCents {
			continue
		}
		if spec.MaxPriceCents != nil && p.PriceCents > *spec.MaxPriceCents {
			continue
		}
		if !matchesSet(p.Category, categories) {
			continue
		}
		if !matchesSet(p.Brand, brands) {
			continue
		}
		if !matchesRating(p.Rating, spec.MinRatings) {
			continue
		}
		if spec.OnlyNew && !p.IsNew {
			continue
		}
		if spec.OnlySale && !p.OnSale() {
			continue
		}
		out = append(out, p)
	}

	sortProducts(out, spec.Sort)
	return out
}

// matchesQuery is a case-insensitive substring match over name, category, and
// brand; any one field matching is enough. An empty query matches everything.
func matchesQuery(p Product, query string) bool {
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(p.Name), query) {
		return true
	}
	if p.Category != nil && strings.Contains(strings.ToLower(*p.Category), query) {
		return true
	}
	if p.Brand != nil && strings.Contains(strings.ToLower(*p.Brand), query) {
		return true
	}
	return false
}

// matchesSet applies the selected-set policy: an empty set is no constraint
// and an absent field never matches a non-empty set.
func matchesSet(field *string, selected map[string]struct{}) bool {
	if len(selected) == 0 {
		return true
	}
	if field == nil {
		return false
	}
	_, ok := selected[strings.ToLower(*field)]
	return ok
}

// matchesRating passes when any selected threshold is satisfied by the
// floored rating. No thresholds means no constraint.
func matchesRating(rating float64, thresholds []int) bool {
	if len(thresholds) == 0 {
		return true
	}
	floored := int(math.Floor(rating))
	for _, min := range thresholds {
		if floored >= min {
			return true
		}
	}
	return false
}

// sortProducts orders in place. Every sort is stable so equal-key products
// keep their pre-sort relative order; relevance leaves the input order as is.
func sortProducts(products []Product, key SortKey) {
	switch key {
	case SortPriceLow:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].PriceCents < products[j].PriceCents
		})
	case SortPriceHigh:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].PriceCents > products[j].PriceCents
		})
	case SortRating:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Rating > products[j].Rating
		})
	case SortNewest:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].IsNew && !products[j].IsNew
		})
	}
}

// FacetSummary describes the filterable surface of a catalog: the distinct
// categories and brands (sorted alphabetically) and the observed price range.
type FacetSummary struct {
	Categories    []string `json:"categories"`
	Brands        []string `json:"brands"`
	MinPriceCents int64    `json:"min_price_cents"`
	MaxPriceCents int64    `json:"max_price_cents"`
}

// Facets summarizes the distinct categories, brands, and price bounds present
// in the catalog. Absent fields contribute nothing to the facet lists.
func Facets(products []Product) FacetSummary {
	summary := FacetSummary{
		Categories: distinct(products, func(p Product) *string { return p.Category }),
		Brands:     distinct(products, func(p Product) *string { return p.Brand }),
	}
	for i, p := range products {
		if i == 0 || p.PriceCents < summary.MinPriceCents {
			summary.MinPriceCents = p.PriceCents
		}
		if p.PriceCents > summary.MaxPriceCents {
			summary.MaxPriceCents = p.PriceCents
		}
	}
	return summary
}

func distinct(products []Product, field func(Product) *string) []string {
	seen := map[string]struct{}{}
	values := []string{}
	for _, p := range products {
		v := field(p)
		if v == nil || *v == "" {
			continue
		}
		if _, ok := seen[*v]; ok {
			continue
		}
		seen[*v] = struct{}{}
		values = append(values, *v)
	}
	sort.Strings(values)
	return values
}

func toLowerSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		set[v] = struct{}{}
	}
	return set
}
