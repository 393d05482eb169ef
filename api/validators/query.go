package validators

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/dreshoplabs/dreshop-backend/internal/catalog"
	pkgerrors "github.com/dreshoplabs/dreshop-backend/pkg/errors"
	"github.com/dreshoplabs/dreshop-backend/pkg/pagination"
)

func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").WithDetails(map[string]any{"field": key})
	}
	if value < min || value > max {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter out of range").WithDetails(map[string]any{"field": key, "min": min, "max": max})
	}
	return value, nil
}

// ParsePagination reads limit/offset query parameters with the catalog
// defaults.
func ParsePagination(r *http.Request) (pagination.Params, error) {
	limit, err := ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
	if err != nil {
		return pagination.Params{}, err
	}
	offset, err := ParseQueryInt(r, "offset", 0, 0, 1<<30)
	if err != nil {
		return pagination.Params{}, err
	}
	return pagination.Params{Limit: limit, Offset: offset}, nil
}

// ParseFilterSpec maps the catalog filter query parameters onto a FilterSpec:
// q, min_price / max_price (cents), category / brand (repeatable or
// comma-separated), min_rating (repeatable), new, sale, sort.
func ParseFilterSpec(r *http.Request) (catalog.FilterSpec, error) {
	query := r.URL.Query()
	spec := catalog.FilterSpec{
		Query:      strings.TrimSpace(query.Get("q")),
		Categories: splitMulti(query["category"]),
		Brands:     splitMulti(query["brand"]),
		Sort:       catalog.ParseSortKey(query.Get("sort")),
	}

	minPrice, err := parseOptionalCents(query.Get("min_price"), "min_price")
	if err != nil {
		return catalog.FilterSpec{}, err
	}
	spec.MinPriceCents = minPrice

	maxPrice, err := parseOptionalCents(query.Get("max_price"), "max_price")
	if err != nil {
		return catalog.FilterSpec{}, err
	}
	spec.MaxPriceCents = maxPrice

	for _, raw := range splitMulti(query["min_rating"]) {
		rating, err := strconv.Atoi(raw)
		if err != nil || rating < 0 || rating > 5 {
			return catalog.FilterSpec{}, pkgerrors.New(pkgerrors.CodeValidation, "min_rating must be an integer between 0 and 5")
		}
		spec.MinRatings = append(spec.MinRatings, rating)
	}

	spec.OnlyNew, err = parseBoolFlag(query.Get("new"), "new")
	if err != nil {
		return catalog.FilterSpec{}, err
	}
	spec.OnlySale, err = parseBoolFlag(query.Get("sale"), "sale")
	if err != nil {
		return catalog.FilterSpec{}, err
	}

	return spec, nil
}

func parseOptionalCents(raw, field string) (*int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price bound must be a non-negative integer").WithDetails(map[string]any{"field": field})
	}
	return &value, nil
}

func parseBoolFlag(raw, field string) (bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "flag must be a boolean").WithDetails(map[string]any{"field": field})
	}
	return value, nil
}

// splitMulti accepts repeated parameters and comma-separated lists alike.
func splitMulti(values []string) []string {
	var out []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
