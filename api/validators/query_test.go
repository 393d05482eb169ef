package validators

import (
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/dreshoplabs/dreshop-backend/internal/catalog"
)

func TestParseFilterSpecFull(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest("GET",
		"/products?q=head&min_price=10000&max_price=50000&category=Electronics,Fashion&brand=TechSound&min_rating=4&new=true&sale=false&sort=price-low", nil)

	spec, err := ParseFilterSpec(r)
	if err != nil {
		t.Fatalf("ParseFilterSpec failed: %v", err)
	}
	if spec.Query != "head" {
		t.Fatalf("query = %q", spec.Query)
	}
	if spec.MinPriceCents == nil || *spec.MinPriceCents != 10000 {
		t.Fatalf("min price = %v", spec.MinPriceCents)
	}
	if spec.MaxPriceCents == nil || *spec.MaxPriceCents != 50000 {
		t.Fatalf("max price = %v", spec.MaxPriceCents)
	}
	if !reflect.DeepEqual(spec.Categories, []string{"Electronics", "Fashion"}) {
		t.Fatalf("categories = %v", spec.Categories)
	}
	if !reflect.DeepEqual(spec.Brands, []string{"TechSound"}) {
		t.Fatalf("brands = %v", spec.Brands)
	}
	if !reflect.DeepEqual(spec.MinRatings, []int{4}) {
		t.Fatalf("ratings = %v", spec.MinRatings)
	}
	if !spec.OnlyNew || spec.OnlySale {
		t.Fatalf("flags: new=%v sale=%v", spec.OnlyNew, spec.OnlySale)
	}
	if spec.Sort != catalog.SortPriceLow {
		t.Fatalf("sort = %q", spec.Sort)
	}
}

func TestParseFilterSpecEmptyIsZero(t *testing.T) {
	t.Parallel()

	spec, err := ParseFilterSpec(httptest.NewRequest("GET", "/products", nil))
	if err != nil {
		t.Fatalf("ParseFilterSpec failed: %v", err)
	}
	if spec.MinPriceCents != nil || spec.MaxPriceCents != nil {
		t.Fatal("absent bounds must stay nil")
	}
	if len(spec.Categories) != 0 || len(spec.Brands) != 0 || len(spec.MinRatings) != 0 {
		t.Fatalf("unexpected selections %+v", spec)
	}
	if spec.Sort != catalog.SortRelevance {
		t.Fatalf("default sort = %q", spec.Sort)
	}
}

func TestParseFilterSpecRejectsBadInput(t *testing.T) {
	t.Parallel()

	cases := []string{
		"/products?min_price=abc",
		"/products?min_price=-5",
		"/products?min_rating=9",
		"/products?min_rating=x",
		"/products?new=maybe",
	}
	for _, target := range cases {
		if _, err := ParseFilterSpec(httptest.NewRequest("GET", target, nil)); err == nil {
			t.Errorf("expected error for %s", target)
		}
	}
}

func TestParsePaginationDefaults(t *testing.T) {
	t.Parallel()

	params, err := ParsePagination(httptest.NewRequest("GET", "/products", nil))
	if err != nil {
		t.Fatalf("ParsePagination failed: %v", err)
	}
	if params.Limit == 0 || params.Offset != 0 {
		t.Fatalf("unexpected defaults %+v", params)
	}

	if _, err := ParsePagination(httptest.NewRequest("GET", "/products?limit=0", nil)); err == nil {
		t.Fatal("limit below range should fail")
	}
	if _, err := ParsePagination(httptest.NewRequest("GET", "/products?offset=-1", nil)); err == nil {
		t.Fatal("negative offset should fail")
	}
}
