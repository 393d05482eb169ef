package catalog

import (
	"context"
	"testing"

	pkgerrors "github.com/dreshoplabs/dreshop-backend/pkg/errors"
	"github.com/dreshoplabs/dreshop-backend/pkg/pagination"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := conn.AutoMigrate(&Product{}); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return conn
}

func seededService(t *testing.T) Service {
	t.Helper()

	repo := NewRepository(openTestDB(t))
	if err := repo.Seed(context.Background(), SeedProducts()); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	svc, err := NewService(ServiceParams{Repo: repo})
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return svc
}

func TestNewServiceRequiresRepo(t *testing.T) {
	t.Parallel()

	_, err := NewService(ServiceParams{})
	if err == nil {
		t.Fatal("expected error for missing repo")
	}
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	t.Parallel()

	repo := NewRepository(openTestDB(t))
	ctx := context.Background()

	if err := repo.Seed(ctx, SeedProducts()); err != nil {
		t.Fatalf("first seed failed: %v", err)
	}
	if err := repo.Seed(ctx, SeedProducts()); err != nil {
		t.Fatalf("second seed failed: %v", err)
	}

	products, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(products) != len(SeedProducts()) {
		t.Fatalf("expected %d products, got %d", len(SeedProducts()), len(products))
	}
}

func TestSearchBeforeLoadFails(t *testing.T) {
	t.Parallel()

	svc, err := NewService(ServiceParams{Repo: NewRepository(openTestDB(t))})
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	if _, err := svc.Search(context.Background(), FilterSpec{}, pagination.Params{}); err == nil {
		t.Fatal("expected error before Load")
	}
}

func TestSearchFiltersAndPaginates(t *testing.T) {
	t.Parallel()

	svc := seededService(t)
	ctx := context.Background()

	page, err := svc.Search(ctx, FilterSpec{Categories: []string{"Electronics"}}, pagination.Params{Limit: 3})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if page.Total != 8 {
		t.Fatalf("expected 8 electronics, got %d", page.Total)
	}
	if len(page.Products) != 3 {
		t.Fatalf("expected page of 3, got %d", len(page.Products))
	}

	next, err := svc.Search(ctx, FilterSpec{Categories: []string{"Electronics"}}, pagination.Params{Limit: 3, Offset: 6})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(next.Products) != 2 {
		t.Fatalf("expected trailing page of 2, got %d", len(next.Products))
	}
}

func TestSearchSortSurvivesRoundTrip(t *testing.T) {
	t.Parallel()

	svc := seededService(t)

	page, err := svc.Search(context.Background(), FilterSpec{Sort: SortPriceLow}, pagination.Params{Limit: 100})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	for i := 1; i < len(page.Products); i++ {
		if page.Products[i].PriceCents < page.Products[i-1].PriceCents {
			t.Fatalf("products out of price order at index %d", i)
		}
	}
}

func TestGetByID(t *testing.T) {
	t.Parallel()

	svc := seededService(t)
	ctx := context.Background()

	p, err := svc.GetByID(ctx, 3)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if p.Name != "Luxury Watch Collection" {
		t.Fatalf("unexpected product: %s", p.Name)
	}

	_, err = svc.GetByID(ctx, 999)
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}

	_, err = svc.GetByID(ctx, 0)
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestServiceFacets(t *testing.T) {
	t.Parallel()

	svc := seededService(t)

	facets, err := svc.Facets(context.Background())
	if err != nil {
		t.Fatalf("Facets failed: %v", err)
	}
	if len(facets.Categories) != 3 {
		t.Fatalf("expected 3 categories, got %v", facets.Categories)
	}
	if facets.MinPriceCents != 7900 || facets.MaxPriceCents != 129900 {
		t.Fatalf("unexpected price bounds [%d %d]", facets.MinPriceCents, facets.MaxPriceCents)
	}
}
