package session

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/dreshoplabs/dreshop-backend/internal/catalog"
	pkgerrors "github.com/dreshoplabs/dreshop-backend/pkg/errors"
	"github.com/dreshoplabs/dreshop-backend/pkg/logger"
	"github.com/dreshoplabs/dreshop-backend/pkg/pagination"
	"github.com/rs/zerolog"
)

func newTestLogger() *logger.Logger {
	return logger.New(logger.Options{Level: zerolog.ErrorLevel, Output: io.Discard})
}

type stubCatalog struct {
	products map[int64]catalog.Product
}

func (s *stubCatalog) Load(ctx context.Context) error { return nil }

func (s *stubCatalog) Search(ctx context.Context, spec catalog.FilterSpec, params pagination.Params) (catalog.Page, error) {
	return catalog.Page{}, nil
}

func (s *stubCatalog) Facets(ctx context.Context) (catalog.FacetSummary, error) {
	return catalog.FacetSummary{}, nil
}

func (s *stubCatalog) GetByID(ctx context.Context, id int64) (catalog.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return catalog.Product{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return p, nil
}

func newTestService(t *testing.T) Service {
	t.Helper()

	store, _ := newTestStore(t)
	repo, err := NewRepository(store, time.Hour, newTestLogger())
	if err != nil {
		t.Fatalf("NewRepository failed: %v", err)
	}

	products := map[int64]catalog.Product{}
	for _, p := range catalog.SeedProducts() {
		products[p.ID] = p
	}

	svc, err := NewService(ServiceParams{
		Repo:    repo,
		Catalog: &stubCatalog{products: products},
		Logger:  newTestLogger(),
		Now:     func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) },
	})
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	return svc
}

func TestServiceRequiresDependencies(t *testing.T) {
	t.Parallel()

	_, err := NewService(ServiceParams{})
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGetReturnsDefaultsForNewSession(t *testing.T) {
	svc := newTestService(t)

	state, err := svc.Get(context.Background(), "fresh")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(state.Cart) != 0 || state.Preferences != DefaultPreferences() {
		t.Fatalf("unexpected fresh state %+v", state)
	}
}

func TestGetRecoversFromCorruptSnapshot(t *testing.T) {
	store, mr := newTestStore(t)
	repo, err := NewRepository(store, time.Hour, newTestLogger())
	if err != nil {
		t.Fatalf("NewRepository failed: %v", err)
	}
	svc, err := NewService(ServiceParams{
		Repo:    repo,
		Catalog: &stubCatalog{products: map[int64]catalog.Product{}},
		Logger:  newTestLogger(),
	})
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}

	mr.Set("dreshop:snapshot:sess-corrupt", "{not json")

	state, err := svc.Get(context.Background(), "sess-corrupt")
	if err != nil {
		t.Fatalf("a torn snapshot must not fail the session, got %v", err)
	}
	if len(state.Cart) != 0 || state.Preferences != DefaultPreferences() {
		t.Fatalf("expected defaults after discard, got %+v", state)
	}
}

func TestClearRecentlyViewedThroughService(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.RecordView(ctx, "sess", 1); err != nil {
		t.Fatalf("RecordView failed: %v", err)
	}
	if _, err := svc.AddToWishlist(ctx, "sess", 2); err != nil {
		t.Fatalf("AddToWishlist failed: %v", err)
	}

	state, err := svc.ClearRecentlyViewed(ctx, "sess")
	if err != nil {
		t.Fatalf("ClearRecentlyViewed failed: %v", err)
	}
	if len(state.RecentlyViewed) != 0 {
		t.Fatalf("expected empty viewing history, got %+v", state.RecentlyViewed)
	}
	if len(state.Wishlist) != 1 {
		t.Fatalf("wishlist must survive the clear, got %+v", state.Wishlist)
	}

	state, _ = svc.Get(ctx, "sess")
	if len(state.RecentlyViewed) != 0 {
		t.Fatal("clear must persist across loads")
	}
}

func TestCartMutationsPersistAcrossLoads(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.AddToCart(ctx, "sess", 1, 2); err != nil {
		t.Fatalf("AddToCart failed: %v", err)
	}
	if _, err := svc.AddToCart(ctx, "sess", 1, 1); err != nil {
		t.Fatalf("AddToCart failed: %v", err)
	}

	state, err := svc.Get(ctx, "sess")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if state.CartItemCount() != 3 {
		t.Fatalf("expected 3 items after reload, got %d", state.CartItemCount())
	}

	if _, err := svc.UpdateQuantity(ctx, "sess", 1, 0); err != nil {
		t.Fatalf("UpdateQuantity failed: %v", err)
	}
	state, _ = svc.Get(ctx, "sess")
	if len(state.Cart) != 0 {
		t.Fatalf("expected empty cart, got %+v", state.Cart)
	}
}

func TestAddToCartUnknownProduct(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.AddToCart(context.Background(), "sess", 999, 1)
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestComparisonCapThroughService(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for id := int64(1); id <= MaxComparisonItems; id++ {
		_, added, err := svc.AddToComparison(ctx, "sess", id)
		if err != nil || !added {
			t.Fatalf("add %d: added=%v err=%v", id, added, err)
		}
	}
	state, added, err := svc.AddToComparison(ctx, "sess", 5)
	if err != nil {
		t.Fatalf("AddToComparison failed: %v", err)
	}
	if added {
		t.Fatal("add past cap should be rejected")
	}
	if len(state.ComparisonList) != MaxComparisonItems {
		t.Fatalf("expected %d entries, got %d", MaxComparisonItems, len(state.ComparisonList))
	}
}

func TestRecordSearchUsesClock(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	state, err := svc.RecordSearch(ctx, "sess", "camera")
	if err != nil {
		t.Fatalf("RecordSearch failed: %v", err)
	}
	want := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	if !state.SearchHistory[0].SearchedAt.Equal(want) {
		t.Fatalf("timestamp = %v, want %v", state.SearchHistory[0].SearchedAt, want)
	}
}

func TestResetDropsSnapshot(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.AddToWishlist(ctx, "sess", 3); err != nil {
		t.Fatalf("AddToWishlist failed: %v", err)
	}
	if err := svc.Reset(ctx, "sess"); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}

	state, err := svc.Get(ctx, "sess")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(state.Wishlist) != 0 {
		t.Fatalf("expected empty wishlist after reset, got %+v", state.Wishlist)
	}
}

func TestMutationSurvivesSnapshotWriteFailure(t *testing.T) {
	store, mr := newTestStore(t)
	repo, err := NewRepository(store, time.Hour, newTestLogger())
	if err != nil {
		t.Fatalf("NewRepository failed: %v", err)
	}

	products := map[int64]catalog.Product{}
	for _, p := range catalog.SeedProducts() {
		products[p.ID] = p
	}
	svc, err := NewService(ServiceParams{
		Repo:    repo,
		Catalog: &stubCatalog{products: products},
		Logger:  newTestLogger(),
	})
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}

	mr.Close()

	state, err := svc.AddToCart(context.Background(), "sess", 1, 1)
	if err != nil {
		t.Fatalf("mutation should survive a persist failure, got %v", err)
	}
	if state.CartItemCount() != 1 {
		t.Fatalf("expected in-memory result, got %d items", state.CartItemCount())
	}
}
