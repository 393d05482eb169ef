package checkout

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/dreshoplabs/dreshop-backend/internal/catalog"
	"github.com/dreshoplabs/dreshop-backend/internal/session"
	pkgerrors "github.com/dreshoplabs/dreshop-backend/pkg/errors"
	"github.com/dreshoplabs/dreshop-backend/pkg/logger"
	"github.com/rs/zerolog"
)

type stubSessions struct {
	state   *session.State
	cleared bool
	getErr  error
}

func (s *stubSessions) Get(ctx context.Context, sessionID string) (*session.State, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.state, nil
}

func (s *stubSessions) ClearCart(ctx context.Context, sessionID string) (*session.State, error) {
	s.cleared = true
	s.state.ClearCart()
	return s.state, nil
}

func (s *stubSessions) AddToCart(ctx context.Context, sessionID string, productID int64, quantity int) (*session.State, error) {
	return s.state, nil
}

func (s *stubSessions) RemoveFromCart(ctx context.Context, sessionID string, productID int64) (*session.State, error) {
	return s.state, nil
}

func (s *stubSessions) UpdateQuantity(ctx context.Context, sessionID string, productID int64, quantity int) (*session.State, error) {
	return s.state, nil
}

func (s *stubSessions) AddToWishlist(ctx context.Context, sessionID string, productID int64) (*session.State, error) {
	return s.state, nil
}

func (s *stubSessions) RemoveFromWishlist(ctx context.Context, sessionID string, productID int64) (*session.State, error) {
	return s.state, nil
}

func (s *stubSessions) AddToComparison(ctx context.Context, sessionID string, productID int64) (*session.State, bool, error) {
	return s.state, false, nil
}

func (s *stubSessions) RemoveFromComparison(ctx context.Context, sessionID string, productID int64) (*session.State, error) {
	return s.state, nil
}

func (s *stubSessions) ClearComparison(ctx context.Context, sessionID string) (*session.State, error) {
	return s.state, nil
}

func (s *stubSessions) RecordView(ctx context.Context, sessionID string, productID int64) (*session.State, error) {
	return s.state, nil
}

func (s *stubSessions) ClearRecentlyViewed(ctx context.Context, sessionID string) (*session.State, error) {
	return s.state, nil
}

func (s *stubSessions) RecordSearch(ctx context.Context, sessionID string, term string) (*session.State, error) {
	return s.state, nil
}

func (s *stubSessions) ClearSearchHistory(ctx context.Context, sessionID string) (*session.State, error) {
	return s.state, nil
}

func (s *stubSessions) UpdatePreferences(ctx context.Context, sessionID string, patch session.PreferencesPatch) (*session.State, error) {
	return s.state, nil
}

func (s *stubSessions) Reset(ctx context.Context, sessionID string) error { return nil }

func newTestService(t *testing.T, sessions session.Service) Service {
	t.Helper()

	svc, err := NewService(ServiceParams{
		Sessions: sessions,
		Logger:   logger.New(logger.Options{Level: zerolog.ErrorLevel, Output: io.Discard}),
		Now:      func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) },
	})
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	return svc
}

func TestPlaceOrderTotalsAndClears(t *testing.T) {
	t.Parallel()

	state := session.NewState()
	state.AddToCart(catalog.Product{ID: 1, Name: "Headphones", PriceCents: 29900}, 2)
	state.AddToCart(catalog.Product{ID: 2, Name: "Speaker", PriceCents: 7900}, 1)
	sessions := &stubSessions{state: state}

	order, err := newTestService(t, sessions).PlaceOrder(context.Background(), "sess")
	if err != nil {
		t.Fatalf("PlaceOrder failed: %v", err)
	}

	if order.Reference == "" {
		t.Fatal("expected an order reference")
	}
	if order.ItemCount != 3 {
		t.Fatalf("expected 3 items, got %d", order.ItemCount)
	}
	if got := order.Subtotal.String(); got != "677" {
		t.Fatalf("expected subtotal 677, got %s", got)
	}
	if order.Currency != "USD" {
		t.Fatalf("expected USD, got %s", order.Currency)
	}
	if len(order.Lines) != 2 || order.Lines[0].LineTotal.String() != "598" {
		t.Fatalf("unexpected lines %+v", order.Lines)
	}
	if !sessions.cleared {
		t.Fatal("cart should be cleared after checkout")
	}
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	t.Parallel()

	sessions := &stubSessions{state: session.NewState()}

	_, err := newTestService(t, sessions).PlaceOrder(context.Background(), "sess")
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if sessions.cleared {
		t.Fatal("empty cart must not trigger a clear")
	}
}

func TestPlaceOrderPropagatesSessionErrors(t *testing.T) {
	t.Parallel()

	sessions := &stubSessions{
		state:  session.NewState(),
		getErr: pkgerrors.New(pkgerrors.CodeDependency, "redis down"),
	}

	_, err := newTestService(t, sessions).PlaceOrder(context.Background(), "sess")
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}
