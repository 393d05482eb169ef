package session

import (
	"context"
	"time"

	"github.com/dreshoplabs/dreshop-backend/internal/catalog"
	pkgerrors "github.com/dreshoplabs/dreshop-backend/pkg/errors"
	"github.com/dreshoplabs/dreshop-backend/pkg/logger"
	"github.com/dreshoplabs/dreshop-backend/pkg/metrics"
)

// ServiceParams groups dependencies for the session state service.
type ServiceParams struct {
	Repo    *Repository
	Catalog catalog.Service
	Logger  *logger.Logger
	Metrics *metrics.StorefrontMetrics
	Now     func() time.Time
}

// Service exposes the per-session state operations. Every mutation hydrates
// the snapshot, applies the change, and writes the snapshot back. A failed
// write is logged and counted but never fails the request; the in-memory
// result is still returned.
type Service interface {
	Get(ctx context.Context, sessionID string) (*State, error)

	AddToCart(ctx context.Context, sessionID string, productID int64, quantity int) (*State, error)
	RemoveFromCart(ctx context.Context, sessionID string, productID int64) (*State, error)
	UpdateQuantity(ctx context.Context, sessionID string, productID int64, quantity int) (*State, error)
	ClearCart(ctx context.Context, sessionID string) (*State, error)

	AddToWishlist(ctx context.Context, sessionID string, productID int64) (*State, error)
	RemoveFromWishlist(ctx context.Context, sessionID string, productID int64) (*State, error)

	AddToComparison(ctx context.Context, sessionID string, productID int64) (*State, bool, error)
	RemoveFromComparison(ctx context.Context, sessionID string, productID int64) (*State, error)
	ClearComparison(ctx context.Context, sessionID string) (*State, error)

	RecordView(ctx context.Context, sessionID string, productID int64) (*State, error)
	ClearRecentlyViewed(ctx context.Context, sessionID string) (*State, error)
	RecordSearch(ctx context.Context, sessionID string, term string) (*State, error)
	ClearSearchHistory(ctx context.Context, sessionID string) (*State, error)

	UpdatePreferences(ctx context.Context, sessionID string, patch PreferencesPatch) (*State, error)

	Reset(ctx context.Context, sessionID string) error
}

type service struct {
	repo    *Repository
	catalog catalog.Service
	logg    *logger.Logger
	metrics *metrics.StorefrontMetrics
	now     func() time.Time
}

// NewService builds a session state service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session repo is required")
	}
	if params.Catalog == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog service is required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:    params.Repo,
		catalog: params.Catalog,
		logg:    params.Logger,
		metrics: params.Metrics,
		now:     now,
	}, nil
}

// Get hydrates the current state, returning a fresh default state for
// sessions with no stored snapshot.
func (s *service) Get(ctx context.Context, sessionID string) (*State, error) {
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	snap, found, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !found {
		return NewState(), nil
	}
	return snap.restore(), nil
}

func (s *service) AddToCart(ctx context.Context, sessionID string, productID int64, quantity int) (*State, error) {
	product, err := s.catalog.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, sessionID, "cart.add", func(state *State) {
		state.AddToCart(product, quantity)
	})
}

func (s *service) RemoveFromCart(ctx context.Context, sessionID string, productID int64) (*State, error) {
	return s.mutate(ctx, sessionID, "cart.remove", func(state *State) {
		state.RemoveFromCart(productID)
	})
}

func (s *service) UpdateQuantity(ctx context.Context, sessionID string, productID int64, quantity int) (*State, error) {
	return s.mutate(ctx, sessionID, "cart.update", func(state *State) {
		state.UpdateQuantity(productID, quantity)
	})
}

func (s *service) ClearCart(ctx context.Context, sessionID string) (*State, error) {
	return s.mutate(ctx, sessionID, "cart.clear", func(state *State) {
		state.ClearCart()
	})
}

func (s *service) AddToWishlist(ctx context.Context, sessionID string, productID int64) (*State, error) {
	product, err := s.catalog.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, sessionID, "wishlist.add", func(state *State) {
		state.AddToWishlist(product)
	})
}

func (s *service) RemoveFromWishlist(ctx context.Context, sessionID string, productID int64) (*State, error) {
	return s.mutate(ctx, sessionID, "wishlist.remove", func(state *State) {
		state.RemoveFromWishlist(productID)
	})
}

// AddToComparison reports whether the product made it into the list; a full
// list rejects the add without failing the request.
func (s *service) AddToComparison(ctx context.Context, sessionID string, productID int64) (*State, bool, error) {
	product, err := s.catalog.GetByID(ctx, productID)
	if err != nil {
		return nil, false, err
	}
	var added bool
	state, err := s.mutate(ctx, sessionID, "comparison.add", func(state *State) {
		added = state.AddToComparison(product)
	})
	if err != nil {
		return nil, false, err
	}
	return state, added, nil
}

func (s *service) RemoveFromComparison(ctx context.Context, sessionID string, productID int64) (*State, error) {
	return s.mutate(ctx, sessionID, "comparison.remove", func(state *State) {
		state.RemoveFromComparison(productID)
	})
}

func (s *service) ClearComparison(ctx context.Context, sessionID string) (*State, error) {
	return s.mutate(ctx, sessionID, "comparison.clear", func(state *State) {
		state.ClearComparison()
	})
}

func (s *service) RecordView(ctx context.Context, sessionID string, productID int64) (*State, error) {
	product, err := s.catalog.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, sessionID, "recent.record", func(state *State) {
		state.RecordView(product)
	})
}

func (s *service) ClearRecentlyViewed(ctx context.Context, sessionID string) (*State, error) {
	return s.mutate(ctx, sessionID, "recent.clear", func(state *State) {
		state.ClearRecentlyViewed()
	})
}

func (s *service) RecordSearch(ctx context.Context, sessionID string, term string) (*State, error) {
	return s.mutate(ctx, sessionID, "search.record", func(state *State) {
		state.RecordSearch(term, s.now().UTC())
	})
}

func (s *service) ClearSearchHistory(ctx context.Context, sessionID string) (*State, error) {
	return s.mutate(ctx, sessionID, "search.clear", func(state *State) {
		state.ClearSearchHistory()
	})
}

func (s *service) UpdatePreferences(ctx context.Context, sessionID string, patch PreferencesPatch) (*State, error) {
	return s.mutate(ctx, sessionID, "preferences.update", func(state *State) {
		state.UpdatePreferences(patch)
	})
}

// Reset drops the stored snapshot entirely.
func (s *service) Reset(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	return s.repo.Delete(ctx, sessionID)
}

func (s *service) mutate(ctx context.Context, sessionID, op string, apply func(*State)) (*State, error) {
	state, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	apply(state)
	if s.metrics != nil {
		s.metrics.IncStoreOp(op)
	}
	if err := s.repo.Save(ctx, sessionID, snapshotOf(state)); err != nil {
		if s.metrics != nil {
			s.metrics.IncSnapshotError()
		}
		s.logg.Error(s.logg.WithSessionID(ctx, sessionID), "persist session snapshot", err)
	}
	return state, nil
}
