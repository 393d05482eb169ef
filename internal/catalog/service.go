package catalog

import (
	"context"
	"errors"
	"sync"
	"time"

	pkgerrors "github.com/dreshoplabs/dreshop-backend/pkg/errors"
	"github.com/dreshoplabs/dreshop-backend/pkg/metrics"
	"github.com/dreshoplabs/dreshop-backend/pkg/pagination"
	"gorm.io/gorm"
)

// ServiceParams groups dependencies for the catalog service.
type ServiceParams struct {
	Repo    *Repository
	Metrics *metrics.StorefrontMetrics
}

// Page is one window of filtered catalog results.
type Page struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Limit    int       `json:"limit"`
	Offset   int       `json:"offset"`
}

// Service exposes read operations over the catalog. The product set is loaded
// once at boot and served from memory; filtering never touches the database.
type Service interface {
	Load(ctx context.Context) error
	Search(ctx context.Context, spec FilterSpec, params pagination.Params) (Page, error)
	Facets(ctx context.Context) (FacetSummary, error)
	GetByID(ctx context.Context, id int64) (Product, error)
}

type service struct {
	repo    *Repository
	metrics *metrics.StorefrontMetrics

	mu       sync.RWMutex
	products []Product
	byID     map[int64]Product
	facets   FacetSummary
	loaded   bool
}

// NewService builds a catalog service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog repo is required")
	}
	return &service{
		repo:    params.Repo,
		metrics: params.Metrics,
	}, nil
}

// Load reads the full product set from the repository and replaces the
// in-memory catalog. Safe to call again to refresh.
func (s *service) Load(ctx context.Context) error {
	products, err := s.repo.ListAll(ctx)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load catalog")
	}

	byID := make(map[int64]Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	s.mu.Lock()
	s.products = products
	s.byID = byID
	s.facets = Facets(products)
	s.loaded = true
	s.mu.Unlock()
	return nil
}

// Search applies the filter spec to the in-memory catalog and returns the
// requested page of the result.
func (s *service) Search(ctx context.Context, spec FilterSpec, params pagination.Params) (Page, error) {
	products, err := s.snapshot()
	if err != nil {
		return Page{}, err
	}

	start := time.Now()
	filtered := Apply(products, spec)
	if s.metrics != nil {
		s.metrics.ObserveFilterDuration(string(spec.Sort), time.Since(start))
	}

	params.Limit = pagination.NormalizeLimit(params.Limit)
	lo, hi := pagination.Window(len(filtered), params)
	return Page{
		Products: filtered[lo:hi],
		Total:    len(filtered),
		Limit:    params.Limit,
		Offset:   params.Offset,
	}, nil
}

// Facets returns the filterable surface of the loaded catalog.
func (s *service) Facets(ctx context.Context) (FacetSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return FacetSummary{}, pkgerrors.New(pkgerrors.CodeDependency, "catalog not loaded")
	}
	return s.facets, nil
}

// GetByID returns one product from the in-memory catalog, falling back to the
// repository when the cache has not been primed.
func (s *service) GetByID(ctx context.Context, id int64) (Product, error) {
	if id <= 0 {
		return Product{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	s.mu.RLock()
	if s.loaded {
		p, ok := s.byID[id]
		s.mu.RUnlock()
		if !ok {
			return Product{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return p, nil
	}
	s.mu.RUnlock()

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Product{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return Product{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return p, nil
}

func (s *service) snapshot() ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "catalog not loaded")
	}
	return s.products, nil
}
