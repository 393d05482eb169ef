package controllers

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/dreshoplabs/dreshop-backend/internal/catalog"
	"github.com/dreshoplabs/dreshop-backend/internal/session"
	pkgerrors "github.com/dreshoplabs/dreshop-backend/pkg/errors"
	"github.com/dreshoplabs/dreshop-backend/pkg/logger"
	"github.com/dreshoplabs/dreshop-backend/pkg/pagination"
	pkgredis "github.com/dreshoplabs/dreshop-backend/pkg/redis"
	redislib "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

type memCatalog struct {
	products []catalog.Product
	byID     map[int64]catalog.Product
}

func newMemCatalog() *memCatalog {
	products := catalog.SeedProducts()
	byID := make(map[int64]catalog.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return &memCatalog{products: products, byID: byID}
}

func (m *memCatalog) Load(ctx context.Context) error { return nil }

func (m *memCatalog) Search(ctx context.Context, spec catalog.FilterSpec, params pagination.Params) (catalog.Page, error) {
	filtered := catalog.Apply(m.products, spec)
	params.Limit = pagination.NormalizeLimit(params.Limit)
	lo, hi := pagination.Window(len(filtered), params)
	return catalog.Page{Products: filtered[lo:hi], Total: len(filtered), Limit: params.Limit, Offset: params.Offset}, nil
}

func (m *memCatalog) Facets(ctx context.Context) (catalog.FacetSummary, error) {
	return catalog.Facets(m.products), nil
}

func (m *memCatalog) GetByID(ctx context.Context, id int64) (catalog.Product, error) {
	p, ok := m.byID[id]
	if !ok {
		return catalog.Product{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return p, nil
}

func quietLogger() *logger.Logger {
	return logger.New(logger.Options{Level: zerolog.ErrorLevel, Output: io.Discard})
}

func newSessionService(t *testing.T) session.Service {
	t.Helper()

	mr := miniredis.RunT(t)
	raw := redislib.NewClient(&redislib.Options{Addr: mr.Addr()})
	t.Cleanup(func() { raw.Close() })

	repo, err := session.NewRepository(pkgredis.NewWithClient(raw), time.Hour, quietLogger())
	if err != nil {
		t.Fatalf("NewRepository failed: %v", err)
	}
	svc, err := session.NewService(session.ServiceParams{
		Repo:    repo,
		Catalog: newMemCatalog(),
		Logger:  quietLogger(),
	})
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	return svc
}
