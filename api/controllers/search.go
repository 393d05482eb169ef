package controllers

import (
	"net/http"

	"github.com/dreshoplabs/dreshop-backend/api/middleware"
	"github.com/dreshoplabs/dreshop-backend/api/responses"
	"github.com/dreshoplabs/dreshop-backend/api/validators"
	"github.com/dreshoplabs/dreshop-backend/internal/catalog"
	"github.com/dreshoplabs/dreshop-backend/internal/session"
	pkgerrors "github.com/dreshoplabs/dreshop-backend/pkg/errors"
	"github.com/dreshoplabs/dreshop-backend/pkg/logger"
)

// Search runs a catalog query and, when the query text is non-empty, records
// it in the session's search history.
func Search(catalogSvc catalog.Service, sessions session.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if catalogSvc == nil || sessions == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "search unavailable"))
			return
		}

		spec, err := validators.ParseFilterSpec(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		page, err := catalogSvc.Search(ctx, spec, params)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if spec.Query != "" {
			sessionID := middleware.SessionIDFromContext(ctx)
			if _, err := sessions.RecordSearch(ctx, sessionID, spec.Query); err != nil {
				logg.Warn(ctx, "failed to record search term")
			}
		}
		responses.WriteSuccess(w, page)
	}
}

// SearchHistory returns the session's remembered search terms, newest first.
func SearchHistory(sessions session.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		state, err := sessions.Get(ctx, middleware.SessionIDFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"search_history": state.SearchHistory})
	}
}

// ClearSearchHistory forgets the session's search terms.
func ClearSearchHistory(sessions session.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		state, err := sessions.ClearSearchHistory(ctx, middleware.SessionIDFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"search_history": state.SearchHistory})
	}
}
