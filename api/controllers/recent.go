package controllers

import (
	"net/http"

	"github.com/dreshoplabs/dreshop-backend/api/middleware"
	"github.com/dreshoplabs/dreshop-backend/api/responses"
	"github.com/dreshoplabs/dreshop-backend/api/validators"
	"github.com/dreshoplabs/dreshop-backend/internal/session"
	"github.com/dreshoplabs/dreshop-backend/pkg/logger"
)

type recordViewPayload struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
}

// RecentlyViewedGet returns the session's viewing history, newest first.
func RecentlyViewedGet(sessions session.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		state, err := sessions.Get(ctx, middleware.SessionIDFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"recently_viewed": state.RecentlyViewed})
	}
}

// RecentlyViewedRecord notes a product view, promoting repeats to the front.
func RecentlyViewedRecord(sessions session.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var payload recordViewPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		state, err := sessions.RecordView(ctx, middleware.SessionIDFromContext(ctx), payload.ProductID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"recently_viewed": state.RecentlyViewed})
	}
}

// RecentlyViewedClear empties the viewing history, leaving the rest of the
// session state alone.
func RecentlyViewedClear(sessions session.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		state, err := sessions.ClearRecentlyViewed(ctx, middleware.SessionIDFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"recently_viewed": state.RecentlyViewed})
	}
}
