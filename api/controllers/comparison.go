package controllers

import (
	"net/http"

	"github.com/dreshoplabs/dreshop-backend/api/middleware"
	"github.com/dreshoplabs/dreshop-backend/api/responses"
	"github.com/dreshoplabs/dreshop-backend/api/validators"
	"github.com/dreshoplabs/dreshop-backend/internal/session"
	"github.com/dreshoplabs/dreshop-backend/pkg/logger"
)

type addComparisonItemPayload struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
}

// ComparisonGet returns the products queued for comparison.
func ComparisonGet(sessions session.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		state, err := sessions.Get(ctx, middleware.SessionIDFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"comparison_list": state.ComparisonList,
			"limit":           session.MaxComparisonItems,
		})
	}
}

// ComparisonAddItem queues a product for comparison. At the cap the add is
// rejected without an error; "added" in the response tells the client.
func ComparisonAddItem(sessions session.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var payload addComparisonItemPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		state, added, err := sessions.AddToComparison(ctx, middleware.SessionIDFromContext(ctx), payload.ProductID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"comparison_list": state.ComparisonList,
			"added":           added,
			"limit":           session.MaxComparisonItems,
		})
	}
}

// ComparisonRemoveItem drops a product from the comparison queue.
func ComparisonRemoveItem(sessions session.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		productID, err := productIDParam(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		state, err := sessions.RemoveFromComparison(ctx, middleware.SessionIDFromContext(ctx), productID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"comparison_list": state.ComparisonList,
			"limit":           session.MaxComparisonItems,
		})
	}
}

// ComparisonClear empties the comparison queue.
func ComparisonClear(sessions session.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		state, err := sessions.ClearComparison(ctx, middleware.SessionIDFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"comparison_list": state.ComparisonList,
			"limit":           session.MaxComparisonItems,
		})
	}
}
