package controllers

import (
	"net/http"

	"github.com/dreshoplabs/dreshop-backend/api/middleware"
	"github.com/dreshoplabs/dreshop-backend/api/responses"
	"github.com/dreshoplabs/dreshop-backend/internal/checkout"
	pkgerrors "github.com/dreshoplabs/dreshop-backend/pkg/errors"
	"github.com/dreshoplabs/dreshop-backend/pkg/logger"
)

// Checkout totals the session's cart, clears it, and returns the order
// confirmation.
func Checkout(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		order, err := svc.PlaceOrder(ctx, middleware.SessionIDFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}
