package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dreshoplabs/dreshop-backend/api/middleware"
	"github.com/dreshoplabs/dreshop-backend/api/responses"
	"github.com/dreshoplabs/dreshop-backend/api/validators"
	"github.com/dreshoplabs/dreshop-backend/internal/session"
	pkgerrors "github.com/dreshoplabs/dreshop-backend/pkg/errors"
	"github.com/dreshoplabs/dreshop-backend/pkg/logger"
)

type addCartItemPayload struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"omitempty,gte=1,lte=999"`
}

type updateCartItemPayload struct {
	Quantity int `json:"quantity" validate:"gte=0,lte=999"`
}

type cartView struct {
	Items         []session.CartItem `json:"items"`
	ItemCount     int                `json:"item_count"`
	SubtotalCents int64              `json:"subtotal_cents"`
	Subtotal      string             `json:"subtotal"`
}

func cartViewOf(state *session.State) cartView {
	return cartView{
		Items:         state.Cart,
		ItemCount:     state.CartItemCount(),
		SubtotalCents: state.CartSubtotalCents(),
		Subtotal:      state.CartSubtotal().StringFixed(2),
	}
}

// CartGet returns the session's cart with derived totals.
func CartGet(sessions session.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		state, err := sessions.Get(ctx, middleware.SessionIDFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, cartViewOf(state))
	}
}

// CartAddItem adds a product to the cart, merging quantities for repeats.
func CartAddItem(sessions session.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var payload addCartItemPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		state, err := sessions.AddToCart(ctx, middleware.SessionIDFromContext(ctx), payload.ProductID, payload.Quantity)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, cartViewOf(state))
	}
}

// CartUpdateItem sets a line's quantity; zero removes the line.
func CartUpdateItem(sessions session.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		productID, err := productIDParam(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload updateCartItemPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		state, err := sessions.UpdateQuantity(ctx, middleware.SessionIDFromContext(ctx), productID, payload.Quantity)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, cartViewOf(state))
	}
}

// CartRemoveItem drops a line from the cart.
func CartRemoveItem(sessions session.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		productID, err := productIDParam(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		state, err := sessions.RemoveFromCart(ctx, middleware.SessionIDFromContext(ctx), productID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, cartViewOf(state))
	}
}

// CartClear empties the cart.
func CartClear(sessions session.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		state, err := sessions.ClearCart(ctx, middleware.SessionIDFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, cartViewOf(state))
	}
}

func productIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil || id <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "product id must be a positive integer")
	}
	return id, nil
}
