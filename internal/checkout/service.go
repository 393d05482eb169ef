package checkout

import (
	"context"
	"time"

	"github.com/dreshoplabs/dreshop-backend/internal/session"
	pkgerrors "github.com/dreshoplabs/dreshop-backend/pkg/errors"
	"github.com/dreshoplabs/dreshop-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderLine is one priced cart line captured at checkout time.
type OrderLine struct {
	ProductID  int64           `json:"product_id"`
	Name       string          `json:"name"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Quantity   int             `json:"quantity"`
	LineTotal  decimal.Decimal `json:"line_total"`
	PriceCents int64           `json:"price_cents"`
}

// Order is the confirmation returned by the simulated checkout.
type Order struct {
	Reference string          `json:"reference"`
	Lines     []OrderLine     `json:"lines"`
	ItemCount int             `json:"item_count"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Currency  string          `json:"currency"`
	PlacedAt  time.Time       `json:"placed_at"`
}

// ServiceParams groups dependencies for the checkout service.
type ServiceParams struct {
	Sessions session.Service
	Logger   *logger.Logger
	Now      func() time.Time
}

// Service runs the simulated checkout: it totals a non-empty cart, empties
// it, and hands back an order reference. There is no payment step.
type Service interface {
	PlaceOrder(ctx context.Context, sessionID string) (Order, error)
}

type service struct {
	sessions session.Service
	logg     *logger.Logger
	now      func() time.Time
}

// NewService builds a checkout service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Sessions == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session service is required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{sessions: params.Sessions, logg: params.Logger, now: now}, nil
}

// PlaceOrder totals the session's cart and clears it. An empty cart is a
// validation error; nothing is cleared in that case.
func (s *service) PlaceOrder(ctx context.Context, sessionID string) (Order, error) {
	state, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return Order{}, err
	}
	if len(state.Cart) == 0 {
		return Order{}, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	lines := make([]OrderLine, 0, len(state.Cart))
	subtotal := decimal.Zero
	for _, item := range state.Cart {
		unit := decimal.NewFromInt(item.Product.PriceCents).Shift(-2)
		lineTotal := unit.Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(lineTotal)
		lines = append(lines, OrderLine{
			ProductID:  item.Product.ID,
			Name:       item.Product.Name,
			UnitPrice:  unit,
			Quantity:   item.Quantity,
			LineTotal:  lineTotal,
			PriceCents: item.Product.PriceCents,
		})
	}

	order := Order{
		Reference: uuid.NewString(),
		Lines:     lines,
		ItemCount: state.CartItemCount(),
		Subtotal:  subtotal,
		Currency:  state.Preferences.Currency,
		PlacedAt:  s.now().UTC(),
	}

	if _, err := s.sessions.ClearCart(ctx, sessionID); err != nil {
		return Order{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart after checkout")
	}

	s.logg.Info(s.logg.WithField(ctx, "order_reference", order.Reference), "order placed")
	return order, nil
}
