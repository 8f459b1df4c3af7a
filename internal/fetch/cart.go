package fetch

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/five82/storefront/internal/api"
	"github.com/five82/storefront/internal/state"
)

// ErrOutOfStock is returned when a product cannot cover the requested quantity.
var ErrOutOfStock = errors.New("out of stock")

// LoadCart replaces the local cart with the server's.
func (o *Orchestrator) LoadCart(ctx context.Context) error {
	o.stores.Status.Dispatch(state.StatusAction{Kind: state.FetchStarted})
	cart, err := o.client.FetchCart(ctx)
	if err != nil {
		return o.globalFailure(err, "load cart")
	}
	o.stores.Cart.SyncCart(cart)
	o.stores.Status.Dispatch(state.StatusAction{Kind: state.Succeeded})
	o.log.WithFields(logrus.Fields{"lines": len(cart.Products), "total": cart.TotalPrice.String()}).Debug("cart loaded")
	return nil
}

// AddToCart adds quantity units of p to the server cart. The stock check
// and merge invariants run before any request is sent.
func (o *Orchestrator) AddToCart(ctx context.Context, p api.Product, quantity int) error {
	item := state.CartItemFromProduct(p, quantity)
	if item.ProductID <= 0 {
		return state.ErrMissingProductID
	}
	if quantity <= 0 {
		return state.ErrInvalidQuantity
	}
	if p.Quantity < quantity {
		return errors.Wrapf(ErrOutOfStock, "%s", p.ProductName)
	}

	o.stores.Status.Dispatch(state.StatusAction{Kind: state.ButtonStarted})
	cart, err := o.client.AddToCart(ctx, p.ProductID, quantity)
	if err != nil {
		return o.globalFailure(err, "add to cart")
	}
	o.stores.Cart.SyncCart(cart)
	if o.stores.Cart.Quantity(p.ProductID) == 0 {
		if err := o.stores.Cart.Upsert(item); err != nil {
			o.stores.Status.Dispatch(state.StatusAction{Kind: state.ButtonFinished})
			return err
		}
	}
	o.stores.Status.Dispatch(state.StatusAction{Kind: state.ButtonFinished})
	return nil
}

// ChangeQuantity moves a cart line up or down by one unit. Decreasing a
// line that holds a single unit is a no-op; RemoveFromCart drops lines.
func (o *Orchestrator) ChangeQuantity(ctx context.Context, productID int64, increase bool) error {
	if productID <= 0 {
		return state.ErrMissingProductID
	}
	op := api.QuantityAdd
	if !increase {
		if o.stores.Cart.Quantity(productID) <= 1 {
			return nil
		}
		op = api.QuantityDelete
	}

	o.stores.Status.Dispatch(state.StatusAction{Kind: state.ButtonStarted})
	cart, err := o.client.UpdateCartQuantity(ctx, productID, op)
	if err != nil {
		return o.globalFailure(err, "update cart quantity")
	}
	o.stores.Cart.SyncCart(cart)
	o.stores.Status.Dispatch(state.StatusAction{Kind: state.ButtonFinished})
	return nil
}

// RemoveFromCart drops every line for productID locally, then deletes it on
// the server and resynchronizes. A cart that was never synced has no server
// side to update.
func (o *Orchestrator) RemoveFromCart(ctx context.Context, productID int64) error {
	snap := o.stores.Cart.Snapshot()
	remaining := make([]state.CartItem, 0, len(snap.Items))
	for _, it := range snap.Items {
		if it.ProductID != productID {
			remaining = append(remaining, it)
		}
	}
	o.stores.Cart.RemoveAll(remaining)

	if snap.CartID == nil {
		return nil
	}
	if err := o.client.RemoveFromCart(ctx, *snap.CartID, productID); err != nil {
		return o.globalFailure(err, "remove from cart")
	}
	return o.LoadCart(ctx)
}

// PushCart uploads the local cart lines and then loads the server's view of
// the result.
func (o *Orchestrator) PushCart(ctx context.Context) error {
	snap := o.stores.Cart.Snapshot()
	lines := make([]api.CartLine, 0, len(snap.Items))
	for _, it := range snap.Items {
		lines = append(lines, api.CartLine{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	o.stores.Status.Dispatch(state.StatusAction{Kind: state.FetchStarted})
	if err := o.client.CreateCart(ctx, lines); err != nil {
		return o.globalFailure(err, "push cart")
	}
	return o.LoadCart(ctx)
}

// CompleteCheckout empties the local cart once an order has been placed.
func (o *Orchestrator) CompleteCheckout() {
	o.stores.Cart.Clear()
	o.log.Info("checkout completed, cart cleared")
}

// LoadAnalytics refreshes the dashboard counters.
func (o *Orchestrator) LoadAnalytics(ctx context.Context) error {
	o.stores.Status.Dispatch(state.StatusAction{Kind: state.FetchStarted})
	a, err := o.client.FetchAnalytics(ctx)
	if err != nil {
		return o.globalFailure(err, "load analytics")
	}
	o.stores.Analytics.Replace(a)
	o.stores.Status.Dispatch(state.StatusAction{Kind: state.Succeeded})
	return nil
}

func (o *Orchestrator) globalFailure(err error, op string) error {
	o.log.WithError(err).WithField("op", op).Warn("request failed")
	o.stores.Status.Dispatch(state.StatusAction{Kind: state.Failed, Message: api.UserMessage(err)})
	return errors.Wrap(err, op)
}
