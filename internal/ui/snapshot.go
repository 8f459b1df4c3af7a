package ui

import (
	"github.com/five82/storefront/internal/api"
	"github.com/five82/storefront/internal/fetch"
	"github.com/five82/storefront/internal/location"
	"github.com/five82/storefront/internal/query"
	"github.com/five82/storefront/internal/state"
)

// cartPath shows the cart; it has no list fetch of its own.
const cartPath = "/cart"

// snapshot is everything one frame renders, copied out of the stores.
type snapshot struct {
	location location.Snapshot
	view     fetch.View
	hasView  bool

	products   state.ListState[api.Product]
	categories state.ListState[api.Category]
	orders     state.ListState[api.Order]
	sellers    state.ListState[api.Seller]

	cart      state.CartState
	status    state.StatusState
	analytics state.Analytics
}

func takeSnapshot(stores fetch.Stores, loc *location.Location) snapshot {
	s := snapshot{location: loc.Current()}
	s.view, s.hasView = fetch.ViewFor(s.location.Path)
	if stores.Lists != nil {
		s.products = stores.Lists.Products.Snapshot()
		s.categories = stores.Lists.Categories.Snapshot()
		s.orders = stores.Lists.Orders.Snapshot()
		s.sellers = stores.Lists.Sellers.Snapshot()
	}
	if stores.Cart != nil {
		s.cart = stores.Cart.Snapshot()
	}
	if stores.Status != nil {
		s.status = stores.Status.Snapshot()
	}
	if stores.Analytics != nil {
		s.analytics = stores.Analytics.Snapshot()
	}
	return s
}

func (s snapshot) onCart() bool {
	return s.location.Path == cartPath
}

// filterable reports whether the current view offers sort and filters.
func (s snapshot) filterable() bool {
	return s.hasView && !s.view.Dashboard && s.view.Domain.Filterable()
}

// meta returns the pagination of the list the current view shows.
func (s snapshot) meta() state.PaginationMeta {
	if !s.hasView {
		return state.PaginationMeta{}
	}
	switch s.view.Domain {
	case query.DomainProducts:
		return s.products.Pagination
	case query.DomainCategories:
		return s.categories.Pagination
	case query.DomainOrders:
		return s.orders.Pagination
	case query.DomainSellers:
		return s.sellers.Pagination
	}
	return state.PaginationMeta{}
}

// rows returns how many selectable rows the current view has.
func (s snapshot) rows() int {
	if s.onCart() {
		return len(s.cart.Items)
	}
	if !s.hasView {
		return 0
	}
	switch s.view.Domain {
	case query.DomainProducts:
		return len(s.products.Items)
	case query.DomainCategories:
		return len(s.categories.Items)
	case query.DomainOrders:
		return len(s.orders.Items)
	case query.DomainSellers:
		return len(s.sellers.Items)
	}
	return 0
}
