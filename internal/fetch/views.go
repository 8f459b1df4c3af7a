package fetch

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/five82/storefront/internal/location"
	"github.com/five82/storefront/internal/query"
)

// View binds a location path to the list it displays.
type View struct {
	Path   string
	Title  string
	Domain query.Domain
	// Dashboard views use the admin/seller product listing, which only
	// honours the page number.
	Dashboard bool
}

// Query derives the normalized query this view sends for values.
func (v View) Query(values url.Values) query.NormalizedQuery {
	q := query.Parse(values, v.Domain)
	if v.Dashboard {
		return q.PageOnly()
	}
	return q
}

// Views is the routing table, in display order.
var Views = []View{
	{Path: "/products", Title: "Products", Domain: query.DomainProducts},
	{Path: "/admin/products", Title: "Manage products", Domain: query.DomainProducts, Dashboard: true},
	{Path: "/admin/categories", Title: "Categories", Domain: query.DomainCategories},
	{Path: "/admin/orders", Title: "Orders", Domain: query.DomainOrders},
	{Path: "/admin/sellers", Title: "Sellers", Domain: query.DomainSellers},
}

// ViewFor resolves path to a view. The root path shows the storefront listing.
func ViewFor(path string) (View, bool) {
	if path == "/" || path == "" {
		path = "/products"
	}
	for _, v := range Views {
		if v.Path == path {
			return v, true
		}
	}
	return View{}, false
}

// RoleSource reports whether the signed-in user may use admin-wide endpoints.
type RoleSource interface {
	Privileged() bool
}

// RequestFor builds the fetch the view at snap needs. It reports false for
// paths that show no list.
func RequestFor(snap location.Snapshot, roles RoleSource) (Request, bool) {
	view, ok := ViewFor(snap.Path)
	if !ok {
		return Request{}, false
	}
	return Request{
		Domain:     view.Domain,
		Query:      view.Query(snap.Values),
		Privileged: roles != nil && roles.Privileged(),
		Dashboard:  view.Dashboard,
	}, true
}

// Watch issues a fetch for the current location and again whenever the
// path or its normalized query changes. A new fetch supersedes any still in
// flight for the same domain. The returned func stops watching.
func (o *Orchestrator) Watch(ctx context.Context, loc *location.Location, roles RoleSource) func() {
	var (
		mu   sync.Mutex
		last string
		seen bool
	)
	check := func(snap location.Snapshot) {
		req, ok := RequestFor(snap, roles)
		if !ok {
			return
		}
		key := fmt.Sprintf("%s|%t|%s", req.Domain, req.Dashboard, req.Query.Encode())

		mu.Lock()
		defer mu.Unlock()
		if seen && key == last {
			return
		}
		seen, last = true, key
		o.Go(ctx, req)
	}

	cancel := loc.Subscribe(check)
	check(loc.Current())
	return cancel
}
