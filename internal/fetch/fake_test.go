package fetch

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/five82/storefront/internal/api"
	"github.com/five82/storefront/internal/query"
)

// listCall is one list request held open until the test releases it.
type listCall struct {
	domain     query.Domain
	query      query.NormalizedQuery
	privileged bool
	dashboard  bool
	release    chan listResult
}

type listResult struct {
	products   api.Page[api.Product]
	categories api.Page[api.Category]
	orders     api.Page[api.Order]
	sellers    api.Page[api.Seller]
	err        error
}

func (c *listCall) respond(r listResult) { c.release <- r }

// fakeFetcher gates list calls on the test and answers cart calls at once.
type fakeFetcher struct {
	calls chan *listCall

	mu         sync.Mutex
	cart       api.Cart
	cartErr    error
	added      []api.CartLine
	updates    []api.QuantityOp
	removed    [][2]int64
	pushed     [][]api.CartLine
	analytics  api.Analytics
	cartLoads  int
	cartWrites int
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{calls: make(chan *listCall, 32)}
}

var _ api.Fetcher = (*fakeFetcher)(nil)

func (f *fakeFetcher) list(ctx context.Context, c *listCall) (listResult, error) {
	c.release = make(chan listResult, 1)
	f.calls <- c
	select {
	case r := <-c.release:
		return r, r.err
	case <-ctx.Done():
		return listResult{}, ctx.Err()
	}
}

func (f *fakeFetcher) FetchProducts(ctx context.Context, q query.NormalizedQuery) (api.Page[api.Product], error) {
	r, err := f.list(ctx, &listCall{domain: query.DomainProducts, query: q})
	return r.products, err
}

func (f *fakeFetcher) FetchDashboardProducts(ctx context.Context, q query.NormalizedQuery, privileged bool) (api.Page[api.Product], error) {
	r, err := f.list(ctx, &listCall{domain: query.DomainProducts, query: q, privileged: privileged, dashboard: true})
	return r.products, err
}

func (f *fakeFetcher) FetchCategories(ctx context.Context, q query.NormalizedQuery) (api.Page[api.Category], error) {
	r, err := f.list(ctx, &listCall{domain: query.DomainCategories, query: q})
	return r.categories, err
}

func (f *fakeFetcher) FetchOrders(ctx context.Context, q query.NormalizedQuery, privileged bool) (api.Page[api.Order], error) {
	r, err := f.list(ctx, &listCall{domain: query.DomainOrders, query: q, privileged: privileged})
	return r.orders, err
}

func (f *fakeFetcher) FetchSellers(ctx context.Context, q query.NormalizedQuery) (api.Page[api.Seller], error) {
	r, err := f.list(ctx, &listCall{domain: query.DomainSellers, query: q})
	return r.sellers, err
}

func (f *fakeFetcher) FetchCart(context.Context) (api.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cartLoads++
	return f.cart, f.cartErr
}

func (f *fakeFetcher) AddToCart(_ context.Context, productID int64, quantity int) (api.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cartWrites++
	f.added = append(f.added, api.CartLine{ProductID: productID, Quantity: quantity})
	return f.cart, f.cartErr
}

func (f *fakeFetcher) UpdateCartQuantity(_ context.Context, _ int64, op api.QuantityOp) (api.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cartWrites++
	f.updates = append(f.updates, op)
	return f.cart, f.cartErr
}

func (f *fakeFetcher) RemoveFromCart(_ context.Context, cartID, productID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cartWrites++
	f.removed = append(f.removed, [2]int64{cartID, productID})
	return f.cartErr
}

func (f *fakeFetcher) CreateCart(_ context.Context, lines []api.CartLine) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cartWrites++
	f.pushed = append(f.pushed, lines)
	return f.cartErr
}

func (f *fakeFetcher) FetchAnalytics(context.Context) (api.Analytics, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.analytics, f.cartErr
}

// next returns the next gated list call or fails the test.
func (f *fakeFetcher) next(t *testing.T) *listCall {
	t.Helper()
	select {
	case c := <-f.calls:
		return c
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for a fetch")
		return nil
	}
}

// idle fails the test if a list call arrives within a short grace period.
func (f *fakeFetcher) idle(t *testing.T) {
	t.Helper()
	select {
	case c := <-f.calls:
		t.Fatalf("unexpected fetch for %s %+v", c.domain, c.query)
	case <-time.After(50 * time.Millisecond):
	}
}

func productPage(page int, names ...string) api.Page[api.Product] {
	p := api.Page[api.Product]{PageNumber: page, PageSize: 10, TotalElements: int64(len(names)), TotalPages: 1, LastPage: true}
	for i, n := range names {
		p.Content = append(p.Content, api.Product{ProductID: int64(i + 1), ProductName: n})
	}
	return p
}
