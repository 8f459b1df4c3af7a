package app

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/five82/storefront/internal/api"
	"github.com/five82/storefront/internal/fetch"
	"github.com/five82/storefront/internal/location"
	"github.com/five82/storefront/internal/query"
	"github.com/five82/storefront/internal/session"
)

// stubFetcher answers list calls at once. Methods it does not override
// panic through the nil embedded interface.
type stubFetcher struct {
	api.Fetcher

	mu       sync.Mutex
	products []query.NormalizedQuery
	orders   []bool
}

func (s *stubFetcher) FetchProducts(_ context.Context, q query.NormalizedQuery) (api.Page[api.Product], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = append(s.products, q)
	return api.Page[api.Product]{Content: []api.Product{{ProductID: 1, ProductName: "Lamp"}}, TotalPages: 1, LastPage: true}, nil
}

func (s *stubFetcher) FetchOrders(_ context.Context, _ query.NormalizedQuery, privileged bool) (api.Page[api.Order], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = append(s.orders, privileged)
	return api.Page[api.Order]{}, nil
}

func (s *stubFetcher) productCalls() []query.NormalizedQuery {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]query.NormalizedQuery(nil), s.products...)
}

func (s *stubFetcher) orderCalls() []bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]bool(nil), s.orders...)
}

func TestRefresh_IssuesCurrentView(t *testing.T) {
	stub := &stubFetcher{}
	o := fetch.New(stub, fetch.NewStores(), nil)
	loc := location.New("/admin/orders")

	if !refresh(context.Background(), o, loc, session.New(session.RoleAdmin)) {
		t.Fatalf("refresh = false, want a fetch for /admin/orders")
	}
	o.Wait()
	if got := stub.orderCalls(); len(got) != 1 || !got[0] {
		t.Fatalf("order calls = %v, want one privileged call", got)
	}
}

func TestRefresh_SkipsPathsWithoutAList(t *testing.T) {
	o := fetch.New(&stubFetcher{}, fetch.NewStores(), nil)
	if refresh(context.Background(), o, location.New("/checkout"), nil) {
		t.Fatalf("refresh = true for /checkout, want false")
	}
}

func TestStartRefresher_TicksUntilCancelled(t *testing.T) {
	stub := &stubFetcher{}
	o := fetch.New(stub, fetch.NewStores(), nil)
	loc := location.New("/products")

	ctx, cancel := context.WithCancel(context.Background())
	StartRefresher(ctx, o, loc, nil, 5*time.Millisecond)

	deadline := time.Now().Add(2 * time.Second)
	for len(stub.productCalls()) < 2 {
		if time.Now().After(deadline) {
			cancel()
			t.Fatalf("refresher issued %d fetches, want at least 2", len(stub.productCalls()))
		}
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	o.Wait()
}

func TestStartRefresher_DisabledForZeroInterval(t *testing.T) {
	stub := &stubFetcher{}
	o := fetch.New(stub, fetch.NewStores(), nil)
	StartRefresher(context.Background(), o, location.New("/products"), nil, 0)
	time.Sleep(20 * time.Millisecond)
	if n := len(stub.productCalls()); n != 0 {
		t.Fatalf("fetches = %d, want 0", n)
	}
}
