package location

import (
	"net/url"
	"testing"
)

func TestLocation_NavigateNotifiesInOrder(t *testing.T) {
	loc := New("/products")

	var seen []string
	loc.Subscribe(func(s Snapshot) { seen = append(seen, "a:"+s.Values.Get("page")) })
	loc.Subscribe(func(s Snapshot) { seen = append(seen, "b:"+s.Values.Get("page")) })

	loc.SetParams(url.Values{"page": {"2"}})

	if len(seen) != 2 || seen[0] != "a:2" || seen[1] != "b:2" {
		t.Fatalf("listeners saw %v, want [a:2 b:2]", seen)
	}
	cur := loc.Current()
	if cur.Path != "/products" || cur.Navigations != 1 {
		t.Fatalf("Current = %+v, want path /products and 1 navigation", cur)
	}
}

func TestLocation_CancelSubscription(t *testing.T) {
	loc := New("/")
	calls := 0
	cancel := loc.Subscribe(func(Snapshot) { calls++ })

	loc.Navigate("/admin/orders", url.Values{})
	cancel()
	loc.Navigate("/admin/sellers", url.Values{})

	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
	if loc.Current().Path != "/admin/sellers" {
		t.Fatalf("Path = %q, want /admin/sellers", loc.Current().Path)
	}
}

func TestLocation_ValuesAreCopies(t *testing.T) {
	loc := New("/products")
	in := url.Values{"keyword": {"lamp"}}
	loc.SetParams(in)

	in.Set("keyword", "mutated")
	got := loc.Values()
	if got.Get("keyword") != "lamp" {
		t.Fatalf("keyword = %q, want lamp", got.Get("keyword"))
	}
	got.Set("keyword", "again")
	if loc.Values().Get("keyword") != "lamp" {
		t.Fatalf("Values should return a copy")
	}
}
