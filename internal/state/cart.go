package state

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/five82/storefront/internal/api"
)

// Merge-invariant violations. Upsert rejects the item and leaves the cart unchanged.
var (
	ErrMissingProductID = errors.New("cart item has no product id")
	ErrInvalidQuantity  = errors.New("cart item quantity must be positive")
)

// CartItem is one cart line, keyed by ProductID.
type CartItem struct {
	ProductID   int64
	Quantity    int
	UnitPrice   decimal.Decimal
	ProductName string
	Image       string
	Description string
	Discount    decimal.Decimal
}

// LineTotal is UnitPrice × Quantity.
func (c CartItem) LineTotal() decimal.Decimal {
	return c.UnitPrice.Mul(decimal.NewFromInt(int64(c.Quantity)))
}

// CartItemFromProduct builds a cart line from a product payload. The unit
// price is the special (discounted) price.
func CartItemFromProduct(p api.Product, quantity int) CartItem {
	return CartItem{
		ProductID:   p.ProductID,
		Quantity:    quantity,
		UnitPrice:   p.SpecialPrice,
		ProductName: p.ProductName,
		Image:       p.Image,
		Description: p.Description,
		Discount:    p.Discount,
	}
}

// CartState is the local cart. TotalPrice is whatever the server last
// reported; it is never derived from Items.
type CartState struct {
	Items      []CartItem
	TotalPrice decimal.Decimal
	CartID     *int64
}

// CartStore applies upsert/remove/replace semantics to the cart.
type CartStore struct {
	mu    sync.RWMutex
	state CartState
}

// NewCartStore returns an empty cart with a zero total and no cart id.
func NewCartStore() *CartStore {
	return &CartStore{state: CartState{TotalPrice: decimal.Zero}}
}

// Upsert replaces the line with the same ProductID wholesale, keeping its
// position, or appends item at the end.
func (s *CartStore) Upsert(item CartItem) error {
	if item.ProductID <= 0 {
		return ErrMissingProductID
	}
	if item.Quantity <= 0 {
		return errors.Wrapf(ErrInvalidQuantity, "product %d quantity %d", item.ProductID, item.Quantity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items := cloneSlice(s.state.Items)
	for i := range items {
		if items[i].ProductID == item.ProductID {
			items[i] = item
			s.state.Items = items
			return nil
		}
	}
	s.state.Items = append(items, item)
	return nil
}

// RemoveAll replaces the whole collection with items, typically the current
// cart minus one line. The total and cart id are left alone.
func (s *CartStore) RemoveAll(items []CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Items = cloneSlice(items)
}

// SyncFromServer replaces items, total and cart id with the server's values.
func (s *CartStore) SyncFromServer(items []CartItem, total decimal.Decimal, cartID *int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = CartState{Items: cloneSlice(items), TotalPrice: total, CartID: cloneID(cartID)}
}

// SyncCart applies a server cart payload.
func (s *CartStore) SyncCart(cart api.Cart) {
	items := make([]CartItem, 0, len(cart.Products))
	for _, p := range cart.Products {
		items = append(items, CartItemFromProduct(p, p.Quantity))
	}
	id := cart.CartID
	var cartID *int64
	if id != 0 {
		cartID = &id
	}
	s.SyncFromServer(items, cart.TotalPrice, cartID)
}

// Clear empties the cart after checkout.
func (s *CartStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = CartState{TotalPrice: decimal.Zero}
}

// Snapshot returns a copy of the cart.
func (s *CartStore) Snapshot() CartState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return CartState{
		Items:      cloneSlice(s.state.Items),
		TotalPrice: s.state.TotalPrice,
		CartID:     cloneID(s.state.CartID),
	}
}

// Quantity returns the quantity held for productID, zero when absent.
func (s *CartStore) Quantity(productID int64) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, item := range s.state.Items {
		if item.ProductID == productID {
			return item.Quantity
		}
	}
	return 0
}

// LocalTotal sums the visible lines. Display only: it may disagree with
// TotalPrice, which stays authoritative.
func (s *CartStore) LocalTotal() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := decimal.Zero
	for _, item := range s.state.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}

func cloneID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
