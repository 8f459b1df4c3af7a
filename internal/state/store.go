package state

import (
	"sync"

	"github.com/five82/storefront/internal/api"
)

// PaginationMeta describes the page a list store currently holds.
type PaginationMeta struct {
	PageNumber    int
	PageSize      int
	TotalElements int64
	TotalPages    int
	LastPage      bool
}

// ListState is one domain's current page of items.
type ListState[T any] struct {
	Items      []T
	Pagination PaginationMeta
}

// ListStore holds the current page for one list domain. Replace is the only
// mutation: every fetch swaps in a full page, nothing is appended.
type ListStore[T any] struct {
	mu    sync.RWMutex
	state ListState[T]
}

// NewListStore returns an empty store.
func NewListStore[T any]() *ListStore[T] {
	return &ListStore[T]{}
}

// Replace atomically sets items and pagination.
func (s *ListStore[T]) Replace(items []T, meta PaginationMeta) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = ListState[T]{Items: cloneSlice(items), Pagination: meta}
}

// Snapshot returns a copy of the current state.
func (s *ListStore[T]) Snapshot() ListState[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ListState[T]{Items: cloneSlice(s.state.Items), Pagination: s.state.Pagination}
}

// PageMeta converts a server page into pagination metadata.
func PageMeta[T any](p api.Page[T]) PaginationMeta {
	return PaginationMeta{
		PageNumber:    p.PageNumber,
		PageSize:      p.PageSize,
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages,
		LastPage:      p.LastPage,
	}
}

// ReplacePage stores a server page wholesale.
func ReplacePage[T any](s *ListStore[T], p api.Page[T]) {
	s.Replace(p.Content, PageMeta(p))
}

// Lists holds one store per list domain.
type Lists struct {
	Products   *ListStore[api.Product]
	Categories *ListStore[api.Category]
	Orders     *ListStore[api.Order]
	Sellers    *ListStore[api.Seller]
}

// NewLists builds every domain store with empty defaults.
func NewLists() *Lists {
	return &Lists{
		Products:   NewListStore[api.Product](),
		Categories: NewListStore[api.Category](),
		Orders:     NewListStore[api.Order](),
		Sellers:    NewListStore[api.Seller](),
	}
}

func cloneSlice[T any](items []T) []T {
	if len(items) == 0 {
		return nil
	}
	dup := make([]T, len(items))
	copy(dup, items)
	return dup
}
