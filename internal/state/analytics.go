package state

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/five82/storefront/internal/api"
)

// Analytics holds the admin dashboard metrics.
type Analytics struct {
	ProductCount int64
	TotalOrders  int64
	TotalRevenue decimal.Decimal
	Loaded       bool
}

// AnalyticsStore keeps the latest dashboard metrics.
type AnalyticsStore struct {
	mu    sync.RWMutex
	state Analytics
}

// Replace stores a fresh metrics payload.
func (s *AnalyticsStore) Replace(a api.Analytics) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Analytics{
		ProductCount: a.ProductCount,
		TotalOrders:  a.TotalOrders,
		TotalRevenue: a.TotalRevenue,
		Loaded:       true,
	}
}

// Snapshot returns the current metrics.
func (s *AnalyticsStore) Snapshot() Analytics {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}
