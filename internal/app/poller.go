package app

import (
	"context"
	"time"

	"github.com/five82/storefront/internal/fetch"
	"github.com/five82/storefront/internal/location"
)

// StartRefresher launches a goroutine that re-issues the current view's
// fetch at a fixed cadence. A non-positive interval disables it. It returns
// immediately.
func StartRefresher(ctx context.Context, o *fetch.Orchestrator, loc *location.Location, roles fetch.RoleSource, interval time.Duration) {
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				refresh(ctx, o, loc, roles)
			}
		}
	}()
}

// refresh issues the current view's fetch and reports whether there was one.
func refresh(ctx context.Context, o *fetch.Orchestrator, loc *location.Location, roles fetch.RoleSource) bool {
	req, ok := fetch.RequestFor(loc.Current(), roles)
	if !ok {
		return false
	}
	o.Go(ctx, req)
	return true
}
