// Package state provides the console's process-lifetime state containers.
//
// # Overview
//
// Every container is built once at startup with explicit defaults and is
// mutated only through its own small operation set. Readers take snapshots;
// nothing hands out references to internal slices.
//
//   - ListStore[T]: one per list domain (products, categories, orders,
//     sellers). Replace swaps in a whole page; there is no append.
//   - CartStore: upsert-by-product, wholesale remove, server sync and clear.
//   - StatusTracker: the three-tier loading/error state machine.
//   - AnalyticsStore: admin dashboard metrics.
//
// # Concurrency Model
//
// Each container guards itself with a sync.RWMutex. Writes hold the lock for
// the copy only, never across network I/O. Cross-container reads (for
// example cart plus status for one screen) just take two snapshots; no
// coordination lock spans containers.
//
// # Cart Totals
//
// CartState.TotalPrice is only ever written by SyncFromServer (and reset by
// Clear). Local edits never recompute it, so pricing rules applied on the
// server cannot drift from what the console shows. LocalTotal exists for
// comparison display.
//
// # Status Tiers
//
// ReduceStatus is a pure function over StatusState. Its reset policy is
// asymmetric on purpose: a global success re-arms every tier, a global
// failure stops every spinner but keeps the category error, and category
// transitions never touch the global tier.
//
// # Testing Considerations
//
// All constructors return ready-to-use values and AnalyticsStore is usable as
// a zero value. ReduceStatus can be tested without a tracker.
package state
