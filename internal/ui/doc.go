// Package ui is the storefront console's terminal interface, built on
// Bubble Tea.
//
// The UI never owns list parameters. Paging, sorting, category and clear
// keys rewrite the location's search parameters; the fetch watcher reacts to
// those navigations. Search edits go to the keyword buffer, which commits
// them to the location after the quiet window. On every tick the model
// copies fresh snapshots out of the stores and renders them.
//
// # Views
//
//   - 1 Products: storefront listing with sort, category and keyword filters
//   - 2 Manage products: dashboard listing, page only
//   - 3 Categories, 4 Orders, 5 Sellers: admin lists
//   - 6 Cart: local cart with quantity, remove, upload and checkout keys
//   - L: tail of the console's own log file
//
// Admin views are gated by role: sellers reach products and orders,
// admins reach everything.
package ui
