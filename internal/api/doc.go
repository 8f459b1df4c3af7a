// Package api provides an HTTP client for the storefront backend.
//
// # Overview
//
// The console never talks to the backend directly from its stores. Every
// request goes through Client, which builds the URL, sets headers, decodes
// JSON and turns failures into wrapped errors. The Fetcher interface is the
// seam the fetch orchestrator depends on, so tests can substitute fakes.
//
// # Endpoints
//
//   - GET    /api/public/products                         storefront listing (sort, filter, page)
//   - GET    /api/admin/products, /api/seller/products     dashboard listing by role
//   - GET    /api/public/categories                       categories
//   - GET    /api/admin/orders, /api/seller/orders         orders by role
//   - GET    /api/auth/sellers                            sellers
//   - GET    /api/carts/users/cart                        signed-in cart
//   - POST   /api/carts/products/{id}/quantity/{qty}      add to cart
//   - PUT    /api/cart/products/{id}/quantity/{add|delete} adjust quantity
//   - DELETE /api/carts/{cartId}/product/{id}             remove line
//   - POST   /api/cart/create                             push a local cart
//   - GET    /api/admin/app/analytics                     dashboard metrics
//
// Listing endpoints answer with Page[T]: content plus pageNumber, pageSize,
// totalElements, totalPages and lastPage.
//
// # Request Handling
//
// All requests use the caller's context, send Accept: application/json, a
// storefront/* User-Agent and a fresh X-Request-ID (UUID) so a request can be
// matched against backend logs. The http.Client carries the configured timeout.
//
// # Error Handling
//
//   - "execute request: ..." for network failures
//   - *StatusError for 4xx/5xx responses; the backend's {"message": ...} body
//     is kept in Message and UserMessage prefers it for display
//   - "decode response: ..." for malformed JSON
//
// Money fields are decimal.Decimal so totals reported by the server are kept
// exactly as sent.
//
// No retries happen here; a new query change or a manual retry issues the
// next request.
package api
