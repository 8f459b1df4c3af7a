package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/five82/storefront/internal/query"
)

// Fetcher defines the backend operations the console depends on.
// *Client implements it; tests substitute fakes.
type Fetcher interface {
	FetchProducts(ctx context.Context, q query.NormalizedQuery) (Page[Product], error)
	FetchDashboardProducts(ctx context.Context, q query.NormalizedQuery, privileged bool) (Page[Product], error)
	FetchCategories(ctx context.Context, q query.NormalizedQuery) (Page[Category], error)
	FetchOrders(ctx context.Context, q query.NormalizedQuery, privileged bool) (Page[Order], error)
	FetchSellers(ctx context.Context, q query.NormalizedQuery) (Page[Seller], error)
	FetchCart(ctx context.Context) (Cart, error)
	AddToCart(ctx context.Context, productID int64, quantity int) (Cart, error)
	UpdateCartQuantity(ctx context.Context, productID int64, op QuantityOp) (Cart, error)
	RemoveFromCart(ctx context.Context, cartID, productID int64) error
	CreateCart(ctx context.Context, lines []CartLine) error
	FetchAnalytics(ctx context.Context) (Analytics, error)
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

// Client talks to the storefront HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultBaseURL   = "http://127.0.0.1:8080"
	defaultUserAgent = "storefront/0.1"
	defaultTimeout   = 10 * time.Second
	requestIDHeader  = "X-Request-ID"
)

// NewClient builds a Client for the API rooted at baseURL. The /api prefix
// is added to every request path.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: timeout},
		userAgent: defaultUserAgent,
	}, nil
}

// FetchProducts lists storefront products with sort and filters.
func (c *Client) FetchProducts(ctx context.Context, q query.NormalizedQuery) (Page[Product], error) {
	var page Page[Product]
	err := c.get(ctx, "/api/public/products", q.Values(), &page)
	return page, err
}

// FetchDashboardProducts lists products for the admin panel, or the
// caller's own products when not privileged.
func (c *Client) FetchDashboardProducts(ctx context.Context, q query.NormalizedQuery, privileged bool) (Page[Product], error) {
	path := "/api/seller/products"
	if privileged {
		path = "/api/admin/products"
	}
	var page Page[Product]
	err := c.get(ctx, path, q.Values(), &page)
	return page, err
}

// FetchCategories lists categories.
func (c *Client) FetchCategories(ctx context.Context, q query.NormalizedQuery) (Page[Category], error) {
	var page Page[Category]
	err := c.get(ctx, "/api/public/categories", q.Values(), &page)
	return page, err
}

// FetchOrders lists every order when privileged, otherwise the seller's orders.
func (c *Client) FetchOrders(ctx context.Context, q query.NormalizedQuery, privileged bool) (Page[Order], error) {
	path := "/api/seller/orders"
	if privileged {
		path = "/api/admin/orders"
	}
	var page Page[Order]
	err := c.get(ctx, path, q.Values(), &page)
	return page, err
}

// FetchSellers lists seller accounts.
func (c *Client) FetchSellers(ctx context.Context, q query.NormalizedQuery) (Page[Seller], error) {
	var page Page[Seller]
	err := c.get(ctx, "/api/auth/sellers", q.Values(), &page)
	return page, err
}

// FetchCart retrieves the signed-in user's cart.
func (c *Client) FetchCart(ctx context.Context) (Cart, error) {
	var cart Cart
	err := c.get(ctx, "/api/carts/users/cart", nil, &cart)
	return cart, err
}

// AddToCart adds quantity units of a product to the cart.
func (c *Client) AddToCart(ctx context.Context, productID int64, quantity int) (Cart, error) {
	if productID <= 0 {
		return Cart{}, errors.New("product id required")
	}
	if quantity <= 0 {
		return Cart{}, errors.New("quantity must be positive")
	}
	path := "/api/carts/products/" + strconv.FormatInt(productID, 10) + "/quantity/" + strconv.Itoa(quantity)
	var cart Cart
	err := c.do(ctx, http.MethodPost, &url.URL{Path: path}, nil, &cart)
	return cart, err
}

// UpdateCartQuantity increments or decrements a cart line by one.
func (c *Client) UpdateCartQuantity(ctx context.Context, productID int64, op QuantityOp) (Cart, error) {
	if productID <= 0 {
		return Cart{}, errors.New("product id required")
	}
	if op != QuantityAdd && op != QuantityDelete {
		return Cart{}, errors.Errorf("unknown quantity operation %q", op)
	}
	path := "/api/cart/products/" + strconv.FormatInt(productID, 10) + "/quantity/" + string(op)
	var cart Cart
	err := c.do(ctx, http.MethodPut, &url.URL{Path: path}, nil, &cart)
	return cart, err
}

// RemoveFromCart deletes a product line from the cart.
func (c *Client) RemoveFromCart(ctx context.Context, cartID, productID int64) error {
	if productID <= 0 {
		return errors.New("product id required")
	}
	path := "/api/carts/" + strconv.FormatInt(cartID, 10) + "/product/" + strconv.FormatInt(productID, 10)
	return c.do(ctx, http.MethodDelete, &url.URL{Path: path}, nil, nil)
}

// CreateCart replaces the server cart with lines, used to push a cart built
// before sign-in.
func (c *Client) CreateCart(ctx context.Context, lines []CartLine) error {
	if len(lines) == 0 {
		return errors.New("cart is empty")
	}
	return c.do(ctx, http.MethodPost, &url.URL{Path: "/api/cart/create"}, lines, nil)
}

// FetchAnalytics retrieves admin dashboard metrics.
func (c *Client) FetchAnalytics(ctx context.Context) (Analytics, error) {
	var out Analytics
	err := c.get(ctx, "/api/admin/app/analytics", nil, &out)
	return out, err
}

func (c *Client) get(ctx context.Context, path string, values url.Values, dest any) error {
	rel := &url.URL{Path: path}
	if len(values) > 0 {
		rel.RawQuery = values.Encode()
	}
	return c.do(ctx, http.MethodGet, rel, nil, dest)
}

func (c *Client) do(ctx context.Context, method string, rel *url.URL, body any, dest any) error {
	if c == nil {
		return errors.New("client is nil")
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encode request")
		}
		reader = bytes.NewReader(buf)
	}

	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return errors.Wrap(err, "create request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(requestIDHeader, uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "execute request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return &StatusError{Path: rel.Path, Code: resp.StatusCode, Message: readMessage(resp.Body)}
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return errors.Wrap(err, "decode response")
	}
	return nil
}

// readMessage extracts the backend's {"message": ...} error body when present.
func readMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 64<<10))
	if err != nil || len(data) == 0 {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(data, &payload) == nil {
		return strings.TrimSpace(payload.Message)
	}
	return ""
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, errors.Wrapf(err, "parse api base url %q", raw)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
