package api

import (
	"github.com/shopspring/decimal"
)

// Page mirrors the paginated list payload every listing endpoint returns.
type Page[T any] struct {
	Content       []T   `json:"content"`
	PageNumber    int   `json:"pageNumber"`
	PageSize      int   `json:"pageSize"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	LastPage      bool  `json:"lastPage"`
}

// Product describes a catalog product. In cart payloads Quantity is the
// quantity in the cart, not stock.
type Product struct {
	ProductID    int64           `json:"productId"`
	ProductName  string          `json:"productName"`
	Image        string          `json:"image"`
	Description  string          `json:"description"`
	Quantity     int             `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
	Discount     decimal.Decimal `json:"discount"`
	SpecialPrice decimal.Decimal `json:"specialPrice"`
}

// Category is a product category.
type Category struct {
	CategoryID   int64  `json:"categoryId"`
	CategoryName string `json:"categoryName"`
}

// OrderItem is one line of an order.
type OrderItem struct {
	OrderItemID  int64           `json:"orderItemId"`
	Product      Product         `json:"product"`
	Quantity     int             `json:"quantity"`
	Discount     decimal.Decimal `json:"discount"`
	OrderedPrice decimal.Decimal `json:"orderedProductPrice"`
}

// Order is an order as listed on the admin and seller dashboards.
type Order struct {
	OrderID     int64           `json:"orderId"`
	Email       string          `json:"email"`
	OrderItems  []OrderItem     `json:"orderItems"`
	OrderDate   string          `json:"orderDate"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	OrderStatus string          `json:"orderStatus"`
	AddressID   int64           `json:"addressId"`
}

// Seller is a user holding the seller role.
type Seller struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Cart mirrors the server cart payload.
type Cart struct {
	CartID     int64           `json:"cartId"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	Products   []Product       `json:"products"`
}

// Analytics holds the admin dashboard metrics. The server sends numbers as
// strings.
type Analytics struct {
	ProductCount int64           `json:"productCount,string"`
	TotalOrders  int64           `json:"totalOrders,string"`
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
}

// CartLine is one entry of a cart push.
type CartLine struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// QuantityOp adjusts a cart line by one unit.
type QuantityOp string

const (
	QuantityAdd    QuantityOp = "add"
	QuantityDelete QuantityOp = "delete"
)
