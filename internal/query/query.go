// Package query turns URL search parameters into the normalized query each
// list view fetches with, and builds the outbound request parameters.
package query

import (
	"net/url"
	"strconv"
	"strings"
)

// Domain names an independent list view with its own store.
type Domain string

const (
	DomainProducts   Domain = "products"
	DomainCategories Domain = "categories"
	DomainOrders     Domain = "orders"
	DomainSellers    Domain = "sellers"
)

// Domains lists every list domain in display order.
var Domains = []Domain{DomainProducts, DomainCategories, DomainOrders, DomainSellers}

// Filterable reports whether the domain supports sort and filter parameters.
func (d Domain) Filterable() bool {
	return d == DomainProducts
}

// URL parameter names.
const (
	ParamPage     = "page"
	ParamSort     = "sortby"
	ParamCategory = "category"
	ParamKeyword  = "keyword"
)

// Sort orders.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// SortByPrice is the only sort field the product views expose.
const SortByPrice = "price"

// NormalizedQuery is the canonical zero-based form of a view's URL state.
// Empty strings mean the parameter is absent.
type NormalizedQuery struct {
	PageNumber int
	SortBy     string
	SortOrder  string
	Category   string
	Keyword    string
}

// Parse derives the normalized query for domain from URL values. Malformed
// input never fails; it falls back to defaults.
func Parse(values url.Values, domain Domain) NormalizedQuery {
	q := NormalizedQuery{PageNumber: pageNumber(values.Get(ParamPage))}
	if !domain.Filterable() {
		return q
	}

	q.SortBy = SortByPrice
	q.SortOrder = SortAsc
	if order := values.Get(ParamSort); order == SortAsc || order == SortDesc {
		q.SortOrder = order
	}
	q.Category = values.Get(ParamCategory)
	q.Keyword = values.Get(ParamKeyword)
	return q
}

func pageNumber(raw string) int {
	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || page < 1 {
		page = 1
	}
	return page - 1
}

// PageOnly drops sort and filter fields, keeping the page.
func (q NormalizedQuery) PageOnly() NormalizedQuery {
	return NormalizedQuery{PageNumber: q.PageNumber}
}

// Values builds the outbound request parameters.
func (q NormalizedQuery) Values() url.Values {
	values := url.Values{}
	values.Set("pageNumber", strconv.Itoa(q.PageNumber))
	if q.SortBy != "" {
		values.Set("sortBy", q.SortBy)
	}
	if q.SortOrder != "" {
		values.Set("sortOrder", q.SortOrder)
	}
	if q.Category != "" {
		values.Set("category", q.Category)
	}
	if q.Keyword != "" {
		values.Set("keyword", q.Keyword)
	}
	return values
}

// Encode returns the outbound query string.
func (q NormalizedQuery) Encode() string {
	return q.Values().Encode()
}
