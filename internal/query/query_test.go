package query

import (
	"net/url"
	"reflect"
	"testing"
)

func TestParse_PageNumber(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"missing", "", 0},
		{"first page", "1", 0},
		{"third page", "3", 2},
		{"zero", "0", 0},
		{"negative", "-4", 0},
		{"not a number", "abc", 0},
		{"float", "2.5", 0},
		{"padded", " 4 ", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := url.Values{}
			if tt.raw != "" {
				values.Set(ParamPage, tt.raw)
			}
			for _, domain := range Domains {
				got := Parse(values, domain).PageNumber
				if got != tt.want {
					t.Fatalf("Parse(page=%q, %s).PageNumber = %d, want %d", tt.raw, domain, got, tt.want)
				}
			}
		})
	}
}

func TestParse_ProductFilters(t *testing.T) {
	values, err := url.ParseQuery("page=3&sortby=desc&category=Shoes")
	if err != nil {
		t.Fatalf("ParseQuery: %v", err)
	}

	got := Parse(values, DomainProducts)
	want := NormalizedQuery{PageNumber: 2, SortBy: "price", SortOrder: "desc", Category: "Shoes"}
	if got != want {
		t.Fatalf("Parse = %+v, want %+v", got, want)
	}
}

func TestParse_ProductDefaults(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  NormalizedQuery
	}{
		{"empty", "", NormalizedQuery{SortBy: "price", SortOrder: "asc"}},
		{"invalid sort", "sortby=sideways", NormalizedQuery{SortBy: "price", SortOrder: "asc"}},
		{"empty filters dropped", "category=&keyword=", NormalizedQuery{SortBy: "price", SortOrder: "asc"}},
		{"keyword", "keyword=lamp&page=2", NormalizedQuery{PageNumber: 1, SortBy: "price", SortOrder: "asc", Keyword: "lamp"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatalf("ParseQuery: %v", err)
			}
			if got := Parse(values, DomainProducts); got != tt.want {
				t.Fatalf("Parse(%q) = %+v, want %+v", tt.query, got, tt.want)
			}
		})
	}
}

func TestParse_NonFilterableDomainsIgnoreFilters(t *testing.T) {
	values, _ := url.ParseQuery("page=2&sortby=desc&category=Shoes&keyword=lamp")
	for _, domain := range []Domain{DomainCategories, DomainOrders, DomainSellers} {
		got := Parse(values, domain)
		if got != (NormalizedQuery{PageNumber: 1}) {
			t.Fatalf("Parse(%s) = %+v, want page only", domain, got)
		}
	}
}

func TestNormalizedQuery_Values(t *testing.T) {
	q := NormalizedQuery{PageNumber: 2, SortBy: "price", SortOrder: "desc", Category: "Shoes"}
	got := q.Values()
	want := url.Values{
		"pageNumber": {"2"},
		"sortBy":     {"price"},
		"sortOrder":  {"desc"},
		"category":   {"Shoes"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Values = %v, want %v", got, want)
	}

	if enc := (NormalizedQuery{PageNumber: 4}).Encode(); enc != "pageNumber=4" {
		t.Fatalf("Encode = %q, want pageNumber=4", enc)
	}
}

func TestNormalizedQuery_PageOnly(t *testing.T) {
	q := NormalizedQuery{PageNumber: 5, SortBy: "price", SortOrder: "asc", Keyword: "x"}
	if got := q.PageOnly(); got != (NormalizedQuery{PageNumber: 5}) {
		t.Fatalf("PageOnly = %+v, want page 5 only", got)
	}
}
