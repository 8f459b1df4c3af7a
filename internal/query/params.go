package query

import (
	"net/url"
	"strconv"
)

// Clone copies values so callers can edit without touching the source.
func Clone(values url.Values) url.Values {
	out := make(url.Values, len(values))
	for k, v := range values {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// ToggleSort flips sortby between asc and desc. A missing or invalid value
// counts as asc.
func ToggleSort(values url.Values) url.Values {
	out := Clone(values)
	if out.Get(ParamSort) == SortDesc {
		out.Set(ParamSort, SortAsc)
	} else {
		out.Set(ParamSort, SortDesc)
	}
	return out
}

// WithCategory selects a category filter; "all" or empty removes it.
func WithCategory(values url.Values, category string) url.Values {
	out := Clone(values)
	if category == "" || category == "all" {
		out.Del(ParamCategory)
	} else {
		out.Set(ParamCategory, category)
	}
	return out
}

// WithKeyword sets the keyword filter; empty removes it.
func WithKeyword(values url.Values, keyword string) url.Values {
	out := Clone(values)
	if keyword == "" {
		out.Del(ParamKeyword)
	} else {
		out.Set(ParamKeyword, keyword)
	}
	return out
}

// WithPage sets the one-based page parameter. Pages below 1 become 1.
func WithPage(values url.Values, page int) url.Values {
	out := Clone(values)
	if page < 1 {
		page = 1
	}
	out.Set(ParamPage, strconv.Itoa(page))
	return out
}

// ClearFilters drops every parameter.
func ClearFilters() url.Values {
	return url.Values{}
}
