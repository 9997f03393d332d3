// Package listquery turns pagination, filter and sort parameters into paginated
// result envelopes over a document collection.
package listquery

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

const (
	// DefaultPage is used when no valid page is supplied.
	DefaultPage = 1
	// DefaultLimit is used when no valid limit is supplied.
	DefaultLimit = 10

	// OrderAsc sorts ascending.
	OrderAsc = "asc"
	// OrderDesc sorts descending.
	OrderDesc = "desc"
)

// Params is the typed list request descriptor.
type Params struct {
	Page           int
	Limit          int
	SortBy         string
	Order          string
	FilterBy       string
	FilterTerm     string
	IncludeDeleted bool
}

var fieldPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)

// ValidField reports whether name can be used as a filter or sort field.
func ValidField(name string) bool {
	return fieldPattern.MatchString(name)
}

// ParseParams coerces query-string values into Params. Unparseable numbers and
// booleans fall back to their defaults.
func ParseParams(values url.Values) Params {
	p := Params{
		SortBy:     strings.TrimSpace(values.Get("sortBy")),
		Order:      strings.ToLower(strings.TrimSpace(values.Get("order"))),
		FilterBy:   strings.TrimSpace(values.Get("filterBy")),
		FilterTerm: values.Get("filterTerm"),
	}
	if page, err := strconv.Atoi(values.Get("page")); err == nil {
		p.Page = page
	}
	if limit, err := strconv.Atoi(values.Get("limit")); err == nil {
		p.Limit = limit
	}
	if include, err := strconv.ParseBool(values.Get("includeDeleted")); err == nil {
		p.IncludeDeleted = include
	}
	return p.Normalize()
}

// Normalize replaces non-positive page and limit with their defaults and
// canonicalises the sort order. Larger limits are honoured as given.
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Order != OrderDesc {
		p.Order = OrderAsc
	}
	return p
}
