package vra

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// QueryParams expresses the list options the catalog service understands:
// page/limit pagination plus OData-style filtering and ordering.
type QueryParams struct {
	Page    int
	Limit   int
	Filter  string
	OrderBy string
}

// NewQueryParams creates an empty QueryParams.
func NewQueryParams() *QueryParams {
	return &QueryParams{}
}

// WithPage sets the page number (1-based).
func (q *QueryParams) WithPage(page int) *QueryParams {
	q.Page = page

	return q
}

// WithLimit sets the page size.
func (q *QueryParams) WithLimit(limit int) *QueryParams {
	q.Limit = limit

	return q
}

// WithFilter sets the raw OData filter expression.
func (q *QueryParams) WithFilter(filter string) *QueryParams {
	q.Filter = filter

	return q
}

// WithNameFilter sets a filter matching entities by exact name.
func (q *QueryParams) WithNameFilter(name string) *QueryParams {
	q.Filter = fmt.Sprintf("name eq '%s'", strings.ReplaceAll(name, "'", "''"))

	return q
}

// WithOrderBy sets the ordering expression, e.g. "dateCreated desc".
func (q *QueryParams) WithOrderBy(orderBy string) *QueryParams {
	q.OrderBy = orderBy

	return q
}

// ToValues converts the parameters to URL query values.
func (q *QueryParams) ToValues() url.Values {
	values := url.Values{}

	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}

	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}

	if q.Filter != "" {
		values.Set("$filter", q.Filter)
	}

	if q.OrderBy != "" {
		values.Set("$orderby", q.OrderBy)
	}

	return values
}
