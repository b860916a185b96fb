package vra_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vra-io/catalog-client/pkg/vra"
)

func TestQueryParams_ToValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		params   *vra.QueryParams
		expected url.Values
	}{
		{
			name:     "empty params",
			params:   vra.NewQueryParams(),
			expected: url.Values{},
		},
		{
			name: "with pagination",
			params: &vra.QueryParams{
				Page:  2,
				Limit: 50,
			},
			expected: url.Values{
				"page":  []string{"2"},
				"limit": []string{"50"},
			},
		},
		{
			name: "with ordering",
			params: &vra.QueryParams{
				OrderBy: "dateCreated desc",
			},
			expected: url.Values{
				"$orderby": []string{"dateCreated desc"},
			},
		},
		{
			name: "with filter",
			params: &vra.QueryParams{
				Filter: "status eq 'ACTIVE'",
			},
			expected: url.Values{
				"$filter": []string{"status eq 'ACTIVE'"},
			},
		},
		{
			name: "with all options",
			params: vra.NewQueryParams().
				WithPage(3).
				WithLimit(20).
				WithFilter("status eq 'ACTIVE'").
				WithOrderBy("name asc"),
			expected: url.Values{
				"page":     []string{"3"},
				"limit":    []string{"20"},
				"$filter":  []string{"status eq 'ACTIVE'"},
				"$orderby": []string{"name asc"},
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.params.ToValues())
		})
	}
}

func TestQueryParams_WithNameFilter(t *testing.T) {
	t.Parallel()

	params := vra.NewQueryParams().WithNameFilter("hol-dev-11")
	assert.Equal(t, "name eq 'hol-dev-11'", params.Filter)

	// Single quotes are escaped by doubling, per OData literal rules.
	params = vra.NewQueryParams().WithNameFilter("bob's vm")
	assert.Equal(t, "name eq 'bob''s vm'", params.Filter)
}
