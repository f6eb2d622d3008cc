package query

import (
	"math"
	"net/url"
	"testing"

	"trimmers-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 {
	return &v
}

func TestParseProductParams(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected model.ProductQuery
	}{
		{
			name:     "No parameters",
			query:    "",
			expected: model.ProductQuery{},
		},
		{
			name:  "Sentinel all is ignored",
			query: "category=all&company=all&color=all",
			expected: model.ProductQuery{
				Filter: model.ProductFilter{},
			},
		},
		{
			name:  "Equality filters",
			query: "category=office&company=ikea&color=%23ff0000",
			expected: model.ProductQuery{
				Filter: model.ProductFilter{Category: "office", Company: "ikea", Color: "#ff0000"},
			},
		},
		{
			name:  "Search and price",
			query: "search=chair&price=150.5",
			expected: model.ProductQuery{
				Filter: model.ProductFilter{Search: "chair", MaxPrice: floatPtr(150.5)},
			},
		},
		{
			name:  "Free shipping upper case",
			query: "freeShipping=TRUE",
			expected: model.ProductQuery{
				Filter: model.ProductFilter{FreeShipping: true},
			},
		},
		{
			name:  "Free shipping mixed case",
			query: "freeShipping=True",
			expected: model.ProductQuery{
				Filter: model.ProductFilter{FreeShipping: true},
			},
		},
		{
			name:     "Free shipping false",
			query:    "freeShipping=false",
			expected: model.ProductQuery{},
		},
		{
			name:     "Free shipping other value",
			query:    "freeShipping=yes",
			expected: model.ProductQuery{},
		},
		{
			name:     "Known sort and page",
			query:    "sort=lowest&page=2",
			expected: model.ProductQuery{Sort: model.SortLowest, Page: 2},
		},
		{
			name:     "Unknown sort",
			query:    "sort=random",
			expected: model.ProductQuery{Sort: model.SortNone},
		},
		{
			name:     "Empty search is not a constraint",
			query:    "search=",
			expected: model.ProductQuery{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			q, err := ParseProductParams(values)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, q)
		})
	}
}

func TestParseProductParams_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		errorMsg string
	}{
		{name: "Non numeric price", query: "price=cheap", errorMsg: "price must be a non-negative number"},
		{name: "Negative price", query: "price=-5", errorMsg: "price must be a non-negative number"},
		{name: "NaN price", query: "price=NaN", errorMsg: "price must be a non-negative number"},
		{name: "Zero page", query: "page=0", errorMsg: "page must be a positive integer"},
		{name: "Negative page", query: "page=-1", errorMsg: "page must be a positive integer"},
		{name: "Fractional page", query: "page=1.5", errorMsg: "page must be a positive integer"},
		{name: "Page past the last representable offset", query: "page=922337203685477582", errorMsg: "page must be a positive integer"},
		{name: "Max int page", query: "page=9223372036854775807", errorMsg: "page must be a positive integer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			_, err = ParseProductParams(values)

			require.Error(t, err)
			assert.True(t, model.IsKind(err, model.KindBadRequest))
			assert.Equal(t, tt.errorMsg, err.Error())
		})
	}
}

func TestRawProductParams_LargestPage(t *testing.T) {
	q, err := RawProductParams{Page: "922337203685477581"}.Build()
	require.NoError(t, err)

	opts := q.FindOptions()
	assert.GreaterOrEqual(t, opts.Skip, int64(0))
	assert.Equal(t, int64(math.MaxInt64-7), opts.Skip)
}

func TestRawProductParams_AllEqualsOmission(t *testing.T) {
	withAll, err := RawProductParams{Category: "all", Company: "all", Color: "all"}.Build()
	require.NoError(t, err)

	omitted, err := RawProductParams{}.Build()
	require.NoError(t, err)

	assert.Equal(t, omitted, withAll)
}
