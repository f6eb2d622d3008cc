// Package query turns untrusted catalogue query parameters into a typed model.ProductQuery.
package query

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"trimmers-api/internal/model"
)

// AllValues is the sentinel meaning "no constraint" for category, company and color.
const AllValues = "all"

// RawProductParams holds the catalogue query parameters exactly as received.
type RawProductParams struct {
	Sort         string
	Search       string
	Category     string
	Company      string
	Color        string
	Price        string
	FreeShipping string
	Page         string
}

// ParseProductParams reads the catalogue parameters from values and builds the query.
func ParseProductParams(values url.Values) (model.ProductQuery, error) {
	raw := RawProductParams{
		Sort:         values.Get("sort"),
		Search:       values.Get("search"),
		Category:     values.Get("category"),
		Company:      values.Get("company"),
		Color:        values.Get("color"),
		Price:        values.Get("price"),
		FreeShipping: values.Get("freeShipping"),
		Page:         values.Get("page"),
	}
	return raw.Build()
}

// Build validates the raw parameters and returns the typed query.
// A malformed price or page yields a BadRequest error.
func (p RawProductParams) Build() (model.ProductQuery, error) {
	q := model.ProductQuery{
		Filter: model.ProductFilter{
			Search:       p.Search,
			Category:     constraint(p.Category),
			Company:      constraint(p.Company),
			Color:        constraint(p.Color),
			FreeShipping: strings.ToLower(p.FreeShipping) == "true",
		},
		Sort: model.ParseSortOrder(p.Sort),
	}

	if p.Price != "" {
		price, err := parsePrice(p.Price)
		if err != nil {
			return model.ProductQuery{}, err
		}
		q.Filter.MaxPrice = &price
	}

	if p.Page != "" {
		page, err := parsePage(p.Page)
		if err != nil {
			return model.ProductQuery{}, err
		}
		q.Page = page
	}

	return q, nil
}

func constraint(value string) string {
	if value == AllValues {
		return ""
	}
	return value
}

func parsePrice(raw string) (float64, error) {
	price, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return 0, model.NewBadRequest("price must be a non-negative number")
	}
	return price, nil
}

func parsePage(raw string) (int, error) {
	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || page < 1 || page > model.MaxPage {
		return 0, model.NewBadRequest("page must be a positive integer")
	}
	return page, nil
}
