package model

import "math"

// PageSize is the fixed number of products per catalogue page.
const PageSize = 10

// MaxPage is the largest page whose skip still fits in an int64.
const MaxPage = math.MaxInt64/PageSize + 1

// SortOrder selects the ordering of a catalogue query.
type SortOrder string

const (
	SortNone    SortOrder = ""
	SortLowest  SortOrder = "lowest"
	SortHighest SortOrder = "highest"
	SortZA      SortOrder = "z-a"
	SortAZ      SortOrder = "a-z"
)

// SortField is a field/direction pair a store orders by.
type SortField struct {
	Field      string
	Descending bool
}

var sortFields = map[SortOrder]SortField{
	SortLowest:  {Field: "price", Descending: true},
	SortHighest: {Field: "price", Descending: false},
	SortZA:      {Field: "name", Descending: true},
	SortAZ:      {Field: "name", Descending: false},
}

// ParseSortOrder maps a raw sort value to a SortOrder. Unknown values give SortNone.
func ParseSortOrder(raw string) SortOrder {
	order := SortOrder(raw)
	if _, ok := sortFields[order]; ok {
		return order
	}
	return SortNone
}

// Field returns the ordering for s. ok is false for SortNone.
func (s SortOrder) Field() (SortField, bool) {
	f, ok := sortFields[s]
	return f, ok
}

// ProductFilter is the set of predicates narrowing a catalogue query.
// Zero values mean "no constraint" for every field.
type ProductFilter struct {
	Search       string
	Category     string
	Company      string
	Color        string
	MaxPrice     *float64
	FreeShipping bool
}

// IsEmpty reports whether the filter has no predicates.
func (f ProductFilter) IsEmpty() bool {
	return f.Search == "" &&
		f.Category == "" &&
		f.Company == "" &&
		f.Color == "" &&
		f.MaxPrice == nil &&
		!f.FreeShipping
}

// FindOptions controls ordering and the window of a Find call.
// A zero Limit means no limit.
type FindOptions struct {
	Sort  SortOrder
	Skip  int64
	Limit int64
}

// ProductQuery is a validated catalogue query.
type ProductQuery struct {
	Filter ProductFilter
	Sort   SortOrder
	// Page is 1-based; zero returns the whole filtered set.
	Page int
}

// Paginated reports whether a page was requested.
func (q ProductQuery) Paginated() bool {
	return q.Page > 0
}

// FindOptions returns the store window for the query.
func (q ProductQuery) FindOptions() FindOptions {
	opts := FindOptions{Sort: q.Sort}
	if q.Paginated() {
		opts.Skip = PageSize * int64(q.Page-1)
		opts.Limit = PageSize
	}
	return opts
}

// NumOfPages returns ceil(count / PageSize).
func NumOfPages(count int64) int64 {
	if count <= 0 {
		return 0
	}
	return (count + PageSize - 1) / PageSize
}
