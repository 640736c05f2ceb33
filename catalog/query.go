package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/wingsengineering/wingsweb/localization"
)

// ErrInvalidQuery marks a query no caller should ever build, such as a
// non-positive page size.
var ErrInvalidQuery = errors.New("invalid catalog query")

// AllFacet is the facet id meaning "no category filter".
const AllFacet = "all"

type StockFilter string

const (
	StockAny           StockFilter = "any"
	StockInStockOnly   StockFilter = "in_stock"
	StockAvailableSoon StockFilter = "available_soon"
)

// AvailableSoonDays is the longest lead time still shown as available soon.
const AvailableSoonDays = 10

type SortKey string

const (
	SortRelevance SortKey = "relevance"
	SortPriceAsc  SortKey = "price_asc"
	SortPriceDesc SortKey = "price_desc"
	SortNameAsc   SortKey = "name_asc"
	SortNewest    SortKey = "newest"
)

var (
	StockFilters = []StockFilter{StockAny, StockInStockOnly, StockAvailableSoon}
	SortKeys     = []SortKey{SortRelevance, SortPriceAsc, SortPriceDesc, SortNameAsc, SortNewest}
)

// ParseStockFilter maps an empty value to StockAny.
func ParseStockFilter(s string) (StockFilter, error) {
	if s == "" {
		return StockAny, nil
	}
	for _, f := range StockFilters {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: stock filter %q", ErrInvalidQuery, s)
}

// ParseSortKey maps an empty value to SortRelevance.
func ParseSortKey(s string) (SortKey, error) {
	if s == "" {
		return SortRelevance, nil
	}
	for _, k := range SortKeys {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: sort key %q", ErrInvalidQuery, s)
}

// Query holds the visitor's filter, sort and paging choices. Category and
// Brand hold exact facet values; empty means no filter.
type Query struct {
	Search   string
	Category string
	Brand    string
	Stock    StockFilter
	Sort     SortKey
	Page     int
	PageSize int
	// Locale drives name collation.
	Locale localization.Language
}

// DefaultQuery is the "clear all filters" state.
func DefaultQuery(pageSize int) Query {
	return Query{
		Stock:    StockAny,
		Sort:     SortRelevance,
		Page:     1,
		PageSize: pageSize,
		Locale:   localization.Primary,
	}
}

// Filtered reports whether any narrowing filter is active.
func (q Query) Filtered() bool {
	return strings.TrimSpace(q.Search) != "" || q.Category != "" || q.Brand != "" ||
		(q.Stock != "" && q.Stock != StockAny)
}

func (q Query) validate() error {
	if q.PageSize <= 0 {
		return fmt.Errorf("%w: page size %d", ErrInvalidQuery, q.PageSize)
	}
	if q.Page < 1 {
		return fmt.Errorf("%w: page %d", ErrInvalidQuery, q.Page)
	}
	if q.Stock != "" {
		if _, err := ParseStockFilter(string(q.Stock)); err != nil {
			return err
		}
	}
	if q.Sort != "" {
		if _, err := ParseSortKey(string(q.Sort)); err != nil {
			return err
		}
	}
	return nil
}
