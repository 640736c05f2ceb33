package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"

	"github.com/wingsengineering/wingsweb/metrics"
	"github.com/wingsengineering/wingsweb/models"
)

// Result is one page of a catalog query.
type Result struct {
	Items       []models.Part `json:"items"`
	TotalCount  int           `json:"totalCount"`
	TotalPages  int           `json:"totalPages"`
	CurrentPage int           `json:"currentPage"`
	PageSize    int           `json:"pageSize"`
}

// Empty reports whether the query matched nothing at all.
func (r Result) Empty() bool {
	return r.TotalCount == 0
}

// Range returns the 1-based positions of the first and last visible item,
// or 0, 0 for an empty page.
func (r Result) Range() (int, int) {
	if len(r.Items) == 0 {
		return 0, 0
	}
	start := (r.CurrentPage-1)*r.PageSize + 1
	return start, start + len(r.Items) - 1
}

// Run filters, sorts and paginates items. It never modifies items and
// returns the same result for the same inputs.
func Run(items []models.Part, q Query) (Result, error) {
	if err := q.validate(); err != nil {
		return Result{}, err
	}
	timer := metrics.NewTimer()
	defer func() { metrics.PipelineDuration.Observe(timer.Duration().Seconds()) }()

	sorted := arrange(items, q)

	total := len(sorted)
	res := Result{
		Items:       []models.Part{},
		TotalCount:  total,
		TotalPages:  pageCount(total, q.PageSize),
		CurrentPage: q.Page,
		PageSize:    q.PageSize,
	}
	// Compare page numbers before multiplying so huge pages cannot overflow.
	if total == 0 || q.Page-1 > (total-1)/q.PageSize {
		return res, nil
	}
	start := (q.Page - 1) * q.PageSize
	end := min(start+q.PageSize, total)
	res.Items = append(res.Items, sorted[start:end]...)
	return res, nil
}

func pageCount(total, size int) int {
	pages := total / size
	if total%size != 0 {
		pages++
	}
	return pages
}

// Arrange returns the full filtered and sorted list for q, ignoring paging.
func Arrange(items []models.Part, q Query) ([]models.Part, error) {
	q.Page = 1
	if q.PageSize <= 0 {
		q.PageSize = 1
	}
	if err := q.validate(); err != nil {
		return nil, err
	}
	return arrange(items, q), nil
}

func arrange(items []models.Part, q Query) []models.Part {
	needle := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]models.Part, 0, len(items))
	for _, p := range items {
		if matches(p, q, needle) {
			out = append(out, p)
		}
	}
	sortParts(out, q, needle)
	return out
}

func matches(p models.Part, q Query, needle string) bool {
	if needle != "" && !matchesSearch(p, needle) {
		return false
	}
	if q.Category != "" && p.Facet() != q.Category {
		return false
	}
	if q.Brand != "" && p.Brand != q.Brand {
		return false
	}
	switch q.Stock {
	case StockInStockOnly:
		return p.StockQuantity > 0
	case StockAvailableSoon:
		return availableSoon(p)
	}
	return true
}

func matchesSearch(p models.Part, needle string) bool {
	if relevance(p, needle) > 0 {
		return true
	}
	for _, engine := range p.CompatibleWith {
		if contains(engine, needle) {
			return true
		}
	}
	return false
}

// relevance counts how many of name, reference and brand contain needle.
func relevance(p models.Part, needle string) int {
	score := 0
	for _, field := range []string{p.Name, p.Reference(), p.Brand} {
		if contains(field, needle) {
			score++
		}
	}
	return score
}

func contains(s, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(s), lowerNeedle)
}

func sortParts(parts []models.Part, q Query, needle string) {
	switch q.Sort {
	case SortPriceAsc:
		sort.SliceStable(parts, func(i, j int) bool {
			return parts[i].PriceOrZero() < parts[j].PriceOrZero()
		})
	case SortPriceDesc:
		sort.SliceStable(parts, func(i, j int) bool {
			return parts[i].PriceOrZero() > parts[j].PriceOrZero()
		})
	case SortNameAsc:
		// Collators keep internal buffers, so each call gets its own.
		col := collate.New(q.Locale.Tag(), collate.IgnoreCase)
		sort.SliceStable(parts, func(i, j int) bool {
			return col.CompareString(parts[i].Name, parts[j].Name) < 0
		})
	case SortNewest:
		sort.SliceStable(parts, func(i, j int) bool {
			return parts[i].CreatedAt.After(parts[j].CreatedAt)
		})
	default:
		if needle == "" {
			return
		}
		ranked := make([]scoredPart, len(parts))
		for i, p := range parts {
			ranked[i] = scoredPart{part: p, score: relevance(p, needle)}
		}
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].score > ranked[j].score
		})
		for i := range ranked {
			parts[i] = ranked[i].part
		}
	}
}

type scoredPart struct {
	part  models.Part
	score int
}
