package catalog

import (
	"sort"

	"github.com/wingsengineering/wingsweb/models"
	"github.com/wingsengineering/wingsweb/utils"
)

// Facet is one entry of the category filter.
type Facet struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Facets lists the "all" facet followed by one facet per distinct
// subcategory (or category), in order of first appearance.
func Facets(items []models.Part) []Facet {
	out := []Facet{{ID: AllFacet, Name: "All Parts", Count: len(items)}}
	index := map[string]int{}
	for _, p := range items {
		name := p.Facet()
		if name == "" {
			continue
		}
		if i, ok := index[name]; ok {
			out[i].Count++
			continue
		}
		index[name] = len(out)
		out = append(out, Facet{ID: utils.GenerateSlug(name), Name: name, Count: 1})
	}
	return out
}

// ResolveFacet finds the facet whose id or name equals value. The "all"
// facet and an empty value resolve to no filter.
func ResolveFacet(facets []Facet, value string) (Facet, bool) {
	if value == "" || value == AllFacet {
		return Facet{}, false
	}
	for _, f := range facets {
		if f.ID == AllFacet {
			continue
		}
		if f.ID == value || f.Name == value {
			return f, true
		}
	}
	return Facet{}, false
}

// Brands returns the distinct brands in alphabetical order.
func Brands(items []models.Part) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, p := range items {
		if p.Brand == "" {
			continue
		}
		if _, ok := seen[p.Brand]; ok {
			continue
		}
		seen[p.Brand] = struct{}{}
		out = append(out, p.Brand)
	}
	sort.Strings(out)
	return out
}
