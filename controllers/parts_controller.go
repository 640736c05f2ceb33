package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/wingsengineering/wingsweb/catalog"
	"github.com/wingsengineering/wingsweb/localization"
	"github.com/wingsengineering/wingsweb/utils"
)

// catalogQuery builds a pipeline query from the listing parameters
// q, category, brand, stock, sort, page and limit.
func (a *App) catalogQuery(c *gin.Context, loc *localization.Localizer, facets []catalog.Facet) (catalog.Query, error) {
	q := catalog.DefaultQuery(a.PageSize)
	q.Locale = loc.Language()
	q.Search = strings.TrimSpace(c.Query("q"))
	q.Brand = strings.TrimSpace(c.Query("brand"))

	if category := strings.TrimSpace(c.Query("category")); category != "" {
		if f, ok := catalog.ResolveFacet(facets, category); ok {
			q.Category = f.Name
		} else if category != catalog.AllFacet {
			q.Category = category
		}
	}

	stock, err := catalog.ParseStockFilter(c.Query("stock"))
	if err != nil {
		return q, err
	}
	sortKey, err := catalog.ParseSortKey(c.Query("sort"))
	if err != nil {
		return q, err
	}
	q.Stock = stock
	q.Sort = sortKey

	q.Page, q.PageSize = utils.ClampPage(
		utils.ParseIntDefault(c.Query("page"), 1),
		utils.ParseIntDefault(c.Query("limit"), a.PageSize),
		a.MaxPageSize,
	)
	return q, nil
}

// listing is the payload shared by the JSON listing and the landing page.
type listing struct {
	Items      []PartView  `json:"items"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	Total      int         `json:"total"`
	TotalPages int         `json:"totalPages"`
	Facets     []FacetView `json:"facets"`
	Brands     []string    `json:"brands"`
	Filtered   bool        `json:"filtered"`
	Summary    string      `json:"summary"`
	PageLabel  string      `json:"pageLabel,omitempty"`
	Empty      *emptyState `json:"empty,omitempty"`
	Error      string      `json:"error,omitempty"`

	query catalog.Query
}

type emptyState struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (a *App) buildListing(c *gin.Context, loc *localization.Localizer) (listing, error) {
	items := a.Snapshot.Items()
	facets := catalog.Facets(items)

	q, err := a.catalogQuery(c, loc, facets)
	if err != nil {
		return listing{}, err
	}
	res, err := catalog.Run(items, q)
	if err != nil {
		return listing{}, err
	}

	out := listing{
		Items:      partViews(loc, res.Items),
		Page:       res.CurrentPage,
		Limit:      res.PageSize,
		Total:      res.TotalCount,
		TotalPages: res.TotalPages,
		Facets:     facetViews(loc, facets),
		Brands:     catalog.Brands(items),
		Filtered:   q.Filtered(),
		query:      q,
	}
	if out.Brands == nil {
		out.Brands = []string{}
	}

	start, end := res.Range()
	out.Summary = loc.T("products.showing", localization.Params{"start": start, "end": end, "total": res.TotalCount})
	if res.TotalPages > 1 {
		out.PageLabel = loc.T("products.page", localization.Params{"page": res.CurrentPage, "pages": res.TotalPages})
	}
	if res.Empty() {
		out.Empty = &emptyState{
			Title:       loc.T("products.empty.title"),
			Description: loc.T("products.empty.description"),
		}
	}
	if a.Snapshot.LastError() != nil {
		out.Error = loc.T("products.loadError")
	}
	return out, nil
}

// GET /api/parts?q=&category=&brand=&stock=&sort=&page=&limit=
func (a *App) ListParts() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, loc, ok := visitor(c)
		if !ok {
			return
		}
		out, err := a.buildListing(c, loc)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// GET /api/parts/:id
func (a *App) GetPart() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, loc, ok := visitor(c)
		if !ok {
			return
		}
		p, found := a.Snapshot.Find(c.Param("id"))
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "part not found"})
			return
		}

		msg := partMessage(loc, p)

		c.JSON(http.StatusOK, gin.H{
			"part":     partView(loc, p),
			"whatsapp": a.WhatsApp.Link(msg),
		})
	}
}

// GET /api/compatibility?engine=LPW4
func (a *App) Compatibility() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, loc, ok := visitor(c)
		if !ok {
			return
		}
		items := a.Snapshot.Items()
		engine := strings.TrimSpace(c.Query("engine"))
		if engine == "" {
			c.JSON(http.StatusOK, gin.H{
				"engine":  "",
				"engines": catalog.EngineModels(items),
				"items":   []PartView{},
			})
			return
		}

		matches := catalog.CompatibleParts(items, engine)
		params := localization.Params{"count": len(matches), "engine": engine}
		summary := loc.T("compatibility.found", params)
		if len(matches) == 0 {
			summary = loc.T("compatibility.none", params)
		}
		c.JSON(http.StatusOK, gin.H{
			"engine":  engine,
			"engines": catalog.EngineModels(items),
			"items":   partViews(loc, matches),
			"summary": summary,
		})
	}
}
