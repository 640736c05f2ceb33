package controllers

import (
	"embed"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wingsengineering/wingsweb/catalog"
	"github.com/wingsengineering/wingsweb/localization"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

var serviceKeys = []string{"generator", "repair", "installation", "maintenance", "emergency", "consultation"}

var requestTypes = []string{"general", "quote", "service", "parts"}

type landingPage struct {
	Lang         string
	Loc          *localization.Localizer
	Listing      listing
	Query        catalog.Query
	Services     []string
	StockFilters []catalog.StockFilter
	SortKeys     []catalog.SortKey
	RequestTypes []string
	PrevURL      string
	NextURL      string
	WhatsAppURL  string
}

// pageURL is the current listing URL with page replaced.
func pageURL(current url.Values, page int) string {
	q := url.Values{}
	for k, v := range current {
		if k == "lang" {
			continue
		}
		q[k] = v
	}
	q.Set("page", strconv.Itoa(page))
	return "/?" + q.Encode() + "#products"
}

// GET /
func (a *App) Landing() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, loc, ok := visitor(c)
		if !ok {
			return
		}
		out, err := a.buildListing(c, loc)
		if err != nil {
			c.String(http.StatusBadRequest, err.Error())
			return
		}

		page := landingPage{
			Lang:         loc.Language().String(),
			Loc:          loc,
			Listing:      out,
			Query:        out.query,
			Services:     serviceKeys,
			StockFilters: catalog.StockFilters,
			SortKeys:     catalog.SortKeys,
			RequestTypes: requestTypes,
			WhatsAppURL:  a.WhatsApp.Link(loc.T("whatsapp.prefilledMessage")),
		}
		params := c.Request.URL.Query()
		if out.Page > 1 {
			page.PrevURL = pageURL(params, out.Page-1)
		}
		if out.Page < out.TotalPages {
			page.NextURL = pageURL(params, out.Page+1)
		}

		c.Header("Content-Type", "text/html; charset=utf-8")
		c.Status(http.StatusOK)
		if err := pageTemplates.ExecuteTemplate(c.Writer, "index.html", page); err != nil {
			a.logger().Error("render landing page", zap.Error(err))
		}
	}
}
