package controllers

import (
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/wingsengineering/wingsweb/catalog"
	"github.com/wingsengineering/wingsweb/localization"
	"github.com/wingsengineering/wingsweb/models"
)

type StockView struct {
	Status string `json:"status"`
	Label  string `json:"label"`
}

// PartView is a part as the site shows it: the stored record plus the
// labels rendered in the visitor's language.
type PartView struct {
	models.Part
	Reference  string    `json:"reference"`
	Stock      StockView `json:"stock"`
	PriceLabel string    `json:"priceLabel"`
}

type FacetView struct {
	catalog.Facet
	Label string `json:"label"`
}

func stockView(loc *localization.Localizer, p models.Part) StockView {
	status := catalog.StockStatus(p)
	var label string
	switch status {
	case catalog.StatusInStock:
		label = loc.T("products.inStock")
	case catalog.StatusLowStock:
		label = loc.T("products.lowStock", localization.Params{"quantity": p.StockQuantity})
	case catalog.StatusAvailableSoon:
		label = loc.T("products.availableSoon", localization.Params{"days": *p.LeadTimeDays})
	default:
		label = loc.T("products.outOfStock")
	}
	return StockView{Status: status, Label: label}
}

// priceLabel formats the price with the grouping rules of the visitor's
// language, e.g. "KES 12,500".
func priceLabel(loc *localization.Localizer, p models.Part) string {
	if !p.HasPrice() {
		return loc.T("products.contactForPrice")
	}
	printer := message.NewPrinter(loc.Language().Tag())
	return p.Currency + " " + printer.Sprint(number.Decimal(*p.Price, number.MaxFractionDigits(2)))
}

func partView(loc *localization.Localizer, p models.Part) PartView {
	return PartView{
		Part:       p,
		Reference:  p.Reference(),
		Stock:      stockView(loc, p),
		PriceLabel: priceLabel(loc, p),
	}
}

func partViews(loc *localization.Localizer, parts []models.Part) []PartView {
	out := make([]PartView, 0, len(parts))
	for _, p := range parts {
		out = append(out, partView(loc, p))
	}
	return out
}

func facetViews(loc *localization.Localizer, facets []catalog.Facet) []FacetView {
	out := make([]FacetView, 0, len(facets))
	for _, f := range facets {
		label := loc.FacetName(f.ID, f.Name)
		if f.ID == catalog.AllFacet {
			label = loc.T("products.all")
		}
		out = append(out, FacetView{Facet: f, Label: label})
	}
	return out
}

// partMessage is the WhatsApp greeting for asking about p. It names the
// first compatible engine, or a generic one.
func partMessage(loc *localization.Localizer, p models.Part) string {
	engine := loc.T("whatsapp.defaultEngine")
	if len(p.CompatibleWith) > 0 {
		engine = p.CompatibleWith[0]
	}
	return loc.T("whatsapp.partMessage", localization.Params{
		"name":      p.Name,
		"reference": p.Reference(),
		"engine":    engine,
	})
}
