package catalog

import (
	"fmt"
	"time"

	"github.com/wingsengineering/wingsweb/models"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func price(v float64) *float64 { return &v }

func lead(d int) *int { return &d }

type partOption func(*models.Part)

func withPrice(v float64) partOption {
	return func(p *models.Part) { p.Price, p.Currency = price(v), "KES" }
}

func withStock(n int) partOption {
	return func(p *models.Part) { p.StockQuantity = n }
}

func withLead(d int) partOption {
	return func(p *models.Part) { p.LeadTimeDays = lead(d) }
}

func withBrand(b string) partOption {
	return func(p *models.Part) { p.Brand = b }
}

func withModel(m string) partOption {
	return func(p *models.Part) { p.Model = m }
}

func withCategory(category, subcategory string) partOption {
	return func(p *models.Part) { p.Category, p.Subcategory = category, subcategory }
}

func withCompat(engines ...string) partOption {
	return func(p *models.Part) { p.CompatibleWith = engines }
}

func newPart(id, name string, opts ...partOption) models.Part {
	p := models.Part{
		ID:             id,
		Name:           name,
		Brand:          "Lister Petter",
		Category:       "spare_parts",
		Subcategory:    "Filters",
		StockQuantity:  5,
		CompatibleWith: []string{},
		CreatedAt:      epoch,
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// sampleParts is a small mixed catalog, newest first like the stores
// return it.
func sampleParts() []models.Part {
	return []models.Part{
		newPart("p1", "Oil Filter", withModel("LPW-OF-201"), withPrice(1200), withStock(25), withCompat("LPW2", "LPW3", "LPW4")),
		newPart("p2", "Fuel Injector", withModel("LPA-FI-310"), withCategory("spare_parts", "Fuel System"), withStock(0), withLead(7), withCompat("LPA2")),
		newPart("p3", "Cylinder Head Gasket", withCategory("parts", "Gaskets & Seals"), withStock(3), withPrice(4500), withCompat("LPW4")),
		newPart("p4", "Alternator Belt", withBrand("Gates"), withCategory("parts", "Belts & Hoses"), withStock(0), withLead(15)),
		newPart("p5", "Air Filter Element", withModel("AF-77"), withPrice(800), withStock(12)),
		newPart("p6", "Water Pump", withBrand("Perkins"), withCategory("parts", ""), withStock(0)),
		newPart("p7", "filter wrench", withBrand("Gates"), withCategory("tools", "Fasteners & Hardware"), withPrice(650), withStock(2)),
		newPart("p8", "Starter Motor", withCategory("spare_parts", "Electrical"), withPrice(15000), withStock(1), withCompat("LPW4", "TS1")),
	}
}

// numberedParts returns n parts named "Part 01".."Part nn" in reverse order
// with increasing creation times.
func numberedParts(n int) []models.Part {
	out := make([]models.Part, 0, n)
	for i := n; i >= 1; i-- {
		p := newPart(fmt.Sprintf("n%02d", i), fmt.Sprintf("Part %02d", i), withPrice(float64(i%7)*100))
		p.CreatedAt = epoch.Add(time.Duration(i) * time.Hour)
		out = append(out, p)
	}
	return out
}

func ids(parts []models.Part) []string {
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = p.ID
	}
	return out
}
