package models

import (
	"errors"
	"time"
)

// Part is a spare-parts catalog entry as read from the hosted store.
// Price and Currency are set together; a nil Price means "contact for price".
type Part struct {
	ID               string    `bson:"_id"                        json:"id"`
	Name             string    `bson:"name"                       json:"name"`
	Brand            string    `bson:"brand"                      json:"brand"`
	Model            string    `bson:"model,omitempty"            json:"model,omitempty"`
	PartNumber       string    `bson:"partNumber,omitempty"       json:"partNumber,omitempty"`
	Category         string    `bson:"category"                   json:"category"`
	Subcategory      string    `bson:"subcategory,omitempty"      json:"subcategory,omitempty"`
	Price            *float64  `bson:"price,omitempty"            json:"price,omitempty"`
	Currency         string    `bson:"currency,omitempty"         json:"currency,omitempty"`
	StockQuantity    int       `bson:"stockQuantity"              json:"stockQuantity"`
	LeadTimeDays     *int      `bson:"leadTimeDays,omitempty"     json:"leadTimeDays,omitempty"`
	CompatibleWith   []string  `bson:"compatibleWith"             json:"compatibleWith"`
	ShortDescription string    `bson:"shortDescription,omitempty" json:"shortDescription,omitempty"`
	ImageURL         string    `bson:"primaryImageUrl,omitempty"  json:"imageUrl,omitempty"`
	CreatedAt        time.Time `bson:"createdAt"                  json:"createdAt"`
}

// Reference is the model-or-part-number shown next to the name.
func (p Part) Reference() string {
	if p.Model != "" {
		return p.Model
	}
	return p.PartNumber
}

// Facet is the value the category filter matches against.
func (p Part) Facet() string {
	if p.Subcategory != "" {
		return p.Subcategory
	}
	return p.Category
}

// HasPrice reports whether the part carries a list price.
func (p Part) HasPrice() bool {
	return p.Price != nil
}

// PriceOrZero is the price used for ordering; priceless parts count as 0.
func (p Part) PriceOrZero() float64 {
	if p.Price == nil {
		return 0
	}
	return *p.Price
}

var (
	ErrPartMissingID        = errors.New("part has no id")
	ErrPartPriceCurrency    = errors.New("price and currency must be set together")
	ErrPartNegativePrice    = errors.New("price must not be negative")
	ErrPartNegativeStock    = errors.New("stock quantity must not be negative")
	ErrPartNegativeLeadTime = errors.New("lead time must not be negative")
)

// Validate checks the record invariants a fetched part must satisfy.
func (p Part) Validate() error {
	if p.ID == "" {
		return ErrPartMissingID
	}
	if (p.Price != nil) != (p.Currency != "") {
		return ErrPartPriceCurrency
	}
	if p.Price != nil && *p.Price < 0 {
		return ErrPartNegativePrice
	}
	if p.StockQuantity < 0 {
		return ErrPartNegativeStock
	}
	if p.LeadTimeDays != nil && *p.LeadTimeDays < 0 {
		return ErrPartNegativeLeadTime
	}
	return nil
}
