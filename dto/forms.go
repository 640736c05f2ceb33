package dto

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wingsengineering/wingsweb/catalog"
)

// Form is a visitor-submitted form that trims its own text fields before
// validation.
type Form interface {
	Normalize()
}

type ContactFormDTO struct {
	Name        string `json:"name"        form:"name"        validate:"min=2"`
	Email       string `json:"email"       form:"email"       validate:"formemail"`
	Phone       string `json:"phone"       form:"phone"       validate:"omitempty,kephone"`
	Company     string `json:"company"     form:"company"`
	RequestType string `json:"requestType" form:"requestType" validate:"omitempty,oneof=quote service parts general"`
	Product     string `json:"product"     form:"product"`
	Message     string `json:"message"     form:"message"     validate:"min=10"`
}

func (d *ContactFormDTO) Normalize() {
	trim(&d.Name, &d.Email, &d.Phone, &d.Company, &d.RequestType, &d.Product, &d.Message)
}

// Subject is the relay subject line, e.g. "Contact Form: parts".
func (d ContactFormDTO) Subject() string {
	kind := d.RequestType
	if kind == "" {
		kind = "General Inquiry"
	}
	return "Contact Form: " + kind
}

// Fields are the entries forwarded to the relay.
func (d ContactFormDTO) Fields() map[string]string {
	return map[string]string{
		"name":        d.Name,
		"email":       d.Email,
		"phone":       d.Phone,
		"company":     d.Company,
		"requestType": d.RequestType,
		"product":     d.Product,
		"message":     d.Message,
	}
}

type QuoteRequestDTO struct {
	Name           string `json:"name"           form:"name"           validate:"min=2"`
	Email          string `json:"email"          form:"email"          validate:"formemail"`
	Phone          string `json:"phone"          form:"phone"          validate:"omitempty,kephone"`
	Company        string `json:"company"        form:"company"`
	ProductService string `json:"productService" form:"productService"`
	Quantity       int    `json:"quantity"       form:"quantity"       validate:"omitempty,min=1"`
	Location       string `json:"location"       form:"location"`
	Requirements   string `json:"requirements"   form:"requirements"`
	Budget         string `json:"budget"         form:"budget"`
}

func (d *QuoteRequestDTO) Normalize() {
	trim(&d.Name, &d.Email, &d.Phone, &d.Company, &d.ProductService, &d.Location, &d.Requirements, &d.Budget)
	if d.Quantity == 0 {
		d.Quantity = 1
	}
}

// Subject names the product or service, or the number of cart lines
// when the visitor only sent a cart.
func (d QuoteRequestDTO) Subject(cartLines int) string {
	what := d.ProductService
	if what == "" {
		what = fmt.Sprintf("%d catalog items", cartLines)
	}
	return "Quote Request for " + what
}

func (d QuoteRequestDTO) Fields() map[string]string {
	return map[string]string{
		"name":           d.Name,
		"email":          d.Email,
		"phone":          d.Phone,
		"company":        d.Company,
		"productService": d.ProductService,
		"message": fmt.Sprintf("Quantity: %d\nLocation: %s\nRequirements: %s\nBudget: %s",
			d.Quantity, d.Location, d.Requirements, d.Budget),
		"requestType": "quote",
	}
}

type BookingRequestDTO struct {
	Name             string `json:"name"             form:"name"             validate:"min=2"`
	Email            string `json:"email"            form:"email"            validate:"formemail"`
	Phone            string `json:"phone"            form:"phone"            validate:"omitempty,kephone"`
	EquipmentType    string `json:"equipmentType"    form:"equipmentType"    validate:"required"`
	BrandModel       string `json:"brandModel"       form:"brandModel"`
	IssueDescription string `json:"issueDescription" form:"issueDescription"`
	Urgency          string `json:"urgency"          form:"urgency"          validate:"omitempty,oneof=emergency urgent standard"`
	PreferredDate    string `json:"preferredDate"    form:"preferredDate"`
	PreferredTime    string `json:"preferredTime"    form:"preferredTime"`
}

func (d *BookingRequestDTO) Normalize() {
	trim(&d.Name, &d.Email, &d.Phone, &d.EquipmentType, &d.BrandModel, &d.IssueDescription,
		&d.Urgency, &d.PreferredDate, &d.PreferredTime)
	if d.Urgency == "" {
		d.Urgency = "standard"
	}
}

func (d BookingRequestDTO) Subject() string {
	return "Service Booking: " + d.EquipmentType
}

func (d BookingRequestDTO) Fields() map[string]string {
	return map[string]string{
		"name":          d.Name,
		"email":         d.Email,
		"phone":         d.Phone,
		"equipmentType": d.EquipmentType,
		"message": fmt.Sprintf("Equipment: %s\nIssue: %s\nUrgency: %s\nPreferred: %s %s",
			d.BrandModel, d.IssueDescription, d.Urgency, d.PreferredDate, d.PreferredTime),
		"requestType": "service",
	}
}

// CartFields flattens cart lines into relay entries item_1, item_2, ...
func CartFields(lines []catalog.QuoteLineItem) map[string]string {
	out := make(map[string]string, len(lines))
	for i, l := range lines {
		desc := fmt.Sprintf("%s x%d (%s)", l.Name, l.Quantity, l.PartID)
		if l.Brand != "" {
			desc = l.Brand + " " + desc
		}
		if l.Price != nil {
			desc += " @ " + l.Currency + " " + strconv.FormatFloat(*l.Price, 'f', -1, 64)
		}
		out["item_"+strconv.Itoa(i+1)] = desc
	}
	return out
}

func trim(fields ...*string) {
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}
}
