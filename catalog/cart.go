package catalog

import "github.com/wingsengineering/wingsweb/models"

// QuoteLineItem is one requested part. Name, brand and price are copied
// at add time so the line still renders if the part leaves the catalog.
type QuoteLineItem struct {
	PartID   string   `json:"partId"`
	Quantity int      `json:"quantity"`
	Name     string   `json:"name"`
	Brand    string   `json:"brand"`
	Price    *float64 `json:"price,omitempty"`
	Currency string   `json:"currency,omitempty"`
}

// Cart is a visitor's in-progress quote. The zero value is an empty cart.
// A Cart belongs to one session and is not safe for concurrent use.
type Cart struct {
	Items []QuoteLineItem `json:"items"`
}

// AddItem adds one unit of p, creating the line if needed, and returns
// the updated line.
func (c *Cart) AddItem(p models.Part) QuoteLineItem {
	if i := c.index(p.ID); i >= 0 {
		c.Items[i].Quantity++
		return c.Items[i]
	}
	line := QuoteLineItem{
		PartID:   p.ID,
		Quantity: 1,
		Name:     p.Name,
		Brand:    p.Brand,
		Currency: p.Currency,
	}
	if p.Price != nil {
		price := *p.Price
		line.Price = &price
	}
	c.Items = append(c.Items, line)
	return line
}

// SetQuantity sets the quantity of a line; n <= 0 removes it. It reports
// whether the line existed.
func (c *Cart) SetQuantity(partID string, n int) bool {
	i := c.index(partID)
	if i < 0 {
		return false
	}
	if n <= 0 {
		c.removeAt(i)
		return true
	}
	c.Items[i].Quantity = n
	return true
}

// RemoveItem drops a line and reports whether it existed.
func (c *Cart) RemoveItem(partID string) bool {
	i := c.index(partID)
	if i < 0 {
		return false
	}
	c.removeAt(i)
	return true
}

// Lines returns a copy of the lines in insertion order.
func (c *Cart) Lines() []QuoteLineItem {
	return c.Clone().Items
}

func (c *Cart) Clear() {
	c.Items = nil
}

func (c *Cart) Len() int {
	return len(c.Items)
}

// TotalQuantity sums the quantities of every line.
func (c *Cart) TotalQuantity() int {
	total := 0
	for _, l := range c.Items {
		total += l.Quantity
	}
	return total
}

// Clone returns a deep copy.
func (c *Cart) Clone() Cart {
	out := Cart{Items: make([]QuoteLineItem, len(c.Items))}
	for i, l := range c.Items {
		if l.Price != nil {
			price := *l.Price
			l.Price = &price
		}
		out.Items[i] = l
	}
	return out
}

func (c *Cart) index(partID string) int {
	for i, l := range c.Items {
		if l.PartID == partID {
			return i
		}
	}
	return -1
}

func (c *Cart) removeAt(i int) {
	c.Items = append(c.Items[:i:i], c.Items[i+1:]...)
}
