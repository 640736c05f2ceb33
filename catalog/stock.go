package catalog

import "github.com/wingsengineering/wingsweb/models"

// Stock badge states shown on part cards.
const (
	StatusInStock       = "in_stock"
	StatusLowStock      = "low_stock"
	StatusAvailableSoon = "available_soon"
	StatusOutOfStock    = "out_of_stock"
)

// LowStockThreshold is the largest quantity still flagged as low stock.
const LowStockThreshold = 10

// StockStatus classifies a part for its availability badge.
func StockStatus(p models.Part) string {
	switch {
	case p.StockQuantity > LowStockThreshold:
		return StatusInStock
	case p.StockQuantity > 0:
		return StatusLowStock
	case availableSoon(p):
		return StatusAvailableSoon
	default:
		return StatusOutOfStock
	}
}

func availableSoon(p models.Part) bool {
	return p.StockQuantity == 0 && p.LeadTimeDays != nil && *p.LeadTimeDays <= AvailableSoonDays
}
