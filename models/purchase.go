package models

import "time"

// PurchaseItem is one replenishment line of a supplier purchase.
type PurchaseItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Code      string  `json:"code,omitempty"`
	Quantity  int     `json:"quantity"`
	UnitCost  float64 `json:"unitCost"`
}

// LineTotal is unit cost times quantity.
func (pi *PurchaseItem) LineTotal() float64 {
	return pi.UnitCost * float64(pi.Quantity)
}

// Purchase is an immutable supplier purchase record. Recording one
// increments the stock of every referenced product.
type Purchase struct {
	ID       string         `json:"id"`
	Supplier string         `json:"supplier"`
	Date     time.Time      `json:"date"`
	Total    float64        `json:"total"`
	Items    []PurchaseItem `json:"items"`
}
