package models

// CartItem is a product snapshot frozen at add-time plus a quantity.
// Later catalog edits never alter the snapshot, so cart totals and
// persisted sale line items are immune to price changes.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

// LineTotal is the frozen unit price times quantity.
func (ci *CartItem) LineTotal() float64 {
	return ci.UnitPrice() * float64(ci.Quantity)
}
