package store

import (
	"sync"

	"storefront-backend/models"
)

// Cart is a basket of frozen product snapshots. The storefront cart and the
// POS cart are two independent instances of this one implementation; the
// quantity floor is a construction parameter so both baskets share the same
// clamping rule.
type Cart struct {
	mu     sync.Mutex
	lines  []models.CartItem
	minQty int
}

// NewCart returns an empty cart whose UpdateQuantity clamps to minQty.
func NewCart(minQty int) *Cart {
	return &Cart{minQty: minQty}
}

// Add merges the product into the basket: an existing line for the same
// product id gains quantity 1, otherwise a new line with quantity 1 is
// appended. The product snapshot is frozen at add time, so later catalog
// price changes do not alter cart totals.
func (c *Cart) Add(p models.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.lines {
		if c.lines[i].ID == p.ID {
			c.lines[i].Quantity++
			return
		}
	}
	c.lines = append(c.lines, models.CartItem{Product: p, Quantity: 1})
}

// UpdateQuantity sets the quantity of the line for the given product id,
// clamped to the cart's floor. Removal is a separate operation; this path
// cannot empty a line.
func (c *Cart) UpdateQuantity(productID string, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if quantity < c.minQty {
		quantity = c.minQty
	}
	for i := range c.lines {
		if c.lines[i].ID == productID {
			c.lines[i].Quantity = quantity
			return
		}
	}
}

// Remove deletes the line for the given product id outright.
func (c *Cart) Remove(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.lines {
		if c.lines[i].ID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Clear empties the basket.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
}

// Total sums quantity times the frozen unit price over all lines.
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var total float64
	for i := range c.lines {
		total += c.lines[i].LineTotal()
	}
	return total
}

// Items returns a copy of the cart lines.
func (c *Cart) Items() []models.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.CartItem(nil), c.lines...)
}

// Len is the number of distinct lines.
func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}
