package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"storefront-backend/models"
)

func watch() models.Product {
	return models.Product{ID: "p1", Name: "Smart Watch", Price: 45.99, IsSale: true, DiscountPrice: 29.99}
}

func keyboard() models.Product {
	return models.Product{ID: "p2", Name: "Keyboard", Price: 55.00}
}

func TestCartAdd(t *testing.T) {
	t.Run("Repeat add merges into one line", func(t *testing.T) {
		c := NewCart(1)
		c.Add(watch())
		c.Add(watch())

		items := c.Items()
		assert.Len(t, items, 1)
		assert.Equal(t, 2, items[0].Quantity)
	})

	t.Run("Distinct products get distinct lines", func(t *testing.T) {
		c := NewCart(1)
		c.Add(watch())
		c.Add(keyboard())
		assert.Equal(t, 2, c.Len())
	})

	t.Run("Snapshot is frozen at add time", func(t *testing.T) {
		c := NewCart(1)
		p := watch()
		c.Add(p)

		p.DiscountPrice = 9.99 // caller mutates its copy afterwards
		assert.InDelta(t, 29.99, c.Total(), 1e-9)
	})

	t.Run("Sale price is used for the line total", func(t *testing.T) {
		c := NewCart(1)
		c.Add(watch())
		c.Add(watch())
		assert.InDelta(t, 2*29.99, c.Total(), 1e-9)
	})
}

func TestCartUpdateQuantity(t *testing.T) {
	t.Run("Sets the line quantity", func(t *testing.T) {
		c := NewCart(1)
		c.Add(keyboard())
		c.UpdateQuantity("p2", 5)
		assert.Equal(t, 5, c.Items()[0].Quantity)
	})

	t.Run("Clamps below the floor", func(t *testing.T) {
		c := NewCart(1)
		c.Add(keyboard())
		c.UpdateQuantity("p2", 0)
		assert.Equal(t, 1, c.Items()[0].Quantity)

		c.UpdateQuantity("p2", -3)
		assert.Equal(t, 1, c.Items()[0].Quantity)
	})

	t.Run("Unknown product is a no-op", func(t *testing.T) {
		c := NewCart(1)
		c.Add(keyboard())
		c.UpdateQuantity("nope", 9)
		assert.Equal(t, 1, c.Items()[0].Quantity)
	})
}

func TestCartRemoveAndClear(t *testing.T) {
	t.Run("Remove deletes the line outright", func(t *testing.T) {
		c := NewCart(1)
		c.Add(watch())
		c.Add(keyboard())
		c.Remove("p1")

		items := c.Items()
		assert.Len(t, items, 1)
		assert.Equal(t, "p2", items[0].ID)
	})

	t.Run("Re-add after remove starts at quantity one", func(t *testing.T) {
		c := NewCart(1)
		c.Add(watch())
		c.UpdateQuantity("p1", 4)
		c.Remove("p1")
		c.Add(watch())
		assert.Equal(t, 1, c.Items()[0].Quantity)
	})

	t.Run("Clear empties the basket", func(t *testing.T) {
		c := NewCart(1)
		c.Add(watch())
		c.Add(keyboard())
		c.Clear()
		assert.Equal(t, 0, c.Len())
		assert.Zero(t, c.Total())
	})
}
