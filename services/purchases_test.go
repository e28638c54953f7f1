package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-backend/store"
)

func TestPurchaseRecorder(t *testing.T) {
	t.Run("Lines denormalize the product name and code", func(t *testing.T) {
		st, _ := newLoadedStore(t)
		pr := NewPurchaseRecorder(st)
		p := st.Products()[0]

		require.NoError(t, pr.AddLine(p.ID, 10, 4.5))
		lines := pr.Lines()
		require.Len(t, lines, 1)
		assert.Equal(t, p.Name, lines[0].Name)
		assert.Equal(t, p.Code, lines[0].Code)
		assert.InDelta(t, 45.0, pr.PendingTotal(), 1e-9)
	})

	t.Run("Line validation", func(t *testing.T) {
		st, _ := newLoadedStore(t)
		pr := NewPurchaseRecorder(st)
		p := st.Products()[0]

		assert.ErrorIs(t, pr.AddLine(p.ID, 0, 1), ErrBadQuantity)
		assert.ErrorIs(t, pr.AddLine(p.ID, 1, -1), ErrBadUnitCost)
		assert.ErrorIs(t, pr.AddLine("missing", 1, 1), store.ErrNotFound)
		assert.Empty(t, pr.Lines())
	})

	t.Run("RemoveLine by index", func(t *testing.T) {
		st, _ := newLoadedStore(t)
		pr := NewPurchaseRecorder(st)
		products := st.Products()
		require.NoError(t, pr.AddLine(products[0].ID, 1, 1))
		require.NoError(t, pr.AddLine(products[1].ID, 2, 2))

		require.NoError(t, pr.RemoveLine(0))
		lines := pr.Lines()
		require.Len(t, lines, 1)
		assert.Equal(t, products[1].ID, lines[0].ProductID)

		assert.ErrorIs(t, pr.RemoveLine(5), ErrBadLineIndex)
	})

	t.Run("Submit records the purchase and clears pending lines", func(t *testing.T) {
		st, _ := newLoadedStore(t)
		pr := NewPurchaseRecorder(st)
		p := st.Products()[0]
		require.NoError(t, pr.AddLine(p.ID, 10, 4))

		purchase, res, err := pr.Submit(context.Background(), "ACME Wholesale")
		require.NoError(t, err)
		assert.True(t, res.Confirmed)
		assert.Equal(t, "ACME Wholesale", purchase.Supplier)
		assert.InDelta(t, 40.0, purchase.Total, 1e-9)
		assert.Empty(t, pr.Lines())

		got, _ := st.Product(p.ID)
		assert.Equal(t, p.Stock+10, got.Stock)
	})

	t.Run("Blocked submission keeps the pending lines editable", func(t *testing.T) {
		st, _ := newLoadedStore(t)
		pr := NewPurchaseRecorder(st)

		_, _, err := pr.Submit(context.Background(), "ACME")
		assert.ErrorIs(t, err, ErrNoPurchaseLines)

		require.NoError(t, pr.AddLine(st.Products()[0].ID, 1, 1))
		_, _, err = pr.Submit(context.Background(), "")
		assert.ErrorIs(t, err, ErrSupplierRequired)
		assert.Len(t, pr.Lines(), 1)
	})
}
