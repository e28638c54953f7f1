package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-backend/models"
)

func TestAddProduct(t *testing.T) {
	t.Run("Confirmed insert adopts the backend id", func(t *testing.T) {
		st, gw := newLoadedStore(t)

		created, res, err := st.AddProduct(context.Background(), models.Product{
			Name: "USB Hub", Price: 12, Cost: 4, Stock: 30,
		})
		require.NoError(t, err)
		assert.True(t, res.Confirmed)
		assert.NotEmpty(t, created.ID)

		got, ok := st.Product(created.ID)
		require.True(t, ok)
		assert.Equal(t, "USB Hub", got.Name)
		assert.Equal(t, 5, gw.Calls["InsertProduct"]) // 4 seeds + this one
	})

	t.Run("Remote failure keeps the optimistic entry", func(t *testing.T) {
		st, gw := newLoadedStore(t)
		gw.InsertErr = errors.New("boom")

		created, res, err := st.AddProduct(context.Background(), models.Product{
			Name: "Ghost", Price: 5,
		})
		require.NoError(t, err)
		assert.False(t, res.Confirmed)
		assert.Error(t, res.RemoteErr)

		_, ok := st.Product(created.ID)
		assert.True(t, ok, "optimistic entry should remain in the mirror")
	})

	t.Run("Validation failure changes nothing", func(t *testing.T) {
		st, _ := newLoadedStore(t)
		before := len(st.Products())

		_, _, err := st.AddProduct(context.Background(), models.Product{
			Name: "Bad Margin", Price: 5, Cost: 10,
		})
		assert.ErrorIs(t, err, models.ErrPriceBelowCost)
		assert.Len(t, st.Products(), before)
	})

	t.Run("Duplicate code is rejected", func(t *testing.T) {
		st, _ := newLoadedStore(t)
		_, _, err := st.AddProduct(context.Background(), models.Product{Name: "A", Code: "SKU-1", Price: 1})
		require.NoError(t, err)

		_, _, err = st.AddProduct(context.Background(), models.Product{Name: "B", Code: "SKU-1", Price: 2})
		assert.ErrorIs(t, err, ErrDuplicateCode)
	})
}

func TestUpdateProduct(t *testing.T) {
	t.Run("Patch touches only set fields", func(t *testing.T) {
		st, _ := newLoadedStore(t)
		target := st.Products()[0]

		price := target.Price + 10
		res, err := st.UpdateProduct(context.Background(), target.ID, models.ProductPatch{Price: &price})
		require.NoError(t, err)
		assert.True(t, res.Confirmed)

		got, ok := st.Product(target.ID)
		require.True(t, ok)
		assert.Equal(t, price, got.Price)
		assert.Equal(t, target.Name, got.Name)
		assert.Equal(t, target.Stock, got.Stock)
	})

	t.Run("Invariant-breaking patch is rejected whole", func(t *testing.T) {
		st, _ := newLoadedStore(t)
		target := st.Products()[0]

		badPrice := target.Cost - 1
		_, err := st.UpdateProduct(context.Background(), target.ID, models.ProductPatch{Price: &badPrice})
		assert.ErrorIs(t, err, models.ErrPriceBelowCost)

		got, _ := st.Product(target.ID)
		assert.Equal(t, target.Price, got.Price, "rejected patch must leave prior state")
	})

	t.Run("Unknown id", func(t *testing.T) {
		st, _ := newLoadedStore(t)
		name := "x"
		_, err := st.UpdateProduct(context.Background(), "missing", models.ProductPatch{Name: &name})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDeleteProduct(t *testing.T) {
	t.Run("Removes locally and remotely", func(t *testing.T) {
		st, gw := newLoadedStore(t)
		target := st.Products()[0]

		res, err := st.DeleteProduct(context.Background(), target.ID)
		require.NoError(t, err)
		assert.True(t, res.Confirmed)
		_, ok := st.Product(target.ID)
		assert.False(t, ok)
		assert.Equal(t, 1, gw.Calls["DeleteProduct"])
	})

	t.Run("Sale history keeps its snapshot after deletion", func(t *testing.T) {
		st, _ := newLoadedStore(t)
		target := st.Products()[0]

		st.Cart().Add(target)
		sale := models.Sale{
			Items:         st.Cart().Items(),
			Total:         st.Cart().Total(),
			PaymentMethod: models.PaymentCash,
		}
		_, _, err := st.AddSale(context.Background(), sale)
		require.NoError(t, err)

		_, err = st.DeleteProduct(context.Background(), target.ID)
		require.NoError(t, err)

		sales := st.Sales()
		require.Len(t, sales, 1)
		require.Len(t, sales[0].Items, 1)
		assert.Equal(t, target.Name, sales[0].Items[0].Name)
	})
}
