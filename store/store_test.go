package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-backend/gateway"
	"storefront-backend/models"
)

// newLoadedStore returns a store backed by a fresh memory gateway after a
// successful Load, which seeds the bootstrap dataset.
func newLoadedStore(t *testing.T) (*Store, *gateway.Memory) {
	t.Helper()
	gw := gateway.NewMemory()
	st := New(gw, nil)
	require.NoError(t, st.Load(context.Background()))
	return st, gw
}

func TestLoad(t *testing.T) {
	t.Run("Empty backend is seeded once", func(t *testing.T) {
		st, gw := newLoadedStore(t)

		assert.Len(t, st.Products(), 4)
		users := st.Users()
		require.Len(t, users, 1)
		assert.Equal(t, "admin@aliexpress.com", users[0].Email)
		assert.Equal(t, models.RoleAdmin, users[0].Role)
		assert.Equal(t, 4, gw.Calls["InsertProduct"])
		assert.Equal(t, 1, gw.Calls["InsertUser"])

		// A reload finds the seeded data and does not seed again.
		require.NoError(t, st.Load(context.Background()))
		assert.Equal(t, 4, gw.Calls["InsertProduct"])
		assert.Len(t, st.Products(), 4)
	})

	t.Run("Existing data is not reseeded", func(t *testing.T) {
		gw := gateway.NewMemory()
		_, err := gw.InsertUser(context.Background(), models.User{Name: "Solo", Email: "solo@x.com"})
		require.NoError(t, err)

		st := New(gw, nil)
		require.NoError(t, st.Load(context.Background()))

		assert.Empty(t, st.Products())
		assert.Len(t, st.Users(), 1)
		assert.Zero(t, gw.Calls["InsertProduct"])
	})

	t.Run("Fetch failure falls back to bootstrap data", func(t *testing.T) {
		gw := gateway.NewMemory()
		gw.ListErr = errors.New("connection refused")

		st := New(gw, nil)
		err := st.Load(context.Background())
		assert.Error(t, err)
		assert.True(t, st.Degraded())
		assert.Len(t, st.Products(), 4)
		assert.Len(t, st.Users(), 1)
	})

	t.Run("Recovery clears the degraded flag", func(t *testing.T) {
		gw := gateway.NewMemory()
		gw.ListErr = errors.New("connection refused")
		st := New(gw, nil)
		_ = st.Load(context.Background())
		require.True(t, st.Degraded())

		gw.ListErr = nil
		require.NoError(t, st.Load(context.Background()))
		assert.False(t, st.Degraded())
	})
}

func TestAccessorsCopyOut(t *testing.T) {
	st, _ := newLoadedStore(t)

	products := st.Products()
	products[0].Name = "Mutated"
	fresh, ok := st.Product(products[0].ID)
	require.True(t, ok)
	assert.NotEqual(t, "Mutated", fresh.Name)
}
