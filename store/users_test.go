package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-backend/models"
)

func addShopper(t *testing.T, st *Store, email string) models.User {
	t.Helper()
	u, res := st.Register(context.Background(), models.User{
		Name: "Shopper", Email: email, Password: "secret1",
	})
	require.True(t, res.Confirmed)
	return u
}

func TestLogin(t *testing.T) {
	t.Run("Exact credential match sets the session", func(t *testing.T) {
		st, _ := newLoadedStore(t)

		u, ok := st.Login(context.Background(), "admin@aliexpress.com", "admin123")
		require.True(t, ok)
		assert.Equal(t, models.RoleAdmin, u.Role)

		current, has := st.CurrentUser()
		require.True(t, has)
		assert.Equal(t, u.ID, current.ID)
	})

	t.Run("Wrong password fails without a session", func(t *testing.T) {
		st, _ := newLoadedStore(t)
		_, ok := st.Login(context.Background(), "admin@aliexpress.com", "wrong")
		assert.False(t, ok)
		_, has := st.CurrentUser()
		assert.False(t, has)
	})

	t.Run("Login sees credentials changed behind the mirror", func(t *testing.T) {
		st, gw := newLoadedStore(t)
		admin := st.Users()[0]

		// Rotate the password directly in the backend, bypassing the store.
		pw := "rotated"
		require.NoError(t, gw.UpdateUser(context.Background(), admin.ID, models.UserPatch{Password: &pw}))

		_, ok := st.Login(context.Background(), admin.Email, "admin123")
		assert.False(t, ok, "stale mirror must not accept revoked credentials")
		_, ok = st.Login(context.Background(), admin.Email, "rotated")
		assert.True(t, ok)
	})
}

func TestRegister(t *testing.T) {
	st, _ := newLoadedStore(t)

	u, res := st.Register(context.Background(), models.User{
		Name: "Eve", Email: "eve@x.com", Password: "pw1234",
		Role: models.RoleAdmin, // must be ignored
	})
	assert.True(t, res.Confirmed)
	assert.Equal(t, models.RoleShopper, u.Role)
	assert.NotEmpty(t, u.ID)
	assert.False(t, u.CreatedAt.IsZero())
}

func TestLogout(t *testing.T) {
	st, _ := newLoadedStore(t)
	_, ok := st.Login(context.Background(), "admin@aliexpress.com", "admin123")
	require.True(t, ok)

	st.Cart().Add(st.Products()[0])
	st.Logout()

	_, has := st.CurrentUser()
	assert.False(t, has)
	assert.Equal(t, 1, st.Cart().Len(), "carts survive a logout")
}

func TestDeleteUser(t *testing.T) {
	t.Run("Admin accounts are never deletable", func(t *testing.T) {
		st, gw := newLoadedStore(t)
		admin := st.Users()[0]

		_, err := st.DeleteUser(context.Background(), admin.ID)
		assert.ErrorIs(t, err, ErrAdminUndeletable)
		assert.Len(t, st.Users(), 1)
		assert.Zero(t, gw.Calls["DeleteUser"], "blocked deletion must not reach the backend")
	})

	t.Run("Non-admin accounts are deletable", func(t *testing.T) {
		st, _ := newLoadedStore(t)
		shopper := addShopper(t, st, "gone@x.com")

		res, err := st.DeleteUser(context.Background(), shopper.ID)
		require.NoError(t, err)
		assert.True(t, res.Confirmed)
		assert.Len(t, st.Users(), 1)
	})
}

func TestUpdateUser(t *testing.T) {
	t.Run("Session copy follows a self-update", func(t *testing.T) {
		st, _ := newLoadedStore(t)
		u, ok := st.Login(context.Background(), "admin@aliexpress.com", "admin123")
		require.True(t, ok)

		name := "Renamed Admin"
		res, err := st.UpdateUser(context.Background(), u.ID, models.UserPatch{Name: &name})
		require.NoError(t, err)
		assert.True(t, res.Confirmed)

		current, _ := st.CurrentUser()
		assert.Equal(t, "Renamed Admin", current.Name)
	})

	t.Run("Invalid role is rejected", func(t *testing.T) {
		st, _ := newLoadedStore(t)
		u := st.Users()[0]

		bad := models.Role("superuser")
		_, err := st.UpdateUser(context.Background(), u.ID, models.UserPatch{Role: &bad})
		assert.Error(t, err)
	})
}

func TestToggleWishlist(t *testing.T) {
	st, _ := newLoadedStore(t)
	shopper := addShopper(t, st, "wish@x.com")
	p := st.Products()[0]

	res, err := st.ToggleWishlist(context.Background(), shopper.ID, p.ID)
	require.NoError(t, err)
	assert.True(t, res.Confirmed)

	var after models.User
	for _, u := range st.Users() {
		if u.ID == shopper.ID {
			after = u
		}
	}
	assert.True(t, after.InWishlist(p.ID))

	// Second toggle removes it.
	_, err = st.ToggleWishlist(context.Background(), shopper.ID, p.ID)
	require.NoError(t, err)
	for _, u := range st.Users() {
		if u.ID == shopper.ID {
			after = u
		}
	}
	assert.False(t, after.InWishlist(p.ID))
}
