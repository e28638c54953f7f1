package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-backend/apperrors"
	"storefront-backend/store"
)

func newUserRouter(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	st, _ := newTestStore(t)
	uc := NewUserController(st)

	r := gin.New()
	r.Use(apperrors.ErrorMiddleware())
	r.GET("/users", uc.GetUsers)
	r.POST("/users", uc.CreateUser)
	r.PUT("/users/:id", uc.UpdateUser)
	r.DELETE("/users/:id", uc.DeleteUser)
	r.POST("/wishlist/:productId", uc.ToggleWishlist)
	return r, st
}

func TestGetUsersStripsPasswords(t *testing.T) {
	r, _ := newUserRouter(t)
	w := doJSON(t, r, http.MethodGet, "/users", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "admin123")
}

func TestCreateUserEndpoint(t *testing.T) {
	t.Run("Employee with permissions", func(t *testing.T) {
		r, st := newUserRouter(t)
		w := doJSON(t, r, http.MethodPost, "/users", gin.H{
			"name": "Clerk", "email": "clerk@x.com", "password": "secret1",
			"role": "employee", "permissions": []string{"pos"},
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		require.Len(t, st.Users(), 2)
	})

	t.Run("Unknown role - 400", func(t *testing.T) {
		r, _ := newUserRouter(t)
		w := doJSON(t, r, http.MethodPost, "/users", gin.H{
			"name": "X", "email": "x@x.com", "password": "secret1", "role": "superuser",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDeleteUserEndpoint(t *testing.T) {
	r, st := newUserRouter(t)
	admin := st.Users()[0]

	w := doJSON(t, r, http.MethodDelete, "/users/"+admin.ID, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Len(t, st.Users(), 1)
}

func TestToggleWishlistEndpoint(t *testing.T) {
	t.Run("Requires a session", func(t *testing.T) {
		r, st := newUserRouter(t)
		w := doJSON(t, r, http.MethodPost, "/wishlist/"+st.Products()[0].ID, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Toggles for the session user", func(t *testing.T) {
		r, st := newUserRouter(t)
		_, ok := st.Login(context.Background(), "admin@aliexpress.com", "admin123")
		require.True(t, ok)
		p := st.Products()[0]

		w := doJSON(t, r, http.MethodPost, "/wishlist/"+p.ID, nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Wishlist []string `json:"wishlist"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Contains(t, body.Wishlist, p.ID)

		w = doJSON(t, r, http.MethodPost, "/wishlist/"+p.ID, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.NotContains(t, body.Wishlist, p.ID)
	})

	t.Run("Unknown product - 404", func(t *testing.T) {
		r, st := newUserRouter(t)
		_, ok := st.Login(context.Background(), "admin@aliexpress.com", "admin123")
		require.True(t, ok)

		w := doJSON(t, r, http.MethodPost, "/wishlist/missing", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
