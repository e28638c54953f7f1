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
	"storefront-backend/services"
	"storefront-backend/store"
)

func newAuthRouter(t *testing.T) (*gin.Engine, *store.Store, *services.RecoveryService, *recordingSender) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	st, _ := newTestStore(t)
	sender := &recordingSender{}
	recovery := services.NewRecoveryService(st, sender, nil)
	ac := NewAuthController(st, recovery)

	r := gin.New()
	r.Use(apperrors.ErrorMiddleware())
	r.POST("/auth/login", ac.Login)
	r.POST("/auth/register", ac.Register)
	r.POST("/auth/logout", ac.Logout)
	r.GET("/auth/me", ac.Me)
	r.POST("/auth/recovery", ac.BeginRecovery)
	r.POST("/auth/recovery/complete", ac.CompleteRecovery)
	return r, st, recovery, sender
}

type recordingSender struct {
	email string
	code  string
}

func (s *recordingSender) SendRecoveryCode(email, code string) error {
	s.email = email
	s.code = code
	return nil
}

func TestLoginEndpoint(t *testing.T) {
	t.Run("Success - 200 OK without the password", func(t *testing.T) {
		r, _, _, _ := newAuthRouter(t)
		w := doJSON(t, r, http.MethodPost, "/auth/login", gin.H{
			"email": "admin@aliexpress.com", "password": "admin123",
		})

		assert.Equal(t, http.StatusOK, w.Code)
		var body struct {
			User struct {
				Email    string `json:"email"`
				Password string `json:"password"`
				Role     string `json:"role"`
			} `json:"user"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "admin@aliexpress.com", body.User.Email)
		assert.Equal(t, "admin", body.User.Role)
		assert.Empty(t, body.User.Password)
	})

	t.Run("Wrong credentials - 401", func(t *testing.T) {
		r, _, _, _ := newAuthRouter(t)
		w := doJSON(t, r, http.MethodPost, "/auth/login", gin.H{
			"email": "admin@aliexpress.com", "password": "nope",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Malformed email - 400", func(t *testing.T) {
		r, _, _, _ := newAuthRouter(t)
		w := doJSON(t, r, http.MethodPost, "/auth/login", gin.H{
			"email": "not-an-email", "password": "x",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRegisterEndpoint(t *testing.T) {
	t.Run("Role is forced to shopper", func(t *testing.T) {
		r, st, _, _ := newAuthRouter(t)
		w := doJSON(t, r, http.MethodPost, "/auth/register", gin.H{
			"name": "Eve", "email": "eve@x.com", "password": "secret1", "role": "admin",
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		users := st.Users()
		require.Len(t, users, 2)
		for _, u := range users {
			if u.Email == "eve@x.com" {
				assert.Equal(t, "shopper", string(u.Role))
			}
		}
	})

	t.Run("Short password - 400", func(t *testing.T) {
		r, _, _, _ := newAuthRouter(t)
		w := doJSON(t, r, http.MethodPost, "/auth/register", gin.H{
			"name": "Eve", "email": "eve@x.com", "password": "abc",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSessionEndpoints(t *testing.T) {
	r, _, _, _ := newAuthRouter(t)

	w := doJSON(t, r, http.MethodGet, "/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	doJSON(t, r, http.MethodPost, "/auth/login", gin.H{
		"email": "admin@aliexpress.com", "password": "admin123",
	})
	w = doJSON(t, r, http.MethodGet, "/auth/me", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	doJSON(t, r, http.MethodPost, "/auth/logout", nil)
	w = doJSON(t, r, http.MethodGet, "/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRecoveryEndpoints(t *testing.T) {
	t.Run("Full reset flow", func(t *testing.T) {
		r, st, _, sender := newAuthRouter(t)

		w := doJSON(t, r, http.MethodPost, "/auth/recovery", gin.H{"email": "admin@aliexpress.com"})
		assert.Equal(t, http.StatusOK, w.Code)
		require.NotEmpty(t, sender.code)

		w = doJSON(t, r, http.MethodPost, "/auth/recovery/complete", gin.H{
			"email": "admin@aliexpress.com", "code": sender.code, "newPassword": "brandnew1",
		})
		assert.Equal(t, http.StatusOK, w.Code)

		_, ok := st.Login(context.Background(), "admin@aliexpress.com", "brandnew1")
		assert.True(t, ok)
	})

	t.Run("Unknown email - 422", func(t *testing.T) {
		r, _, _, _ := newAuthRouter(t)
		w := doJSON(t, r, http.MethodPost, "/auth/recovery", gin.H{"email": "nobody@x.com"})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Bad code - 422", func(t *testing.T) {
		r, _, _, _ := newAuthRouter(t)
		doJSON(t, r, http.MethodPost, "/auth/recovery", gin.H{"email": "admin@aliexpress.com"})
		w := doJSON(t, r, http.MethodPost, "/auth/recovery/complete", gin.H{
			"email": "admin@aliexpress.com", "code": "000", "newPassword": "x1",
		})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}
