package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-backend/apperrors"
	"storefront-backend/gateway"
	"storefront-backend/services"
	"storefront-backend/store"
)

func newCartRouter(t *testing.T) (*gin.Engine, *store.Store, *gateway.Memory) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	st, gw := newTestStore(t)
	cc := NewCartController(st, st.Cart(), services.NewStorefrontCheckout(st, nil))

	r := gin.New()
	r.Use(apperrors.ErrorMiddleware())
	r.GET("/cart", cc.GetCart)
	r.POST("/cart/items", cc.AddItem)
	r.PUT("/cart/items/:id", cc.UpdateQuantity)
	r.DELETE("/cart/items/:id", cc.RemoveItem)
	r.DELETE("/cart", cc.ClearCart)
	r.POST("/cart/checkout", cc.Checkout)
	return r, st, gw
}

func cartCount(t *testing.T, body []byte) int {
	t.Helper()
	var resp struct {
		Items []json.RawMessage `json:"items"`
	}
	require.NoError(t, json.Unmarshal(body, &resp))
	return len(resp.Items)
}

func TestCartEndpoints(t *testing.T) {
	t.Run("Add merges repeat items", func(t *testing.T) {
		r, st, _ := newCartRouter(t)
		p := st.Products()[0]

		w := doJSON(t, r, http.MethodPost, "/cart/items", gin.H{"productId": p.ID})
		assert.Equal(t, http.StatusOK, w.Code)
		w = doJSON(t, r, http.MethodPost, "/cart/items", gin.H{"productId": p.ID})
		assert.Equal(t, http.StatusOK, w.Code)

		assert.Equal(t, 1, cartCount(t, w.Body.Bytes()))
		assert.Equal(t, 2, st.Cart().Items()[0].Quantity)
	})

	t.Run("Unknown product - 404", func(t *testing.T) {
		r, _, _ := newCartRouter(t)
		w := doJSON(t, r, http.MethodPost, "/cart/items", gin.H{"productId": "missing"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Quantity below the floor is clamped", func(t *testing.T) {
		r, st, _ := newCartRouter(t)
		p := st.Products()[0]
		doJSON(t, r, http.MethodPost, "/cart/items", gin.H{"productId": p.ID})

		w := doJSON(t, r, http.MethodPut, "/cart/items/"+p.ID, gin.H{"quantity": 0})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, st.Cart().Items()[0].Quantity)
	})

	t.Run("Remove and clear", func(t *testing.T) {
		r, st, _ := newCartRouter(t)
		products := st.Products()
		doJSON(t, r, http.MethodPost, "/cart/items", gin.H{"productId": products[0].ID})
		doJSON(t, r, http.MethodPost, "/cart/items", gin.H{"productId": products[1].ID})

		w := doJSON(t, r, http.MethodDelete, "/cart/items/"+products[0].ID, nil)
		assert.Equal(t, 1, cartCount(t, w.Body.Bytes()))

		w = doJSON(t, r, http.MethodDelete, "/cart", nil)
		assert.Equal(t, 0, cartCount(t, w.Body.Bytes()))
	})
}

func TestCheckoutEndpoint(t *testing.T) {
	t.Run("Success - 200 OK with receipt", func(t *testing.T) {
		r, st, _ := newCartRouter(t)
		p := st.Products()[0]
		doJSON(t, r, http.MethodPost, "/cart/items", gin.H{"productId": p.ID})

		w := doJSON(t, r, http.MethodPost, "/cart/checkout", gin.H{"paymentMethod": "card"})
		assert.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Receipt struct {
				SaleID    string  `json:"saleId"`
				Reference string  `json:"reference"`
				Total     float64 `json:"total"`
			} `json:"receipt"`
			State string `json:"state"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.NotEmpty(t, body.Receipt.SaleID)
		assert.Len(t, body.Receipt.Reference, 6)
		assert.Equal(t, "settled", body.State)
		assert.Zero(t, st.Cart().Len())
	})

	t.Run("Empty cart - 400", func(t *testing.T) {
		r, _, _ := newCartRouter(t)
		w := doJSON(t, r, http.MethodPost, "/cart/checkout", gin.H{"paymentMethod": "card"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Wallet without approval code - 400", func(t *testing.T) {
		r, st, _ := newCartRouter(t)
		doJSON(t, r, http.MethodPost, "/cart/items", gin.H{"productId": st.Products()[0].ID})

		w := doJSON(t, r, http.MethodPost, "/cart/checkout", gin.H{"paymentMethod": "yape"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, 1, st.Cart().Len())
	})

	t.Run("Backend failure - 502, cart intact", func(t *testing.T) {
		r, st, gw := newCartRouter(t)
		doJSON(t, r, http.MethodPost, "/cart/items", gin.H{"productId": st.Products()[0].ID})
		gw.InsertErr = errors.New("backend down")

		w := doJSON(t, r, http.MethodPost, "/cart/checkout", gin.H{"paymentMethod": "card"})
		assert.Equal(t, http.StatusBadGateway, w.Code)

		var resp struct {
			Code int `json:"code"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, http.StatusBadGateway, resp.Code)
		assert.Equal(t, 1, st.Cart().Len())
		assert.Empty(t, st.Sales())
	})
}
