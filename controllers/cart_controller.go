package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-backend/apperrors"
	"storefront-backend/services"
	"storefront-backend/store"
)

// CartController exposes one basket plus its checkout flow. The storefront
// and point-of-sale routes each mount their own instance over their own
// cart and recorder.
type CartController struct {
	store    *store.Store
	cart     *store.Cart
	checkout *services.CheckoutService
}

func NewCartController(st *store.Store, cart *store.Cart, checkout *services.CheckoutService) *CartController {
	return &CartController{store: st, cart: cart, checkout: checkout}
}

func (cc *CartController) contents() gin.H {
	return gin.H{
		"items": cc.cart.Items(),
		"total": cc.cart.Total(),
		"count": cc.cart.Len(),
	}
}

// GetCart returns the basket contents.
func (cc *CartController) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, cc.contents())
}

// AddItem adds one unit of a product. A repeat add bumps the existing
// line's quantity instead of creating a duplicate line.
func (cc *CartController) AddItem(c *gin.Context) {
	var req struct {
		ProductID string `json:"productId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ProductID == "" {
		respondError(c, apperrors.New(http.StatusBadRequest, "productId is required", err))
		return
	}
	p, ok := cc.store.Product(req.ProductID)
	if !ok {
		respondError(c, store.ErrNotFound)
		return
	}
	cc.cart.Add(p)
	c.JSON(http.StatusOK, cc.contents())
}

// UpdateQuantity sets a line's quantity. Requests below the floor are
// clamped up rather than removing the line.
func (cc *CartController) UpdateQuantity(c *gin.Context) {
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Wrap(apperrors.ErrValidation, err))
		return
	}
	cc.cart.UpdateQuantity(c.Param("id"), req.Quantity)
	c.JSON(http.StatusOK, cc.contents())
}

// RemoveItem drops a line entirely.
func (cc *CartController) RemoveItem(c *gin.Context) {
	cc.cart.Remove(c.Param("id"))
	c.JSON(http.StatusOK, cc.contents())
}

// ClearCart empties the basket.
func (cc *CartController) ClearCart(c *gin.Context) {
	cc.cart.Clear()
	c.JSON(http.StatusOK, cc.contents())
}

// Checkout runs one settlement attempt against the basket.
func (cc *CartController) Checkout(c *gin.Context) {
	var req services.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Wrap(apperrors.ErrValidation, err))
		return
	}
	receipt, err := cc.checkout.Process(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"receipt": receipt, "state": cc.checkout.State()})
}
