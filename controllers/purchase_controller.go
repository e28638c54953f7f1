package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront-backend/apperrors"
	"storefront-backend/services"
	"storefront-backend/store"
)

// PurchaseController covers replenishment: the pending line editor, the
// submitted purchase history, and submission itself.
type PurchaseController struct {
	store    *store.Store
	recorder *services.PurchaseRecorder
}

func NewPurchaseController(st *store.Store, recorder *services.PurchaseRecorder) *PurchaseController {
	return &PurchaseController{store: st, recorder: recorder}
}

// GetPurchases lists the submitted purchase history.
func (pc *PurchaseController) GetPurchases(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"purchases": pc.store.Purchases()})
}

func (pc *PurchaseController) pending() gin.H {
	return gin.H{
		"lines": pc.recorder.Lines(),
		"total": pc.recorder.PendingTotal(),
	}
}

// GetPending returns the pending lines being assembled.
func (pc *PurchaseController) GetPending(c *gin.Context) {
	c.JSON(http.StatusOK, pc.pending())
}

// AddLine appends a pending replenishment line.
func (pc *PurchaseController) AddLine(c *gin.Context) {
	var req struct {
		ProductID string  `json:"productId"`
		Quantity  int     `json:"quantity"`
		UnitCost  float64 `json:"unitCost"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ProductID == "" {
		respondError(c, apperrors.New(http.StatusBadRequest, "productId is required", err))
		return
	}
	if err := pc.recorder.AddLine(req.ProductID, req.Quantity, req.UnitCost); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pc.pending())
}

// RemoveLine deletes the pending line at the index.
func (pc *PurchaseController) RemoveLine(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		respondError(c, apperrors.New(http.StatusBadRequest, "index must be a number", err))
		return
	}
	if err := pc.recorder.RemoveLine(index); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pc.pending())
}

// ClearPending drops every pending line.
func (pc *PurchaseController) ClearPending(c *gin.Context) {
	pc.recorder.Clear()
	c.JSON(http.StatusOK, pc.pending())
}

// Submit records the pending lines as one purchase and applies the stock
// increments.
func (pc *PurchaseController) Submit(c *gin.Context) {
	var req struct {
		Supplier string `json:"supplier"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Wrap(apperrors.ErrValidation, err))
		return
	}
	purchase, res, err := pc.recorder.Submit(c.Request.Context(), req.Supplier)
	if err != nil {
		respondError(c, err)
		return
	}

	body := resultFields(res)
	body["purchase"] = purchase
	c.JSON(http.StatusCreated, body)
}
