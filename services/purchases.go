package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"storefront-backend/models"
	"storefront-backend/store"
)

var (
	ErrSupplierRequired = errors.New("purchases: supplier is required")
	ErrNoPurchaseLines  = errors.New("purchases: at least one line is required")
	ErrBadLineIndex     = errors.New("purchases: no such pending line")
	ErrBadQuantity      = errors.New("purchases: quantity must be at least 1")
	ErrBadUnitCost      = errors.New("purchases: unit cost must not be negative")
)

// PurchaseRecorder accumulates pending replenishment lines and submits
// them as one immutable purchase. Lines reference catalog products; a
// product created inline through the store becomes selectable immediately.
type PurchaseRecorder struct {
	store *store.Store

	mu    sync.Mutex
	lines []models.PurchaseItem
}

func NewPurchaseRecorder(st *store.Store) *PurchaseRecorder {
	return &PurchaseRecorder{store: st}
}

// AddLine appends a pending line for the product at the given quantity and
// unit cost. The product name and code are denormalized into the line.
func (pr *PurchaseRecorder) AddLine(productID string, quantity int, unitCost float64) error {
	if quantity < 1 {
		return ErrBadQuantity
	}
	if unitCost < 0 {
		return ErrBadUnitCost
	}
	p, ok := pr.store.Product(productID)
	if !ok {
		return store.ErrNotFound
	}

	pr.mu.Lock()
	defer pr.mu.Unlock()
	pr.lines = append(pr.lines, models.PurchaseItem{
		ProductID: p.ID,
		Name:      p.Name,
		Code:      p.Code,
		Quantity:  quantity,
		UnitCost:  unitCost,
	})
	return nil
}

// RemoveLine deletes the pending line at the index.
func (pr *PurchaseRecorder) RemoveLine(index int) error {
	pr.mu.Lock()
	defer pr.mu.Unlock()
	if index < 0 || index >= len(pr.lines) {
		return ErrBadLineIndex
	}
	pr.lines = append(pr.lines[:index], pr.lines[index+1:]...)
	return nil
}

// Lines returns a copy of the pending lines.
func (pr *PurchaseRecorder) Lines() []models.PurchaseItem {
	pr.mu.Lock()
	defer pr.mu.Unlock()
	return append([]models.PurchaseItem(nil), pr.lines...)
}

// PendingTotal is the sum of unit cost times quantity over pending lines.
func (pr *PurchaseRecorder) PendingTotal() float64 {
	pr.mu.Lock()
	defer pr.mu.Unlock()
	var total float64
	for i := range pr.lines {
		total += pr.lines[i].LineTotal()
	}
	return total
}

// Clear drops all pending lines.
func (pr *PurchaseRecorder) Clear() {
	pr.mu.Lock()
	defer pr.mu.Unlock()
	pr.lines = nil
}

// Submit persists the pending lines as a purchase for the supplier. The
// store turns each line into a per-product stock increment. On success the
// pending list is cleared; a blocked submission leaves it editable.
func (pr *PurchaseRecorder) Submit(ctx context.Context, supplier string) (models.Purchase, store.Result, error) {
	if supplier == "" {
		return models.Purchase{}, store.Result{}, ErrSupplierRequired
	}

	pr.mu.Lock()
	if len(pr.lines) == 0 {
		pr.mu.Unlock()
		return models.Purchase{}, store.Result{}, ErrNoPurchaseLines
	}
	items := append([]models.PurchaseItem(nil), pr.lines...)
	pr.mu.Unlock()

	var total float64
	for i := range items {
		total += items[i].LineTotal()
	}

	purchase := models.Purchase{
		Supplier: supplier,
		Date:     time.Now().UTC(),
		Total:    total,
		Items:    items,
	}
	recorded, res, err := pr.store.AddPurchase(ctx, purchase)
	if err != nil {
		return models.Purchase{}, store.Result{}, err
	}

	pr.mu.Lock()
	pr.lines = nil
	pr.mu.Unlock()
	return recorded, res, nil
}
