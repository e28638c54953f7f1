package store

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storefront-backend/models"
)

// AddSale records a transaction: optimistic prepend under a temporary id,
// remote insert, id reconciliation, then one stock decrement per line item
// through the product patch path. The decrements are sequential and not
// transactional with the sale insert; if one fails the sale stands and the
// divergence is logged. Stock is allowed to go negative.
func (s *Store) AddSale(ctx context.Context, sale models.Sale) (models.Sale, Result, error) {
	if _, err := models.ParsePaymentMethod(string(sale.PaymentMethod)); err != nil {
		return models.Sale{}, Result{}, err
	}

	tempID := sale.ID
	if tempID == "" {
		tempID = uuid.NewString()
	}
	sale.ID = tempID
	sale.Items = append([]models.CartItem(nil), sale.Items...)

	s.mu.Lock()
	s.sales = append([]models.Sale{sale}, s.sales...)
	s.mu.Unlock()

	toInsert := sale
	toInsert.ID = ""
	inserted, err := s.gw.InsertSale(ctx, toInsert)
	if err != nil {
		s.log.Error("recording sale remotely failed, keeping optimistic entry",
			zap.String("tempId", tempID), zap.Error(err))
		return sale, localOnly(err), nil
	}

	s.mu.Lock()
	for i := range s.sales {
		if s.sales[i].ID == tempID {
			s.sales[i] = inserted
			break
		}
	}
	s.mu.Unlock()

	res := confirmed()
	for _, item := range inserted.Items {
		current, ok := s.Product(item.ID)
		if !ok {
			continue
		}
		stockRes := s.updateStockUnchecked(ctx, item.ID, current.Stock-item.Quantity)
		if stockRes.RemoteErr != nil {
			// Sale persisted but inventory diverged; surfaced, not retried.
			res.RemoteErr = stockRes.RemoteErr
		}
	}
	return inserted, res, nil
}

// RemoveLocalSale drops a sale from the mirror without touching the
// backend. Callers that get a local-only Result from AddSale use this to
// roll the optimistic entry back instead of living with the divergence.
func (s *Store) RemoveLocalSale(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.sales {
		if s.sales[i].ID == id {
			s.sales = append(s.sales[:i], s.sales[i+1:]...)
			return
		}
	}
}
