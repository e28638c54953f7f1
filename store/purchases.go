package store

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storefront-backend/models"
)

// AddPurchase records a supplier purchase: the structural mirror of
// AddSale, except that each line increments the referenced product's stock
// instead of decrementing it. The increments are best-effort and not
// transactional with the purchase insert.
func (s *Store) AddPurchase(ctx context.Context, purchase models.Purchase) (models.Purchase, Result, error) {
	tempID := purchase.ID
	if tempID == "" {
		tempID = uuid.NewString()
	}
	purchase.ID = tempID
	purchase.Items = append([]models.PurchaseItem(nil), purchase.Items...)

	s.mu.Lock()
	s.purchases = append([]models.Purchase{purchase}, s.purchases...)
	s.mu.Unlock()

	toInsert := purchase
	toInsert.ID = ""
	inserted, err := s.gw.InsertPurchase(ctx, toInsert)
	if err != nil {
		s.log.Error("recording purchase remotely failed, keeping optimistic entry",
			zap.String("tempId", tempID), zap.Error(err))
		return purchase, localOnly(err), nil
	}

	s.mu.Lock()
	for i := range s.purchases {
		if s.purchases[i].ID == tempID {
			s.purchases[i] = inserted
			break
		}
	}
	s.mu.Unlock()

	res := confirmed()
	for _, item := range inserted.Items {
		current, ok := s.Product(item.ProductID)
		if !ok {
			continue
		}
		stockRes := s.updateStockUnchecked(ctx, item.ProductID, current.Stock+item.Quantity)
		if stockRes.RemoteErr != nil {
			res.RemoteErr = stockRes.RemoteErr
		}
	}
	return inserted, res, nil
}
