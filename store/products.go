package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storefront-backend/models"
)

var (
	// ErrNotFound is returned when the target id is absent from the mirror.
	ErrNotFound = errors.New("store: record not found")
	// ErrDuplicateCode is returned when a product code is already taken.
	ErrDuplicateCode = errors.New("store: product code already in use")
)

// codeTaken reports whether another product already uses the code.
// Caller holds at least a read lock.
func (s *Store) codeTaken(code, exceptID string) bool {
	if code == "" {
		return false
	}
	for i := range s.products {
		if s.products[i].Code == code && s.products[i].ID != exceptID {
			return true
		}
	}
	return false
}

// AddProduct validates the product, appends it optimistically under a
// temporary id, then inserts it remotely. On success the optimistic entry
// is replaced by the gateway-confirmed record (authoritative id); on remote
// failure the unconfirmed entry stays, which is acceptable because products
// are idempotently re-creatable.
func (s *Store) AddProduct(ctx context.Context, p models.Product) (models.Product, Result, error) {
	if err := p.Validate(); err != nil {
		return models.Product{}, Result{}, err
	}

	s.mu.Lock()
	if s.codeTaken(p.Code, "") {
		s.mu.Unlock()
		return models.Product{}, Result{}, ErrDuplicateCode
	}
	tempID := p.ID
	if tempID == "" {
		tempID = uuid.NewString()
	}
	p.ID = tempID
	s.products = append(s.products, p)
	s.mu.Unlock()

	toInsert := p
	toInsert.ID = ""
	inserted, err := s.gw.InsertProduct(ctx, toInsert)
	if err != nil {
		s.log.Error("adding product remotely failed, keeping optimistic entry",
			zap.String("tempId", tempID), zap.Error(err))
		return p, localOnly(err), nil
	}

	s.mu.Lock()
	for i := range s.products {
		if s.products[i].ID == tempID {
			s.products[i] = inserted
			break
		}
	}
	s.mu.Unlock()
	return inserted, confirmed(), nil
}

// UpdateProduct merges the patch into the mirrored product after checking
// the invariants against the would-be result, then sends only the set
// fields remotely. A rejected patch leaves the prior state unchanged.
// Concurrent updates to the same product are last-writer-wins.
func (s *Store) UpdateProduct(ctx context.Context, id string, patch models.ProductPatch) (Result, error) {
	s.mu.Lock()
	idx := -1
	for i := range s.products {
		if s.products[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		s.mu.Unlock()
		return Result{}, ErrNotFound
	}

	next := s.products[idx]
	patch.Apply(&next)
	if err := next.Validate(); err != nil {
		s.mu.Unlock()
		return Result{}, err
	}
	if patch.Code != nil && s.codeTaken(*patch.Code, id) {
		s.mu.Unlock()
		return Result{}, ErrDuplicateCode
	}
	s.products[idx] = next
	s.mu.Unlock()

	if err := s.gw.UpdateProduct(ctx, id, patch); err != nil {
		s.log.Error("updating product remotely failed",
			zap.String("id", id), zap.Error(err))
		return localOnly(err), nil
	}
	return confirmed(), nil
}

// DeleteProduct removes the product optimistically and then remotely.
// Historical sales keep their denormalized item snapshots, so deletion
// never corrupts sale history. There is no undo if the remote delete
// fails; the divergence heals on the next Load.
func (s *Store) DeleteProduct(ctx context.Context, id string) (Result, error) {
	s.mu.Lock()
	found := false
	for i := range s.products {
		if s.products[i].ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			found = true
			break
		}
	}
	s.mu.Unlock()
	if !found {
		return Result{}, ErrNotFound
	}

	if err := s.gw.DeleteProduct(ctx, id); err != nil {
		s.log.Error("deleting product remotely failed",
			zap.String("id", id), zap.Error(err))
		return localOnly(err), nil
	}
	return confirmed(), nil
}

// updateStockUnchecked sets a product's stock to an absolute value,
// bypassing validation: sales may drive stock below zero, which is
// recorded rather than blocked. A missing product is skipped.
func (s *Store) updateStockUnchecked(ctx context.Context, id string, stock int) Result {
	s.mu.Lock()
	idx := -1
	for i := range s.products {
		if s.products[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		s.mu.Unlock()
		return Result{}
	}
	s.products[idx].Stock = stock
	s.mu.Unlock()

	patch := models.ProductPatch{Stock: &stock}
	if err := s.gw.UpdateProduct(ctx, id, patch); err != nil {
		s.log.Error("updating stock remotely failed",
			zap.String("id", id), zap.Int("stock", stock), zap.Error(err))
		return localOnly(err)
	}
	return confirmed()
}
