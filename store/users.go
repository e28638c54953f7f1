package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storefront-backend/models"
)

// ErrAdminUndeletable is returned when user management targets an admin.
var ErrAdminUndeletable = errors.New("store: admin accounts cannot be deleted")

// AddUser creates an account with any role through the back-office flow.
// Id and creation timestamp are client-generated, as with Register.
func (s *Store) AddUser(ctx context.Context, u models.User) (models.User, Result, error) {
	if _, err := models.ParseRole(string(u.Role)); err != nil {
		return models.User{}, Result{}, err
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now().UTC()

	s.mu.Lock()
	s.users = append(s.users, u)
	s.mu.Unlock()

	if _, err := s.gw.InsertUser(ctx, u); err != nil {
		s.log.Error("adding user remotely failed",
			zap.String("email", u.Email), zap.Error(err))
		return u, localOnly(err), nil
	}
	return u, confirmed(), nil
}

// UpdateUser merges the patch into the mirrored user and sends only the
// set fields remotely. The session copy follows when it targets the
// current user.
func (s *Store) UpdateUser(ctx context.Context, id string, patch models.UserPatch) (Result, error) {
	if patch.Role != nil {
		if _, err := models.ParseRole(string(*patch.Role)); err != nil {
			return Result{}, err
		}
	}

	s.mu.Lock()
	idx := -1
	for i := range s.users {
		if s.users[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		s.mu.Unlock()
		return Result{}, ErrNotFound
	}
	patch.Apply(&s.users[idx])
	if s.currentUser != nil && s.currentUser.ID == id {
		u := s.users[idx]
		s.currentUser = &u
	}
	s.mu.Unlock()

	if err := s.gw.UpdateUser(ctx, id, patch); err != nil {
		s.log.Error("updating user remotely failed",
			zap.String("id", id), zap.Error(err))
		return localOnly(err), nil
	}
	return confirmed(), nil
}

// DeleteUser removes an account, refusing admins: the deletion of the one
// admin identity is a blocked no-op surfaced to the caller.
func (s *Store) DeleteUser(ctx context.Context, id string) (Result, error) {
	s.mu.Lock()
	idx := -1
	for i := range s.users {
		if s.users[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		s.mu.Unlock()
		return Result{}, ErrNotFound
	}
	if s.users[idx].Role == models.RoleAdmin {
		s.mu.Unlock()
		return Result{}, ErrAdminUndeletable
	}
	s.users = append(s.users[:idx], s.users[idx+1:]...)
	s.mu.Unlock()

	if err := s.gw.DeleteUser(ctx, id); err != nil {
		s.log.Error("deleting user remotely failed",
			zap.String("id", id), zap.Error(err))
		return localOnly(err), nil
	}
	return confirmed(), nil
}

// ToggleWishlist adds the product to the shopper's wishlist, or removes it
// when already present, and persists the new list through the patch path.
func (s *Store) ToggleWishlist(ctx context.Context, userID, productID string) (Result, error) {
	s.mu.Lock()
	idx := -1
	for i := range s.users {
		if s.users[i].ID == userID {
			idx = i
			break
		}
	}
	if idx == -1 {
		s.mu.Unlock()
		return Result{}, ErrNotFound
	}

	wishlist := append([]string(nil), s.users[idx].Wishlist...)
	removed := false
	for i, pid := range wishlist {
		if pid == productID {
			wishlist = append(wishlist[:i], wishlist[i+1:]...)
			removed = true
			break
		}
	}
	if !removed {
		wishlist = append(wishlist, productID)
	}
	s.users[idx].Wishlist = wishlist
	if s.currentUser != nil && s.currentUser.ID == userID {
		u := s.users[idx]
		s.currentUser = &u
	}
	s.mu.Unlock()

	patch := models.UserPatch{Wishlist: &wishlist}
	if err := s.gw.UpdateUser(ctx, userID, patch); err != nil {
		s.log.Error("updating wishlist remotely failed",
			zap.String("userId", userID), zap.Error(err))
		return localOnly(err), nil
	}
	return confirmed(), nil
}
