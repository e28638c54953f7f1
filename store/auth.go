package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storefront-backend/models"
)

// Login re-fetches the user collection so a stale mirror can never accept
// revoked credentials, then performs an exact email and plaintext password
// match. The plaintext comparison mirrors the system being reimplemented;
// callers get only a found/not-found answer, never which half failed.
func (s *Store) Login(ctx context.Context, email, password string) (models.User, bool) {
	users, err := s.gw.ListUsers(ctx)
	if err != nil {
		s.log.Error("fetching users for login failed", zap.Error(err))
		// Fall through with whatever came back; a nil list fails the match.
	}

	for i := range users {
		if users[i].Email == email && users[i].Password == password {
			s.mu.Lock()
			u := users[i]
			s.currentUser = &u
			s.mu.Unlock()
			return u, true
		}
	}
	return models.User{}, false
}

// Register creates a shopper account. The role is forced regardless of
// input, and the id and creation timestamp are client-generated. Duplicate
// emails are not checked here, matching the original flow.
func (s *Store) Register(ctx context.Context, u models.User) (models.User, Result) {
	u.ID = uuid.NewString()
	u.Role = models.RoleShopper
	u.CreatedAt = time.Now().UTC()

	s.mu.Lock()
	s.users = append(s.users, u)
	s.mu.Unlock()

	if _, err := s.gw.InsertUser(ctx, u); err != nil {
		s.log.Error("registering user remotely failed",
			zap.String("email", u.Email), zap.Error(err))
		return u, localOnly(err)
	}
	return u, confirmed()
}

// Logout clears the session only. Carts are independent of session
// identity; an unauthenticated POS cart is legal.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentUser = nil
}

// CurrentUser returns the session user, if any.
func (s *Store) CurrentUser() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.currentUser == nil {
		return models.User{}, false
	}
	return *s.currentUser, true
}
