package services

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"sync"

	"go.uber.org/zap"

	"storefront-backend/models"
	"storefront-backend/store"
)

const recoveryCodeLen = 6

var (
	ErrRecoveryNotFound = errors.New("recovery: no account for that email")
	ErrRecoveryCode     = errors.New("recovery: invalid code")
	ErrPasswordRequired = errors.New("recovery: new password is required")
)

// CodeSender delivers a recovery code to the account owner.
type CodeSender interface {
	SendRecoveryCode(email, code string) error
}

// LogCodeSender writes the code to the application log instead of sending
// it anywhere. Stands in for a mail channel in development.
type LogCodeSender struct {
	Log *zap.Logger
}

func (s *LogCodeSender) SendRecoveryCode(email, code string) error {
	s.Log.Info("recovery code issued", zap.String("email", email), zap.String("code", code))
	return nil
}

// RecoveryService is the two-step password reset: Begin looks the email up
// and issues a code, Complete verifies the code and syncs the new plaintext
// password through the user patch path. Codes never expire and there is no
// attempt limit; this matches the flow being reimplemented and is a known
// weakness, not a baseline for new designs.
type RecoveryService struct {
	store  *store.Store
	sender CodeSender
	log    *zap.Logger

	mu    sync.Mutex
	codes map[string]string
}

func NewRecoveryService(st *store.Store, sender CodeSender, log *zap.Logger) *RecoveryService {
	if log == nil {
		log = zap.NewNop()
	}
	return &RecoveryService{
		store:  st,
		sender: sender,
		log:    log,
		codes:  make(map[string]string),
	}
}

// Begin issues a recovery code for any email present in the mirrored user
// collection.
func (rs *RecoveryService) Begin(ctx context.Context, email string) error {
	if _, ok := rs.findByEmail(email); !ok {
		return ErrRecoveryNotFound
	}

	code, err := generateCode(recoveryCodeLen)
	if err != nil {
		return err
	}

	rs.mu.Lock()
	rs.codes[email] = code
	rs.mu.Unlock()

	return rs.sender.SendRecoveryCode(email, code)
}

// Complete verifies the code and updates the password. The persisted
// password sync is best-effort: a remote failure is logged and the local
// mirror keeps the new password, matching the original's divergence
// behavior.
func (rs *RecoveryService) Complete(ctx context.Context, email, code, newPassword string) error {
	if len(code) < recoveryCodeLen {
		return ErrRecoveryCode
	}
	if newPassword == "" {
		return ErrPasswordRequired
	}

	rs.mu.Lock()
	issued, ok := rs.codes[email]
	rs.mu.Unlock()
	if !ok || issued != code {
		return ErrRecoveryCode
	}

	user, found := rs.findByEmail(email)
	if !found {
		return ErrRecoveryNotFound
	}

	patch := models.UserPatch{Password: &newPassword}
	res, err := rs.store.UpdateUser(ctx, user.ID, patch)
	if err != nil {
		return err
	}
	if !res.Confirmed {
		rs.log.Error("password reset applied locally but not synced",
			zap.String("email", email), zap.Error(res.RemoteErr))
	}

	rs.mu.Lock()
	delete(rs.codes, email)
	rs.mu.Unlock()
	return nil
}

func (rs *RecoveryService) findByEmail(email string) (models.User, bool) {
	for _, u := range rs.store.Users() {
		if u.Email == email {
			return u, true
		}
	}
	return models.User{}, false
}

func generateCode(n int) (string, error) {
	digits := make([]byte, n)
	for i := range digits {
		d, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + d.Int64())
	}
	return string(digits), nil
}
