// Package services contains the transaction flows built on top of the
// domain store: checkout, purchase recording, password recovery, reports,
// and sales export.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"storefront-backend/models"
	"storefront-backend/store"
)

// CheckoutState is the per-attempt state of the recorder.
type CheckoutState string

const (
	CheckoutIdle       CheckoutState = "idle"
	CheckoutValidating CheckoutState = "validating"
	CheckoutSubmitting CheckoutState = "submitting"
	CheckoutSettled    CheckoutState = "settled"
	CheckoutFailed     CheckoutState = "failed"
)

// Minimum length of the wallet approval code.
const minApprovalCodeLen = 4

var (
	ErrEmptyCart          = errors.New("checkout: cart is empty")
	ErrPaymentNotAccepted = errors.New("checkout: payment method not accepted here")
	ErrApprovalCode       = errors.New("checkout: a valid approval code is required")
	ErrCheckoutInProgress = errors.New("checkout: another attempt is in progress")
	ErrSaleNotRecorded    = errors.New("checkout: sale was not recorded remotely")
)

// CheckoutRequest is one settlement attempt.
type CheckoutRequest struct {
	PaymentMethod models.PaymentMethod `json:"paymentMethod"`
	// ApprovalCode is required for wallet-style methods only.
	ApprovalCode string `json:"approvalCode,omitempty"`
}

// Receipt is the settled outcome surfaced to the caller. Reference is the
// shortened transaction reference (suffix of the sale id).
type Receipt struct {
	SaleID    string  `json:"saleId"`
	Reference string  `json:"reference"`
	Total     float64 `json:"total"`
	// StockSynced is false when the sale settled but one or more stock
	// decrements did not reach the backend.
	StockSynced bool `json:"stockSynced"`
}

// CheckoutService converts a cart snapshot into an immutable sale record.
// Each attempt walks Idle -> Validating -> Submitting -> Settled | Failed.
// Only a settled attempt clears the cart: validation and submit failures
// leave the basket with its pre-checkout contents and re-arm the recorder.
type CheckoutService struct {
	store      *store.Store
	cart       *store.Cart
	accepted   []models.PaymentMethod
	attachUser bool
	log        *zap.Logger

	mu    sync.Mutex
	state CheckoutState
	busy  bool
}

// NewStorefrontCheckout serves the customer-facing cart: wallet methods and
// card, with the session user attached to the sale when present.
func NewStorefrontCheckout(st *store.Store, log *zap.Logger) *CheckoutService {
	return newCheckout(st, st.Cart(), log, true,
		models.PaymentYape, models.PaymentPlin, models.PaymentCard)
}

// NewPOSCheckout serves the point-of-sale cart: cash and card, anonymous.
func NewPOSCheckout(st *store.Store, log *zap.Logger) *CheckoutService {
	return newCheckout(st, st.POSCart(), log, false,
		models.PaymentCash, models.PaymentCard)
}

func newCheckout(st *store.Store, cart *store.Cart, log *zap.Logger, attachUser bool, accepted ...models.PaymentMethod) *CheckoutService {
	if log == nil {
		log = zap.NewNop()
	}
	return &CheckoutService{
		store:      st,
		cart:       cart,
		accepted:   accepted,
		attachUser: attachUser,
		log:        log,
		state:      CheckoutIdle,
	}
}

// State returns the recorder's current state.
func (cs *CheckoutService) State() CheckoutState {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.state
}

func (cs *CheckoutService) setState(st CheckoutState) {
	cs.mu.Lock()
	cs.state = st
	cs.mu.Unlock()
}

// Process runs one settlement attempt. On success the cart is cleared and
// a receipt returned; on any failure the cart keeps its contents, the
// optimistic sale entry is rolled back, and the recorder can be retried.
func (cs *CheckoutService) Process(ctx context.Context, req CheckoutRequest) (Receipt, error) {
	cs.mu.Lock()
	if cs.busy {
		cs.mu.Unlock()
		return Receipt{}, ErrCheckoutInProgress
	}
	cs.busy = true
	cs.state = CheckoutValidating
	cs.mu.Unlock()
	defer func() {
		cs.mu.Lock()
		cs.busy = false
		cs.mu.Unlock()
	}()

	if err := cs.validate(req); err != nil {
		cs.setState(CheckoutFailed)
		return Receipt{}, err
	}

	cs.setState(CheckoutSubmitting)

	items := cs.cart.Items()
	sale := models.Sale{
		Items:         items,
		Total:         cs.cart.Total(),
		Date:          time.Now().UTC(),
		PaymentMethod: req.PaymentMethod,
	}
	if cs.attachUser {
		if u, ok := cs.store.CurrentUser(); ok {
			sale.UserID = u.ID
		}
	}

	recorded, res, err := cs.store.AddSale(ctx, sale)
	if err != nil {
		cs.setState(CheckoutFailed)
		return Receipt{}, err
	}
	if !res.Confirmed {
		// The backend never accepted the sale: roll the optimistic entry
		// back so a failed attempt changes no state, and keep the cart.
		cs.store.RemoveLocalSale(recorded.ID)
		cs.setState(CheckoutFailed)
		return Receipt{}, fmt.Errorf("%w: %v", ErrSaleNotRecorded, res.RemoteErr)
	}

	cs.cart.Clear()
	cs.setState(CheckoutSettled)
	cs.log.Info("sale settled",
		zap.String("saleId", recorded.ID),
		zap.String("reference", recorded.Reference()),
		zap.Float64("total", recorded.Total),
		zap.String("paymentMethod", string(recorded.PaymentMethod)))

	return Receipt{
		SaleID:      recorded.ID,
		Reference:   recorded.Reference(),
		Total:       recorded.Total,
		StockSynced: res.RemoteErr == nil,
	}, nil
}

// validate enforces the trivial payment rules: wallet methods need a
// minimum-length approval code; card is a simulated gateway that always
// succeeds; anything outside the basket's accepted set is refused.
func (cs *CheckoutService) validate(req CheckoutRequest) error {
	if cs.cart.Len() == 0 {
		return ErrEmptyCart
	}
	ok := false
	for _, m := range cs.accepted {
		if m == req.PaymentMethod {
			ok = true
			break
		}
	}
	if !ok {
		return ErrPaymentNotAccepted
	}
	if req.PaymentMethod.IsWallet() && len(req.ApprovalCode) < minApprovalCodeLen {
		return ErrApprovalCode
	}
	return nil
}
