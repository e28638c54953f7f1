package models

import (
	"fmt"
	"time"
)

// PaymentMethod is the closed set of accepted payment tags.
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
	PaymentYape PaymentMethod = "yape"
	PaymentPlin PaymentMethod = "plin"
)

// ParsePaymentMethod validates a raw payment tag.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch m := PaymentMethod(s); m {
	case PaymentCash, PaymentCard, PaymentYape, PaymentPlin:
		return m, nil
	}
	return "", fmt.Errorf("unknown payment method %q", s)
}

// IsWallet reports whether the method is a wallet-style payment that
// requires an approval code at checkout.
func (m PaymentMethod) IsWallet() bool {
	return m == PaymentYape || m == PaymentPlin
}

// Label is the normalized payment label used on exported reports.
func (m PaymentMethod) Label() string {
	if m == PaymentCard {
		return "CARD"
	}
	return "CASH"
}

// Sale is an immutable transaction record. Items are frozen cart-line
// snapshots: deleting or editing a product afterwards never changes a
// historical sale.
type Sale struct {
	ID            string        `json:"id"`
	UserID        string        `json:"userId,omitempty"`
	Items         []CartItem    `json:"items"`
	Total         float64       `json:"total"`
	Date          time.Time     `json:"date"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
}

// Reference is the shortened transaction reference shown to the customer
// after settlement: the last six characters of the id.
func (s *Sale) Reference() string {
	if len(s.ID) <= 6 {
		return s.ID
	}
	return s.ID[len(s.ID)-6:]
}
