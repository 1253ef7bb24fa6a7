package checkout

import (
	"errors"
	"time"

	"warungchat/internal/cart"
)

// State of the order lifecycle.
type State int

const (
	Idle State = iota
	ReviewingCart
	AwaitingPayment
	PaymentConfirmed
	ReceiptIssued
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case ReviewingCart:
		return "reviewing_cart"
	case AwaitingPayment:
		return "awaiting_payment"
	case PaymentConfirmed:
		return "payment_confirmed"
	case ReceiptIssued:
		return "receipt_issued"
	}
	return "unknown"
}

var (
	ErrEmptyCart         = errors.New("keranjang belanja kosong")
	ErrInvalidTransition = errors.New("invalid checkout transition")
	ErrBusy              = errors.New("payment check already in progress")
	ErrCancelled         = errors.New("payment check cancelled")
	ErrNoOrder           = errors.New("no active order")
)

// Order is the snapshot taken at checkout. Items never follow the live cart.
type Order struct {
	ID        string          `json:"id"`
	Total     int64           `json:"total"`
	ItemCount int             `json:"items"`
	Items     []cart.LineItem `json:"cart"`
	CreatedAt time.Time       `json:"createdAt"`
	PaidAt    *time.Time      `json:"paidAt,omitempty"`
}

func (o Order) clone() Order {
	o.Items = cart.Snapshot(o.Items)
	if o.PaidAt != nil {
		t := *o.PaidAt
		o.PaidAt = &t
	}
	return o
}

// Paid reports whether the simulated payment has gone through.
func (o Order) Paid() bool {
	return o.PaidAt != nil
}
