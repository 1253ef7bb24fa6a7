package checkout

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"warungchat/internal/cart"
)

// DefaultPaymentDelay models the round trip of a payment status check.
const DefaultPaymentDelay = 2 * time.Second

// Machine drives Idle -> ReviewingCart -> AwaitingPayment ->
// PaymentConfirmed -> ReceiptIssued -> Idle for one cart.
type Machine struct {
	mu    sync.Mutex
	cart  *cart.Store
	clock Clock
	delay time.Duration

	state State
	order *Order
	busy  bool
	abort chan struct{}

	onChange func(State)
	onPaid   func(Order)
	onBusy   func(bool)
}

type Option func(*Machine)

func WithClock(c Clock) Option {
	return func(m *Machine) { m.clock = c }
}

func WithPaymentDelay(d time.Duration) Option {
	return func(m *Machine) { m.delay = d }
}

// OnStateChange is called after every transition, outside the lock.
func OnStateChange(fn func(State)) Option {
	return func(m *Machine) { m.onChange = fn }
}

// OnBusyChange is called when a payment check starts or stops waiting.
func OnBusyChange(fn func(bool)) Option {
	return func(m *Machine) { m.onBusy = fn }
}

// OnPaid is called once a receipt has been issued, with the paid order.
func OnPaid(fn func(Order)) Option {
	return func(m *Machine) { m.onPaid = fn }
}

func NewMachine(c *cart.Store, opts ...Option) *Machine {
	m := &Machine{
		cart:  c,
		clock: SystemClock,
		delay: DefaultPaymentDelay,
		state: Idle,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// --------------------------------------------------
// Reads
// --------------------------------------------------

func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Busy is true while a payment check is waiting on the clock.
func (m *Machine) Busy() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.busy
}

// Order returns a copy of the current order, if any.
func (m *Machine) Order() (Order, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.order == nil {
		return Order{}, false
	}
	return m.order.clone(), true
}

// --------------------------------------------------
// Cart review
// --------------------------------------------------

func (m *Machine) OpenCart() error {
	return m.transition(func() error {
		if m.state != Idle && m.state != ReviewingCart {
			return fmt.Errorf("open cart from %s: %w", m.state, ErrInvalidTransition)
		}
		m.state = ReviewingCart
		return nil
	})
}

func (m *Machine) CloseCart() error {
	return m.transition(func() error {
		if m.state != ReviewingCart {
			return fmt.Errorf("close cart from %s: %w", m.state, ErrInvalidTransition)
		}
		m.state = Idle
		return nil
	})
}

// --------------------------------------------------
// Checkout
// --------------------------------------------------

// Initiate snapshots the cart into a new order and waits for payment.
// An empty cart is rejected without touching the state.
func (m *Machine) Initiate() (Order, error) {
	var out Order
	err := m.transition(func() error {
		if m.state != Idle && m.state != ReviewingCart {
			return fmt.Errorf("checkout from %s: %w", m.state, ErrInvalidTransition)
		}

		items := m.cart.Items()
		if len(items) == 0 {
			return ErrEmptyCart
		}

		totals := cart.TotalsOf(items)
		order := &Order{
			ID:        NewInvoiceID(m.clock.Now()),
			Total:     totals.Amount,
			ItemCount: totals.Items,
			Items:     items,
			CreatedAt: m.clock.Now(),
		}

		m.order = order
		m.state = AwaitingPayment
		out = order.clone()
		return nil
	})
	if err != nil {
		return Order{}, err
	}

	log.Info().
		Str("invoice_id", out.ID).
		Int64("total", out.Total).
		Int("items", out.ItemCount).
		Msg("checkout initiated")
	return out, nil
}

// ConfirmPayment simulates checking the payment status. It blocks for the
// configured delay, then clears the cart and issues the receipt. It always
// succeeds unless ctx ends or the order is cancelled while waiting.
func (m *Machine) ConfirmPayment(ctx context.Context) (Order, error) {
	m.mu.Lock()
	if m.state != AwaitingPayment {
		st := m.state
		m.mu.Unlock()
		return Order{}, fmt.Errorf("confirm payment from %s: %w", st, ErrInvalidTransition)
	}
	if m.busy {
		m.mu.Unlock()
		return Order{}, ErrBusy
	}
	m.busy = true
	abort := make(chan struct{})
	m.abort = abort
	wait := m.clock.After(m.delay)
	m.mu.Unlock()
	m.busyChanged(true)

	select {
	case <-ctx.Done():
		m.release(abort)
		return Order{}, ctx.Err()
	case <-abort:
		return Order{}, ErrCancelled
	case <-wait:
	}

	m.mu.Lock()
	if m.abort != abort || m.state != AwaitingPayment {
		m.mu.Unlock()
		return Order{}, ErrCancelled
	}
	m.busy = false
	m.abort = nil
	paidAt := m.clock.Now()
	m.order.PaidAt = &paidAt
	m.state = PaymentConfirmed
	m.mu.Unlock()

	// irreversible: a later Cancel does not bring the cart back
	m.cart.Clear()
	m.emit(PaymentConfirmed)

	// a Cancel from the PaymentConfirmed hook wins over the receipt
	m.mu.Lock()
	if m.state != PaymentConfirmed || m.order == nil {
		m.mu.Unlock()
		return Order{}, ErrCancelled
	}
	m.state = ReceiptIssued
	paid := m.order.clone()
	m.mu.Unlock()
	m.emit(ReceiptIssued)

	log.Info().Str("invoice_id", paid.ID).Int64("total", paid.Total).Msg("payment confirmed")

	if m.onPaid != nil {
		m.onPaid(paid)
	}
	return paid, nil
}

// NewOrder leaves the receipt and goes back to chatting.
func (m *Machine) NewOrder() error {
	return m.leaveReceipt()
}

// CloseReceipt dismisses the receipt view.
func (m *Machine) CloseReceipt() error {
	return m.leaveReceipt()
}

func (m *Machine) leaveReceipt() error {
	return m.transition(func() error {
		if m.state != ReceiptIssued {
			return fmt.Errorf("leave receipt from %s: %w", m.state, ErrInvalidTransition)
		}
		m.order = nil
		m.state = Idle
		return nil
	})
}

// Cancel closes whatever overlay is open and returns to Idle. A pending
// payment check is aborted; an already cleared cart stays cleared.
func (m *Machine) Cancel() {
	m.mu.Lock()
	prev := m.state
	if m.abort != nil {
		close(m.abort)
		m.abort = nil
	}
	m.busy = false
	if prev == AwaitingPayment || prev == PaymentConfirmed || prev == ReceiptIssued {
		m.order = nil
	}
	m.state = Idle
	m.mu.Unlock()

	if prev != Idle {
		m.emit(Idle)
	}
}

// --------------------------------------------------
// Receipt
// --------------------------------------------------

// Receipt projects the current order. Only a paid order has a receipt.
func (m *Machine) Receipt() (Receipt, error) {
	o, ok := m.Order()
	if !ok || !o.Paid() {
		return Receipt{}, ErrNoOrder
	}
	return NewReceipt(o), nil
}

// PrintReceipt renders the receipt as printable text.
func (m *Machine) PrintReceipt() (string, error) {
	r, err := m.Receipt()
	if err != nil {
		return "", err
	}
	return r.Print(), nil
}

// --------------------------------------------------
// helpers
// --------------------------------------------------

func (m *Machine) transition(fn func() error) error {
	m.mu.Lock()
	before := m.state
	err := fn()
	after := m.state
	m.mu.Unlock()

	if err != nil {
		return err
	}
	if before != after {
		m.emit(after)
	}
	return nil
}

func (m *Machine) release(abort chan struct{}) {
	m.mu.Lock()
	released := m.abort == abort
	if released {
		m.abort = nil
		m.busy = false
	}
	m.mu.Unlock()

	if released {
		m.busyChanged(false)
	}
}

func (m *Machine) busyChanged(busy bool) {
	if m.onBusy != nil {
		m.onBusy(busy)
	}
}

func (m *Machine) emit(s State) {
	if m.onChange != nil {
		m.onChange(s)
	}
}
