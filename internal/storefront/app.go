// Package storefront is the explicitly owned client state: session, chat
// transcript, displayed menus, cart and checkout. Presentations observe it
// through events and never hold state of their own.
package storefront

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"warungchat/internal/cart"
	"warungchat/internal/catalog"
	"warungchat/internal/checkout"
	"warungchat/internal/menu"
	"warungchat/internal/session"
)

var ErrBusy = errors.New("a message is already being sent")

// Sender is the relay contract the app needs.
type Sender interface {
	Send(ctx context.Context, sessionID, message string) (*session.ChatReply, error)
	ClearHistory(ctx context.Context, sessionID string) error
}

type App struct {
	client Sender

	mu         sync.Mutex
	sessionID  string
	loading    bool
	connected  bool
	transcript []Message
	suggestion int

	Cart     *cart.Store
	Catalog  *catalog.Catalog
	Orders   *checkout.Machine

	lmu       sync.Mutex
	listeners []func(Event)

	now func() time.Time
}

type Option func(*App)

// WithCheckoutOptions forwards options (clock, delay) to the checkout machine.
func WithCheckoutOptions(opts ...checkout.Option) Option {
	return func(a *App) { a.Orders = a.newMachine(opts...) }
}

func WithSessionID(id string) Option {
	return func(a *App) { a.sessionID = id }
}

func New(client Sender, opts ...Option) *App {
	a := &App{
		client:    client,
		sessionID: session.NewClientID(),
		Cart:      cart.NewStore(),
		Catalog:   catalog.New(),
		now:       time.Now,
	}
	a.Orders = a.newMachine()

	for _, opt := range opts {
		opt(a)
	}

	a.Cart.Subscribe(func(cart.Totals) { a.emit(Event{Kind: CartChanged}) })
	return a
}

func (a *App) newMachine(opts ...checkout.Option) *checkout.Machine {
	base := []checkout.Option{
		checkout.OnStateChange(func(checkout.State) { a.emit(Event{Kind: CheckoutChanged}) }),
		checkout.OnBusyChange(func(bool) { a.emit(Event{Kind: CheckoutChanged}) }),
		checkout.OnPaid(func(o checkout.Order) { a.addMessage(Bot, checkout.PaymentSummary(o)) }),
	}
	return checkout.NewMachine(a.Cart, append(base, opts...)...)
}

// Subscribe registers a presentation listener.
func (a *App) Subscribe(fn func(Event)) {
	a.lmu.Lock()
	a.listeners = append(a.listeners, fn)
	a.lmu.Unlock()
}

// --------------------------------------------------
// Chat
// --------------------------------------------------

// Welcome posts a random greeting followed by usage tips.
func (a *App) Welcome() {
	a.addMessage(Bot, welcomeMessages[rand.Intn(len(welcomeMessages))])
	a.addMessage(Bot, tipsMessage)
}

// Send relays one user message. Blank input is ignored. While a send is in
// flight further sends fail with ErrBusy. Failures become a bot message and
// never leave the app stuck in the loading state.
func (a *App) Send(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	a.mu.Lock()
	if a.loading {
		a.mu.Unlock()
		return ErrBusy
	}
	a.loading = true
	sessionID := a.sessionID
	a.mu.Unlock()
	a.emit(Event{Kind: LoadingChanged})

	defer func() {
		a.mu.Lock()
		a.loading = false
		a.mu.Unlock()
		a.emit(Event{Kind: LoadingChanged})
	}()

	a.addMessage(User, text)

	reply, err := a.client.Send(ctx, sessionID, text)
	if err != nil {
		log.Error().Err(err).Str("session_id", sessionID).Msg("error sending message")
		a.addMessage(Bot, sendFailedMessage(err))
		return err
	}

	if reply.SessionID != "" {
		a.mu.Lock()
		a.sessionID = reply.SessionID
		a.mu.Unlock()
	}

	for _, r := range reply.Responses {
		if r.Text != "" {
			a.addMessage(Bot, r.Text)
		}
	}

	if len(reply.RecommendedMenus) > 0 {
		a.Catalog.Show(reply.RecommendedMenus)
		a.emit(Event{Kind: MenusChanged})
	}
	return nil
}

// ClearChat drops the server-side history of the current session, then
// resets the transcript and menus and starts a new session. A failed
// server call is logged and the local reset happens anyway.
func (a *App) ClearChat(ctx context.Context) {
	a.mu.Lock()
	old := a.sessionID
	a.mu.Unlock()

	if err := a.client.ClearHistory(ctx, old); err != nil {
		log.Warn().Err(err).Str("session_id", old).Msg("could not clear server history")
	}

	a.mu.Lock()
	a.transcript = []Message{{Author: Bot, Text: clearedMessage, At: a.now()}}
	a.sessionID = session.NewClientID()
	a.mu.Unlock()

	a.Catalog.Clear()
	a.emit(Event{Kind: TranscriptChanged})
	a.emit(Event{Kind: MenusChanged})
}

// NextSuggestions rotates the quick-reply chips.
func (a *App) NextSuggestions() []Suggestion {
	a.mu.Lock()
	defer a.mu.Unlock()
	set := SuggestionSets[a.suggestion]
	a.suggestion = (a.suggestion + 1) % len(SuggestionSets)
	return set
}

// --------------------------------------------------
// Menus & cart
// --------------------------------------------------

// AddToCart adds the menu behind card i and posts a transient notice.
func (a *App) AddToCart(i int) (menu.Record, error) {
	rec, err := a.Catalog.AddToCart(i, a.Cart)
	if err != nil {
		return rec, err
	}
	a.emit(Event{Kind: Notice, Text: addedNotice(rec.DisplayTitle())})
	return rec, nil
}

func (a *App) OpenCart() error {
	return a.Orders.OpenCart()
}

func (a *App) CloseCart() error {
	return a.Orders.CloseCart()
}

// ClearCart empties the cart; confirming with the user is the caller's job.
func (a *App) ClearCart() {
	a.Cart.Clear()
}

// --------------------------------------------------
// Checkout
// --------------------------------------------------

// Checkout starts payment. An empty cart raises an alert and changes nothing.
func (a *App) Checkout() (checkout.Order, error) {
	o, err := a.Orders.Initiate()
	if errors.Is(err, checkout.ErrEmptyCart) {
		a.emit(Event{Kind: Alert, Text: emptyCartAlert})
	}
	return o, err
}

// ConfirmPayment runs the simulated payment check.
func (a *App) ConfirmPayment(ctx context.Context) (checkout.Order, error) {
	return a.Orders.ConfirmPayment(ctx)
}

// NewOrder leaves the receipt and invites the user to keep ordering.
func (a *App) NewOrder() error {
	if err := a.Orders.NewOrder(); err != nil {
		return err
	}
	a.addMessage(Bot, checkout.ThankYouMessage)
	return nil
}

// CloseReceipt dismisses the receipt without the thank-you message.
func (a *App) CloseReceipt() error {
	return a.Orders.CloseReceipt()
}

// Cancel closes whatever overlay is active.
func (a *App) Cancel() {
	a.Orders.Cancel()
}

// --------------------------------------------------
// Reads
// --------------------------------------------------

func (a *App) SessionID() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sessionID
}

func (a *App) Loading() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loading
}

func (a *App) Connected() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.connected
}

// SetConnected is fed by the status probe.
func (a *App) SetConnected(ok bool) {
	a.mu.Lock()
	changed := a.connected != ok
	a.connected = ok
	a.mu.Unlock()

	if changed {
		a.emit(Event{Kind: ConnectionChanged})
	}
}

func (a *App) Transcript() []Message {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]Message(nil), a.transcript...)
}

// --------------------------------------------------
// helpers
// --------------------------------------------------

func (a *App) addMessage(author Author, text string) {
	a.mu.Lock()
	a.transcript = append(a.transcript, Message{Author: author, Text: text, At: a.now()})
	a.mu.Unlock()
	a.emit(Event{Kind: TranscriptChanged})
}

func (a *App) emit(e Event) {
	a.lmu.Lock()
	listeners := append([](func(Event))(nil), a.listeners...)
	a.lmu.Unlock()

	for _, fn := range listeners {
		fn(e)
	}
}
