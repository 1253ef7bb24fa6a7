// Package tui is the terminal front-end of the storefront.
package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"warungchat/internal/checkout"
	"warungchat/internal/storefront"
)

type mode int

const (
	modeChat mode = iota
	modeMenus
	modeDetail
)

const (
	noticeTTL        = 3 * time.Second
	suggestionPeriod = 15 * time.Second
)

// eventMsg relays a storefront event into the program loop.
type eventMsg storefront.Event

type sendDoneMsg struct{ err error }

type paymentDoneMsg struct {
	order checkout.Order
	err   error
}

type noticeExpiredMsg struct{ seq int }

type rotateSuggestionsMsg struct{}

type clearDoneMsg struct{}

func rotateSuggestions() tea.Cmd {
	return tea.Tick(suggestionPeriod, func(time.Time) tea.Msg { return rotateSuggestionsMsg{} })
}

type Model struct {
	app    *storefront.App
	events chan storefront.Event

	input       textinput.Model
	mode        mode
	menuCursor  int
	cartCursor  int
	confirming  bool // waiting for y/n before emptying the cart
	suggestions []storefront.Suggestion

	notice    string
	alert     bool
	noticeSeq int

	width    int
	height   int
	quitting bool
}

func NewModel(app *storefront.App) Model {
	ti := textinput.New()
	ti.Placeholder = "Ketik pesan... (contoh: ada ikan?)"
	ti.CharLimit = 500
	ti.Focus()

	events := make(chan storefront.Event, 64)
	app.Subscribe(func(e storefront.Event) {
		select {
		case events <- e:
		default:
			// views re-read state on every render
		}
	})

	return Model{
		app:         app,
		events:      events,
		input:       ti,
		suggestions: app.NextSuggestions(),
		width:       100,
		height:      30,
	}
}

func waitForEvent(events <-chan storefront.Event) tea.Cmd {
	return func() tea.Msg {
		return eventMsg(<-events)
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForEvent(m.events), rotateSuggestions())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(10, msg.Width-6)
		return m, nil

	case eventMsg:
		cmd := waitForEvent(m.events)
		switch msg.Kind {
		case storefront.Notice, storefront.Alert:
			return m.showNotice(msg.Text, msg.Kind == storefront.Alert, cmd)
		case storefront.MenusChanged:
			m.menuCursor = 0
		case storefront.CartChanged:
			m.cartCursor = min(m.cartCursor, max(0, m.app.Cart.Len()-1))
		}
		return m, cmd

	case sendDoneMsg, clearDoneMsg:
		return m, nil

	case rotateSuggestionsMsg:
		m.suggestions = m.app.NextSuggestions()
		return m, rotateSuggestions()

	case paymentDoneMsg:
		if msg.err != nil && !errors.Is(msg.err, checkout.ErrCancelled) && !errors.Is(msg.err, context.Canceled) {
			return m.showNotice(msg.err.Error(), true, nil)
		}
		return m, nil

	case noticeExpiredMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}

		// checkout overlays take the keyboard while open
		switch m.app.Orders.State() {
		case checkout.ReviewingCart:
			return m.updateCart(msg)
		case checkout.AwaitingPayment:
			return m.updatePayment(msg)
		case checkout.ReceiptIssued, checkout.PaymentConfirmed:
			return m.updateReceipt(msg)
		}

		switch m.mode {
		case modeMenus:
			return m.updateMenus(msg)
		case modeDetail:
			return m.updateDetail(msg)
		default:
			return m.updateChat(msg)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) showNotice(text string, alert bool, next tea.Cmd) (tea.Model, tea.Cmd) {
	m.noticeSeq++
	m.notice = text
	m.alert = alert
	seq := m.noticeSeq
	expire := tea.Tick(noticeTTL, func(time.Time) tea.Msg { return noticeExpiredMsg{seq: seq} })
	return m, tea.Batch(next, expire)
}

func (m Model) send(text string) tea.Cmd {
	app := m.app
	return func() tea.Msg {
		return sendDoneMsg{err: app.Send(context.Background(), text)}
	}
}

// ---- Chat ----

func (m Model) updateChat(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		text := m.input.Value()
		if m.app.Loading() || text == "" {
			return m, nil
		}
		m.input.SetValue("")
		return m, m.send(text)

	case "f1", "f2", "f3", "f4":
		i := int(msg.String()[1] - '1')
		if i < len(m.suggestions) && !m.app.Loading() {
			return m, m.send(m.suggestions[i].Text)
		}
		return m, nil

	case "ctrl+t":
		m.suggestions = m.app.NextSuggestions()
		return m, nil

	case "tab":
		if m.app.Catalog.Len() > 0 {
			m.input.Blur()
			m.mode = modeMenus
		}
		return m, nil

	case "ctrl+k":
		_ = m.app.OpenCart()
		return m, nil

	case "ctrl+l":
		app := m.app
		return m, func() tea.Msg {
			app.ClearChat(context.Background())
			return clearDoneMsg{}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// ---- Menus ----

func (m Model) backToChat() (tea.Model, tea.Cmd) {
	m.mode = modeChat
	m.input.Focus()
	return m, textinput.Blink
}

func (m Model) updateMenus(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "tab":
		return m.backToChat()
	case "up", "k":
		if m.menuCursor > 0 {
			m.menuCursor--
		}
	case "down", "j":
		if m.menuCursor < m.app.Catalog.Len()-1 {
			m.menuCursor++
		}
	case "enter", "d":
		if _, err := m.app.Catalog.ViewDetail(m.menuCursor); err == nil {
			m.mode = modeDetail
		}
	case "a", "+":
		_, _ = m.app.AddToCart(m.menuCursor)
	case "c":
		_ = m.app.OpenCart()
	}
	return m, nil
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.mode = modeMenus
	case "a", "+", "enter":
		_, _ = m.app.AddToCart(m.menuCursor)
		m.mode = modeMenus
	}
	return m, nil
}

// ---- Cart ----

func (m Model) updateCart(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.app.Cart.Items()

	if m.confirming {
		if msg.String() == "y" {
			m.app.ClearCart()
		}
		m.confirming = false
		return m, nil
	}

	switch msg.String() {
	case "esc", "q":
		_ = m.app.CloseCart()
	case "up", "k":
		if m.cartCursor > 0 {
			m.cartCursor--
		}
	case "down", "j":
		if m.cartCursor < len(items)-1 {
			m.cartCursor++
		}
	case "+", "=":
		if m.cartCursor < len(items) {
			m.app.Cart.UpdateQuantity(items[m.cartCursor].Key(), 1)
		}
	case "-":
		if m.cartCursor < len(items) {
			m.app.Cart.UpdateQuantity(items[m.cartCursor].Key(), -1)
		}
	case "d", "delete":
		if m.cartCursor < len(items) {
			m.app.Cart.Remove(items[m.cartCursor].Key())
		}
	case "x":
		if len(items) > 0 {
			m.confirming = true
		}
	case "enter":
		_, _ = m.app.Checkout()
	}
	return m, nil
}

// ---- Payment & receipt ----

func (m Model) updatePayment(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.app.Cancel()
	case "enter":
		if m.app.Orders.Busy() {
			return m, nil
		}
		app := m.app
		return m, func() tea.Msg {
			o, err := app.ConfirmPayment(context.Background())
			return paymentDoneMsg{order: o, err: err}
		}
	}
	return m, nil
}

func (m Model) updateReceipt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "n", "enter":
		_ = m.app.NewOrder()
		return m.backToChat()
	case "esc", "q":
		_ = m.app.CloseReceipt()
		return m.backToChat()
	}
	return m, nil
}
