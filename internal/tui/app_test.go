package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warungchat/internal/checkout"
	"warungchat/internal/menu"
	"warungchat/internal/nlu"
	"warungchat/internal/session"
	"warungchat/internal/storefront"
)

type fakeSender struct{ calls []string }

func (f *fakeSender) Send(_ context.Context, sessionID, message string) (*session.ChatReply, error) {
	f.calls = append(f.calls, message)
	return &session.ChatReply{
		SessionID: sessionID,
		Responses: []nlu.Response{{Text: "Coba **Ikan Bakar** ya"}},
		RecommendedMenus: []menu.Record{
			{ID: "1", Title: "Ikan Bakar", Price: "25000", Rating: 4.5},
			{ID: "2", Title: "Es Jeruk", Price: "8000"},
		},
	}, nil
}

func (f *fakeSender) ClearHistory(context.Context, string) error { return nil }

type instantClock struct{}

func (instantClock) Now() time.Time { return time.Date(2025, 3, 7, 9, 5, 0, 0, time.UTC) }

func (instantClock) After(time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	ch <- time.Now()
	return ch
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+k":
		return tea.KeyMsg{Type: tea.KeyCtrlK}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(Model)
	}
	return m
}

func newTestModel(t *testing.T) (Model, *storefront.App, *fakeSender) {
	t.Helper()
	sender := &fakeSender{}
	app := storefront.New(sender, storefront.WithCheckoutOptions(checkout.WithClock(instantClock{})))
	return NewModel(app), app, sender
}

func TestEnterSendsMessage(t *testing.T) {
	m, app, sender := newTestModel(t)
	m.input.SetValue("ada ikan?")

	next, cmd := m.Update(key("enter"))
	m = next.(Model)
	require.NotNil(t, cmd)
	assert.Empty(t, m.input.Value())

	_, ok := cmd().(sendDoneMsg)
	require.True(t, ok)
	assert.Equal(t, []string{"ada ikan?"}, sender.calls)
	assert.Len(t, app.Transcript(), 2)
	assert.Equal(t, 2, app.Catalog.Len())

	assert.Contains(t, m.View(), "Ikan Bakar")
}

func TestEmptyInputIgnored(t *testing.T) {
	m, _, sender := newTestModel(t)

	_, cmd := m.Update(key("enter"))
	assert.Nil(t, cmd)
	assert.Empty(t, sender.calls)
}

func TestOrderFlow(t *testing.T) {
	m, app, _ := newTestModel(t)
	require.NoError(t, app.Send(context.Background(), "ada ikan?"))

	// browse menus, add the first one twice and the second once
	m = press(t, m, "tab", "a", "a", "j", "a")
	assert.Equal(t, modeMenus, m.mode)
	assert.Equal(t, int64(58000), app.Cart.Totals().Amount)

	m = press(t, m, "c")
	assert.Equal(t, checkout.ReviewingCart, app.Orders.State())
	assert.Contains(t, m.View(), "Keranjang Belanja")

	m = press(t, m, "-")
	assert.Equal(t, 1, app.Cart.Items()[0].Quantity)

	m = press(t, m, "enter")
	assert.Equal(t, checkout.AwaitingPayment, app.Orders.State())
	assert.Contains(t, m.View(), "Rp 33.000")

	next, cmd := m.Update(key("enter"))
	m = next.(Model)
	require.NotNil(t, cmd)
	done, ok := cmd().(paymentDoneMsg)
	require.True(t, ok)
	require.NoError(t, done.err)

	assert.Equal(t, checkout.ReceiptIssued, app.Orders.State())
	assert.True(t, app.Cart.IsEmpty())
	assert.Contains(t, m.View(), checkout.MerchantName)

	m = press(t, m, "n")
	assert.Equal(t, checkout.Idle, app.Orders.State())
	assert.Equal(t, modeChat, m.mode)
	msgs := app.Transcript()
	assert.Equal(t, checkout.ThankYouMessage, msgs[len(msgs)-1].Text)
}

func TestEscCancelsPayment(t *testing.T) {
	m, app, _ := newTestModel(t)
	require.NoError(t, app.Send(context.Background(), "ada ikan?"))
	_, err := app.AddToCart(0)
	require.NoError(t, err)

	m = press(t, m, "ctrl+k", "enter")
	require.Equal(t, checkout.AwaitingPayment, app.Orders.State())

	press(t, m, "esc")
	assert.Equal(t, checkout.Idle, app.Orders.State())
	assert.Equal(t, 1, app.Cart.Len())
}

func TestClearCartNeedsConfirmation(t *testing.T) {
	m, app, _ := newTestModel(t)
	require.NoError(t, app.Send(context.Background(), "ada ikan?"))
	_, err := app.AddToCart(0)
	require.NoError(t, err)

	m = press(t, m, "ctrl+k", "x", "n")
	assert.Equal(t, 1, app.Cart.Len())

	m = press(t, m, "x")
	assert.Contains(t, m.View(), "Kosongkan keranjang?")
	press(t, m, "y")
	assert.True(t, app.Cart.IsEmpty())
}

func TestNoticeExpires(t *testing.T) {
	m, _, _ := newTestModel(t)

	next, _ := m.Update(eventMsg{Kind: storefront.Notice, Text: "Es Jeruk ditambahkan ke keranjang!"})
	m = next.(Model)
	assert.Contains(t, m.View(), "Es Jeruk ditambahkan")

	next, _ = m.Update(noticeExpiredMsg{seq: m.noticeSeq - 1})
	m = next.(Model)
	assert.NotEmpty(t, m.notice)

	next, _ = m.Update(noticeExpiredMsg{seq: m.noticeSeq})
	m = next.(Model)
	assert.Empty(t, m.notice)
}

func TestSuggestionsRotateOnTick(t *testing.T) {
	m, _, _ := newTestModel(t)
	first := m.suggestions

	next, cmd := m.Update(rotateSuggestionsMsg{})
	m = next.(Model)
	require.NotNil(t, cmd, "rotation re-arms itself")
	assert.NotEqual(t, first, m.suggestions)

	for i := 0; i < len(storefront.SuggestionSets)-1; i++ {
		next, _ = m.Update(rotateSuggestionsMsg{})
		m = next.(Model)
	}
	assert.Equal(t, first, m.suggestions)
}

func TestClearChatKey(t *testing.T) {
	m, app, _ := newTestModel(t)
	require.NoError(t, app.Send(context.Background(), "ada ikan?"))
	before := app.SessionID()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	require.NotNil(t, cmd)
	_, ok := cmd().(clearDoneMsg)
	require.True(t, ok)

	assert.Len(t, app.Transcript(), 1)
	assert.Zero(t, app.Catalog.Len())
	assert.NotEqual(t, before, app.SessionID())
}
