package storefront

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warungchat/internal/checkout"
	"warungchat/internal/session"
)

type instantClock struct{ now time.Time }

func (c instantClock) Now() time.Time { return c.now }

func (c instantClock) After(time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	ch <- c.now
	return ch
}

// relay fakes POST /chat and records the session ids it sees.
type relay struct {
	mu       sync.Mutex
	sessions []string
	cleared  []string
	status   int
}

func (r *relay) handler(w http.ResponseWriter, req *http.Request) {
	if req.Method == http.MethodDelete {
		r.mu.Lock()
		r.cleared = append(r.cleared, strings.TrimPrefix(req.URL.Path, "/conversation/"))
		r.mu.Unlock()
		_, _ = w.Write([]byte(`{"message":"Conversation history cleared"}`))
		return
	}

	var body session.ChatRequest
	_ = json.NewDecoder(req.Body).Decode(&body)

	r.mu.Lock()
	r.sessions = append(r.sessions, body.SessionID)
	status := r.status
	r.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"error":"Failed to process message"}`))
		return
	}
	_, _ = w.Write([]byte(`{
		"sessionId": "session_server_1",
		"responses": [{"text": "Ini menu **ikan** kami"}, {"text": ""}],
		"recommendedMenus": [
			{"id": 1, "title": "Ikan Bakar", "price": "25000", "rating": 4.5},
			{"id": "2", "title": "Es Jeruk", "price": "8 ribu"}
		]
	}`))
}

func newTestApp(t *testing.T, r *relay) *App {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(r.handler))
	t.Cleanup(srv.Close)

	clock := instantClock{now: time.Date(2025, 3, 7, 9, 5, 0, 0, time.UTC)}
	return New(session.NewClient(srv.URL, 5*time.Second),
		WithSessionID("web_test_1"),
		WithCheckoutOptions(checkout.WithClock(clock)),
	)
}

func TestSend_ShowsRepliesAndMenus(t *testing.T) {
	r := &relay{}
	app := newTestApp(t, r)

	var menusChanged bool
	app.Subscribe(func(e Event) {
		if e.Kind == MenusChanged {
			menusChanged = true
		}
	})

	require.NoError(t, app.Send(context.Background(), "  ada ikan?  "))

	msgs := app.Transcript()
	require.Len(t, msgs, 2)
	assert.Equal(t, User, msgs[0].Author)
	assert.Equal(t, "ada ikan?", msgs[0].Text)
	assert.Equal(t, Bot, msgs[1].Author)
	assert.Contains(t, msgs[1].HTML(), "<strong>ikan</strong>")

	assert.Equal(t, 2, app.Catalog.Len())
	assert.True(t, menusChanged)
	assert.False(t, app.Loading())

	assert.Equal(t, "session_server_1", app.SessionID())
	assert.Equal(t, []string{"web_test_1"}, r.sessions)
}

func TestSend_BlankIgnored(t *testing.T) {
	r := &relay{}
	app := newTestApp(t, r)

	require.NoError(t, app.Send(context.Background(), "   "))
	assert.Empty(t, app.Transcript())
	assert.Empty(t, r.sessions)
}

func TestSend_FailureBecomesBotMessage(t *testing.T) {
	r := &relay{status: http.StatusInternalServerError}
	app := newTestApp(t, r)

	err := app.Send(context.Background(), "halo")
	require.Error(t, err)

	msgs := app.Transcript()
	require.Len(t, msgs, 2)
	assert.Equal(t, Bot, msgs[1].Author)
	assert.True(t, strings.HasPrefix(msgs[1].Text, "❌ Maaf"))
	assert.Contains(t, msgs[1].Text, "Failed to process message")
	assert.False(t, app.Loading())
	assert.Equal(t, "web_test_1", app.SessionID())
}

func TestSend_BusyWhileLoading(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
		_, _ = w.Write([]byte(`{"sessionId":"s","responses":[],"recommendedMenus":[]}`))
	}))
	defer srv.Close()

	app := New(session.NewClient(srv.URL, 5*time.Second))

	started := make(chan struct{})
	app.Subscribe(func(e Event) {
		if e.Kind == LoadingChanged && app.Loading() {
			close(started)
		}
	})

	done := make(chan error, 1)
	go func() { done <- app.Send(context.Background(), "satu") }()

	<-started
	assert.ErrorIs(t, app.Send(context.Background(), "dua"), ErrBusy)

	close(release)
	require.NoError(t, <-done)
	assert.False(t, app.Loading())
}

func TestCheckoutFlow(t *testing.T) {
	app := newTestApp(t, &relay{})

	var alerts []string
	app.Subscribe(func(e Event) {
		if e.Kind == Alert {
			alerts = append(alerts, e.Text)
		}
	})

	_, err := app.Checkout()
	assert.ErrorIs(t, err, checkout.ErrEmptyCart)
	assert.Equal(t, []string{emptyCartAlert}, alerts)

	require.NoError(t, app.Send(context.Background(), "ada ikan?"))
	_, err = app.AddToCart(0)
	require.NoError(t, err)
	_, err = app.AddToCart(0)
	require.NoError(t, err)
	_, err = app.AddToCart(1)
	require.NoError(t, err)
	assert.Equal(t, int64(58000), app.Cart.Totals().Amount)

	order, err := app.Checkout()
	require.NoError(t, err)
	assert.Equal(t, int64(58000), order.Total)
	assert.Equal(t, checkout.AwaitingPayment, app.Orders.State())

	paid, err := app.ConfirmPayment(context.Background())
	require.NoError(t, err)
	assert.True(t, paid.Paid())
	assert.True(t, app.Cart.IsEmpty())
	assert.Equal(t, checkout.ReceiptIssued, app.Orders.State())

	msgs := app.Transcript()
	assert.Contains(t, msgs[len(msgs)-1].Text, order.ID)

	require.NoError(t, app.NewOrder())
	msgs = app.Transcript()
	assert.Equal(t, checkout.ThankYouMessage, msgs[len(msgs)-1].Text)
	assert.Equal(t, checkout.Idle, app.Orders.State())
}

func TestAddToCart_Notice(t *testing.T) {
	app := newTestApp(t, &relay{})
	require.NoError(t, app.Send(context.Background(), "ada ikan?"))

	var notices []string
	app.Subscribe(func(e Event) {
		if e.Kind == Notice {
			notices = append(notices, e.Text)
		}
	})

	_, err := app.AddToCart(1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Es Jeruk ditambahkan ke keranjang!"}, notices)

	_, err = app.AddToCart(9)
	assert.Error(t, err)
}

func TestClearChat(t *testing.T) {
	r := &relay{}
	app := newTestApp(t, r)
	require.NoError(t, app.Send(context.Background(), "ada ikan?"))
	_, err := app.AddToCart(0)
	require.NoError(t, err)

	app.ClearChat(context.Background())
	assert.Equal(t, []string{"session_server_1"}, r.cleared)

	msgs := app.Transcript()
	require.Len(t, msgs, 1)
	assert.Equal(t, clearedMessage, msgs[0].Text)
	assert.Zero(t, app.Catalog.Len())
	assert.NotEqual(t, "session_server_1", app.SessionID())
	assert.True(t, strings.HasPrefix(app.SessionID(), session.ClientPrefix+"_"))
	// the cart survives a chat reset
	assert.Equal(t, 1, app.Cart.Len())
}

func TestClearChat_ServerDownStillResets(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	app := New(session.NewClient(srv.URL, time.Second), WithSessionID("web_old_1"))
	app.ClearChat(context.Background())

	require.Len(t, app.Transcript(), 1)
	assert.NotEqual(t, "web_old_1", app.SessionID())
}

func TestWelcomeAndSuggestions(t *testing.T) {
	app := newTestApp(t, &relay{})
	app.Welcome()

	msgs := app.Transcript()
	require.Len(t, msgs, 2)
	assert.Contains(t, welcomeMessages, msgs[0].Text)
	assert.Equal(t, tipsMessage, msgs[1].Text)

	first := app.NextSuggestions()
	assert.Equal(t, Suggestion{Text: "menu sapi", Emoji: "🐄", Label: "Menu Sapi"}, first[2])
	for i := 0; i < len(SuggestionSets)-1; i++ {
		app.NextSuggestions()
	}
	assert.Equal(t, first, app.NextSuggestions())
}

func TestSetConnected_EmitsOnChange(t *testing.T) {
	app := newTestApp(t, &relay{})

	var n int
	app.Subscribe(func(e Event) {
		if e.Kind == ConnectionChanged {
			n++
		}
	})

	app.SetConnected(true)
	app.SetConnected(true)
	app.SetConnected(false)
	assert.Equal(t, 2, n)
	assert.False(t, app.Connected())
}
